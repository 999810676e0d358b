package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

// CodeUserCancelled is the stable discriminator of a user cancellation.
const CodeUserCancelled = "USER_CANCELLED"

var (
	// ErrUserCancelled is returned by Run when the user aborts a prompt.
	ErrUserCancelled = errors.New(CodeUserCancelled)

	// ErrInterrupted is reported by renderers when the prompt was closed
	// abnormally (Ctrl+C, Ctrl+D, closed input). Run normalizes it to
	// ErrUserCancelled.
	ErrInterrupted = errors.New("prompt interrupted")
)

// UnknownStepError reports a transition to a step the registry does not hold.
type UnknownStepError struct {
	Name       string
	Suggestion string
}

func (e *UnknownStepError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown wizard step %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown wizard step %q", e.Name)
}

// MissingTargetError reports a step that returned no next step for a selection.
type MissingTargetError struct {
	Step      string
	Selection any
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("wizard step %q has no next step for selection %v", e.Step, e.Selection)
}

// ConfigError reports a malformed step graph passed to New.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return "wizard config: " + e.msg }

func configErrorf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func isCancellation(err error) bool {
	return errors.Is(err, ErrInterrupted) ||
		errors.Is(err, ErrUserCancelled) ||
		errors.Is(err, context.Canceled)
}

// closestName returns the candidate nearest to name, or "" when nothing is
// close enough to be a plausible typo.
func closestName(name string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > len(name)/2+1 {
		return ""
	}
	return best
}
