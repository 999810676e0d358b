// Package prompt renders the wizard in a terminal.
//
// Survey draws interactive select prompts; Auto answers every prompt with its
// default for non-interactive runs.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/lipgloss"

	"github.com/gavbarosee/react-kickstart-sub000/internal/keyboard"
	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

// compile-time interface compliance check
var _ wizard.Renderer = (*Survey)(nil)

// Stream is the input of a single prompt.
type Stream interface {
	terminal.FileReader
	io.Closer
}

// Options configures a Survey renderer.
type Options struct {
	// Input returns a fresh stream for each prompt; it is closed when the
	// prompt returns. Defaults to stdin, which is never closed.
	Input func() Stream
	Out   terminal.FileWriter
	Err   io.Writer

	// Fields orders the answer summary. Fields without a label are hidden.
	Fields []wizard.Field
	Labels map[wizard.Field]string
	Format func(wizard.Field, any) string

	Title          string
	ClearScreen    bool
	PageSize       int
	BackLabel      string
	SeparatorLabel string
	// BackHint names the back keystroke in the header, e.g. "←".
	BackHint string
}

type askFunc func(ctx context.Context, message string, labels []string, def int) (int, error)

// Survey is the interactive renderer.
type Survey struct {
	opts Options
	ask  askFunc
}

// NewSurvey returns a Survey renderer.
func NewSurvey(opts Options) *Survey {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Input == nil {
		opts.Input = func() Stream { return nopCloser{os.Stdin} }
	}
	if opts.Format == nil {
		opts.Format = func(_ wizard.Field, v any) string { return fmt.Sprint(v) }
	}
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	if opts.BackLabel == "" {
		opts.BackLabel = "← Back"
	}
	if opts.SeparatorLabel == "" {
		opts.SeparatorLabel = strings.Repeat("─", 14)
	}
	if opts.Title == "" {
		opts.Title = "react-kickstart"
	}
	s := &Survey{opts: opts}
	s.ask = s.surveyAsk
	return s
}

// RefreshDisplay clears the screen and prints the answers collected so far.
func (s *Survey) RefreshDisplay(answers wizard.Answers) {
	if s.opts.ClearScreen {
		fmt.Fprint(s.opts.Out, "\033[H\033[2J")
	}
	if summary := s.summary(answers); summary != "" {
		fmt.Fprintln(s.opts.Out, summary)
	}
}

func (s *Survey) summary(answers wizard.Answers) string {
	var rows []string
	for _, f := range s.opts.Fields {
		label, ok := s.opts.Labels[f]
		if !ok || !answers.Has(f) {
			continue
		}
		rows = append(rows, labelStyle.Render(label+":")+" "+valueStyle.Render(s.opts.Format(f, answers[f])))
	}
	if len(rows) == 0 {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{summaryTitleStyle.Render(s.opts.Title)}, rows...)...)
	return summaryStyle.Render(body)
}

// ShowStepHeader prints "icon Step N of M · Title".
func (s *Survey) ShowStepHeader(position, total int, title, icon string) {
	header := headerStyle.Render(fmt.Sprintf("%s Step %d of %d · %s", icon, position, total, title))
	if s.opts.BackHint != "" && position > 1 {
		header += "  " + hintStyle.Render("("+s.opts.BackHint+" to go back)")
	}
	fmt.Fprintf(s.opts.Out, "\n%s\n\n", header)
}

// PromptChoice asks p and returns the value of the picked choice. Picking a
// disabled row asks again.
func (s *Survey) PromptChoice(ctx context.Context, p wizard.Prompt) (any, error) {
	if len(p.Choices) == 0 {
		return nil, fmt.Errorf("prompt %q has no choices", p.Message)
	}
	labels := make([]string, len(p.Choices))
	for i, c := range p.Choices {
		labels[i] = c.Label
	}

	def := p.Default
	if def < 0 || def >= len(labels) {
		def = 0
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx, err := s.ask(ctx, p.Message, labels, def)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, normalizeErr(err)
		}
		if idx < 0 || idx >= len(p.Choices) {
			return nil, fmt.Errorf("prompt %q: selection %d out of range", p.Message, idx)
		}
		if !p.Choices[idx].Disabled {
			return p.Choices[idx].Value, nil
		}
		def = idx
	}
}

func (s *Survey) surveyAsk(ctx context.Context, message string, labels []string, def int) (int, error) {
	in := s.opts.Input()
	defer in.Close()
	stop := context.AfterFunc(ctx, func() { _ = in.Close() })
	defer stop()

	var idx int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  labels,
		Default:  def,
		PageSize: s.opts.PageSize,
	}, &idx, survey.WithStdio(in, s.opts.Out, s.opts.Err))
	if err != nil {
		return 0, err
	}
	return idx, nil
}

// normalizeErr reports aborted prompts as wizard.ErrInterrupted.
func normalizeErr(err error) error {
	switch {
	case errors.Is(err, terminal.InterruptErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, keyboard.ErrDeactivated):
		return fmt.Errorf("%w: %v", wizard.ErrInterrupted, err)
	}
	return err
}

// Separator returns the divider row placed above the back option.
func (s *Survey) Separator() wizard.Choice {
	return wizard.Choice{Label: s.opts.SeparatorLabel, Value: wizard.Divider, Disabled: true}
}

// BackOption returns the "go back" row.
func (s *Survey) BackOption() wizard.Choice {
	return wizard.Choice{Label: s.opts.BackLabel, Value: wizard.Back}
}

// ShowCompletion prints the success notice.
func (s *Survey) ShowCompletion() {
	fmt.Fprintf(s.opts.Out, "\n%s\n\n", successStyle.Render("✓ All set! Your choices are saved."))
}

// nopCloser keeps stdin open across prompts.
type nopCloser struct {
	*os.File
}

func (nopCloser) Close() error { return nil }
