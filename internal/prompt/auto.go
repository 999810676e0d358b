package prompt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

// compile-time interface compliance check
var _ wizard.Renderer = (*Auto)(nil)

// Auto accepts the default choice of every prompt. It never goes back.
type Auto struct {
	Log *slog.Logger

	step string
}

// NewAuto returns an Auto renderer logging its picks to log (nil discards).
func NewAuto(log *slog.Logger) *Auto {
	return &Auto{Log: log}
}

func (a *Auto) RefreshDisplay(wizard.Answers) {}

func (a *Auto) ShowStepHeader(_, _ int, title, _ string) { a.step = title }

// PromptChoice returns the default choice, or the first selectable one when
// the default is disabled or out of range.
func (a *Auto) PromptChoice(ctx context.Context, p wizard.Prompt) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pickable := func(i int) bool {
		return i >= 0 && i < len(p.Choices) && !p.Choices[i].Disabled && !wizard.IsBack(p.Choices[i].Value)
	}

	idx := p.Default
	if !pickable(idx) {
		idx = -1
		for i := range p.Choices {
			if pickable(i) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("prompt %q has no selectable choice", p.Message)
	}

	if a.Log != nil {
		a.Log.Debug("Auto-selected", "step", a.step, "choice", p.Choices[idx].Label)
	}
	return p.Choices[idx].Value, nil
}

func (a *Auto) Separator() wizard.Choice {
	return wizard.Choice{Label: "", Value: wizard.Divider, Disabled: true}
}

func (a *Auto) BackOption() wizard.Choice {
	return wizard.Choice{Label: "Back", Value: wizard.Back}
}

func (a *Auto) ShowCompletion() {
	if a.Log != nil {
		a.Log.Info("All prompts answered with defaults")
	}
}
