package wizard

import "context"

// execute asks a single step and commits its answer.
//
// Choices and the default index are computed before the separator and back
// rows are appended, so the default always points into the step's own list.
func (w *Wizard) execute(ctx context.Context, step Step) (StepResult, error) {
	w.renderer.RefreshDisplay(w.answers)
	w.renderer.ShowStepHeader(step.Ordinal(), w.total, step.Title(), step.Icon())

	choices := step.Choices(w.answers)
	def := step.DefaultIndex(w.answers)
	if def < 0 || def >= len(choices) {
		def = 0
	}

	p := Prompt{Message: step.Message(), Choices: choices, Default: def}

	var (
		selected any
		err      error
	)
	by := ResolvedByPrompt
	if w.history.CanGoBack() {
		padded := make([]Choice, 0, len(choices)+2)
		padded = append(padded, choices...)
		padded = append(padded, w.renderer.Separator(), w.renderer.BackOption())
		p.Choices = padded
		selected, by, err = promptWithBack(ctx, w.renderer, w.interrupter, p)
	} else {
		selected, err = w.renderer.PromptChoice(ctx, p)
	}
	if err != nil {
		return StepResult{}, err
	}

	if IsBack(selected) {
		return StepResult{Selection: Back, ResolvedBy: by}, nil
	}

	commit(step, selected, w.answers)
	return StepResult{Selection: selected, Next: step.NextStep(selected, w.answers), ResolvedBy: by}, nil
}
