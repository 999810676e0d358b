// Package wizard drives a multi-step interactive questionnaire.
//
// A Wizard walks a graph of Steps starting at a fixed entry step. Each visible
// step is prompted through a Renderer; its answer is committed to a shared
// Answers map and its NextStep decides where to go. Selecting Back (from the
// menu row or through an Interrupter keystroke) resumes at the previous step
// in the history and clears every answer owned by steps after it in the
// canonical order.
package wizard

import (
	"context"
	"slices"
)

// Config assembles a Wizard.
type Config struct {
	// Steps is the registry. Names must be unique.
	Steps []Step
	// Order is the canonical step order, including conditionally skipped
	// steps. It must name exactly the steps in the registry.
	Order []string
	// Entry is the first step.
	Entry string
	// Fields is the closed set of answer fields steps may own.
	// When empty, any field is accepted.
	Fields []Field

	Renderer    Renderer
	Interrupter Interrupter

	// OnStep, when set, is called after every prompted step with its result.
	OnStep func(step string, res StepResult)
}

// Wizard owns the step traversal, the history and the answers.
type Wizard struct {
	steps       map[string]Step
	names       []string
	order       []string
	entry       string
	total       int
	renderer    Renderer
	interrupter Interrupter
	onStep      func(string, StepResult)

	history History
	answers Answers
	current string
}

// New validates cfg and returns a Wizard positioned at the entry step.
func New(cfg Config) (*Wizard, error) {
	if cfg.Renderer == nil {
		return nil, configErrorf("renderer is required")
	}
	if len(cfg.Steps) == 0 {
		return nil, configErrorf("no steps")
	}

	known := make(map[Field]bool, len(cfg.Fields))
	for _, f := range cfg.Fields {
		known[f] = true
	}

	w := &Wizard{
		steps:       make(map[string]Step, len(cfg.Steps)),
		order:       slices.Clone(cfg.Order),
		entry:       cfg.Entry,
		renderer:    cfg.Renderer,
		interrupter: cfg.Interrupter,
		onStep:      cfg.OnStep,
		answers:     Answers{},
	}
	if w.interrupter == nil {
		w.interrupter = NopInterrupter{}
	}

	for _, s := range cfg.Steps {
		name := s.Name()
		if name == "" || name == End {
			return nil, configErrorf("invalid step name %q", name)
		}
		if _, dup := w.steps[name]; dup {
			return nil, configErrorf("duplicate step %q", name)
		}
		if len(s.Fields()) == 0 {
			return nil, configErrorf("step %q owns no answer field", name)
		}
		if len(known) > 0 {
			for _, f := range s.Fields() {
				if !known[f] {
					return nil, configErrorf("step %q owns unknown field %q", name, f)
				}
			}
		}
		w.steps[name] = s
		w.names = append(w.names, name)
		if s.Ordinal() > w.total {
			w.total = s.Ordinal()
		}
	}

	if len(w.order) != len(w.steps) {
		return nil, configErrorf("canonical order has %d steps, registry has %d", len(w.order), len(w.steps))
	}
	seen := make(map[string]bool, len(w.order))
	for _, name := range w.order {
		if _, ok := w.steps[name]; !ok {
			return nil, configErrorf("canonical order names unknown step %q", name)
		}
		if seen[name] {
			return nil, configErrorf("canonical order repeats step %q", name)
		}
		seen[name] = true
	}
	if _, ok := w.steps[w.entry]; !ok {
		return nil, configErrorf("entry step %q is not registered", w.entry)
	}

	w.current = w.entry
	return w, nil
}

// Run drives the wizard until the End step and returns the answers.
//
// A prompt cancelled by the user makes Run return ErrUserCancelled without
// executing further steps. Any other error is returned unchanged; history and
// answers are left as they were at that point.
func (w *Wizard) Run(ctx context.Context) (Answers, error) {
	for w.current != End {
		if err := ctx.Err(); err != nil {
			if isCancellation(err) {
				return nil, ErrUserCancelled
			}
			return nil, err
		}
		if err := w.advance(ctx); err != nil {
			return nil, err
		}
	}

	w.renderer.RefreshDisplay(w.answers)
	w.renderer.ShowCompletion()
	return w.answers, nil
}

// advance performs one transition from the current step.
func (w *Wizard) advance(ctx context.Context) error {
	step, err := w.lookup(w.current)
	if err != nil {
		return err
	}

	if !visible(step, w.answers) {
		next := step.NextStep(Skip, w.answers)
		if next == "" {
			return &MissingTargetError{Step: step.Name(), Selection: Skip}
		}
		w.current = next
		return nil
	}

	res, err := w.execute(ctx, step)
	if err != nil {
		if isCancellation(err) {
			return ErrUserCancelled
		}
		return err
	}
	if w.onStep != nil {
		w.onStep(step.Name(), res)
	}

	if IsBack(res.Selection) {
		resume, ok := w.history.PreviousStepName()
		if !ok {
			resume = w.entry
		}
		w.history.GoBack()
		if err := w.ClearAnswersAfterStep(resume); err != nil {
			return err
		}
		w.current = resume
		return nil
	}

	if res.Next == "" {
		return &MissingTargetError{Step: step.Name(), Selection: res.Selection}
	}
	w.history.RecordStep(step.Name())
	w.current = res.Next
	return nil
}

func (w *Wizard) lookup(name string) (Step, error) {
	step, ok := w.steps[name]
	if !ok {
		return nil, &UnknownStepError{Name: name, Suggestion: closestName(name, w.names)}
	}
	return step, nil
}

// ClearAnswersAfterStep keeps the fields owned by name and every step before
// it in the canonical order and deletes all other fields. A name outside the
// canonical order returns an *UnknownStepError and leaves the answers alone.
func (w *Wizard) ClearAnswersAfterStep(name string) error {
	idx := slices.Index(w.order, name)
	if idx < 0 {
		return &UnknownStepError{Name: name, Suggestion: closestName(name, w.order)}
	}

	keep := make(map[Field]bool)
	for _, stepName := range w.order[:idx+1] {
		for _, f := range w.steps[stepName].Fields() {
			keep[f] = true
		}
	}
	for f := range w.answers {
		if !keep[f] {
			delete(w.answers, f)
		}
	}
	return nil
}

// Answers returns the live answers map.
func (w *Wizard) Answers() Answers { return w.answers }

// History returns the traversal history.
func (w *Wizard) History() *History { return &w.history }

// Current returns the name of the step the wizard will run next, or End.
func (w *Wizard) Current() string { return w.current }

// Reset restarts the wizard at the entry step with empty answers.
func (w *Wizard) Reset() {
	w.history.Reset()
	w.answers = Answers{}
	w.current = w.entry
}
