package wizard

// History records the steps completed going forward.
// A step is recorded only after it produced a forward result; skipped steps
// and back moves never reach it.
type History struct {
	steps []string
}

// RecordStep appends name to the history.
func (h *History) RecordStep(name string) {
	h.steps = append(h.steps, name)
}

// GoBack pops the most recent step and returns it.
// It is a no-op returning false when the history is empty.
func (h *History) GoBack() (string, bool) {
	if len(h.steps) == 0 {
		return "", false
	}
	last := h.steps[len(h.steps)-1]
	h.steps = h.steps[:len(h.steps)-1]
	return last, true
}

// CanGoBack reports whether there is a step to return to.
func (h *History) CanGoBack() bool {
	return len(h.steps) > 0
}

// PreviousStepName returns the most recent step without popping it.
func (h *History) PreviousStepName() (string, bool) {
	if len(h.steps) == 0 {
		return "", false
	}
	return h.steps[len(h.steps)-1], true
}

// Reset clears the history.
func (h *History) Reset() {
	h.steps = nil
}

// Steps returns a copy of the recorded steps, oldest first.
func (h *History) Steps() []string {
	out := make([]string, len(h.steps))
	copy(out, h.steps)
	return out
}

// Len returns the number of recorded steps.
func (h *History) Len() int {
	return len(h.steps)
}
