package wizard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
)

type testStep struct {
	name    string
	ordinal int
	fields  []Field
	choices []Choice
	def     int
	next    func(selected any, answers Answers) string
}

func (s *testStep) Name() string             { return s.name }
func (s *testStep) Ordinal() int             { return s.ordinal }
func (s *testStep) Title() string            { return "Title " + s.name }
func (s *testStep) Icon() string             { return "*" }
func (s *testStep) Message() string          { return "Pick " + s.name }
func (s *testStep) Choices(Answers) []Choice { return slices.Clone(s.choices) }
func (s *testStep) DefaultIndex(Answers) int { return s.def }
func (s *testStep) Fields() []Field          { return s.fields }

func (s *testStep) NextStep(v any, a Answers) string { return s.next(v, a) }

type conditionalStep struct {
	*testStep
	visible func(Answers) bool
}

func (s *conditionalStep) Visible(a Answers) bool { return s.visible(a) }

// pairStep owns "open" and "tool"; it writes both on commit.
type pairStep struct {
	*testStep
}

func (s *pairStep) Commit(v any, a Answers) {
	a[s.fields[0]] = v != "none"
	a[s.fields[1]] = v
}

func linear(name string, ordinal int, next string, fields ...Field) *testStep {
	if len(fields) == 0 {
		fields = []Field{Field(name)}
	}
	return &testStep{
		name:    name,
		ordinal: ordinal,
		fields:  fields,
		choices: []Choice{
			{Label: name + "1", Value: name + "1"},
			{Label: name + "2", Value: name + "2"},
			{Label: name + "3", Value: name + "3"},
		},
		next: func(any, Answers) string { return next },
	}
}

type scriptedRenderer struct {
	t      *testing.T
	mu     sync.Mutex
	script []func(p Prompt) (any, error)

	prompts   []Prompt
	headers   []string
	refreshes int
	completed int
}

func (r *scriptedRenderer) RefreshDisplay(Answers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
}

func (r *scriptedRenderer) ShowStepHeader(_, _ int, title, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = append(r.headers, title)
}

func (r *scriptedRenderer) PromptChoice(_ context.Context, p Prompt) (any, error) {
	r.mu.Lock()
	i := len(r.prompts)
	r.prompts = append(r.prompts, p)
	r.mu.Unlock()
	if i >= len(r.script) {
		r.t.Errorf("unexpected prompt #%d: %q", i, p.Message)
		return nil, errors.New("script exhausted")
	}
	return r.script[i](p)
}

func (r *scriptedRenderer) Separator() Choice {
	return Choice{Label: "----", Value: Divider, Disabled: true}
}

func (r *scriptedRenderer) BackOption() Choice {
	return Choice{Label: "Back", Value: Back}
}

func (r *scriptedRenderer) ShowCompletion() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
}

func (r *scriptedRenderer) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.prompts))
	for _, p := range r.prompts {
		out = append(out, p.Message)
	}
	return out
}

func pick(v any) func(Prompt) (any, error) {
	return func(Prompt) (any, error) { return v, nil }
}

func back() func(Prompt) (any, error) {
	return pick(Back)
}

func fail(err error) func(Prompt) (any, error) {
	return func(Prompt) (any, error) { return nil, err }
}

type fakeInterrupter struct {
	mu            sync.Mutex
	onBack        func()
	activations   int
	deactivations int
}

func (f *fakeInterrupter) Activate(cb func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onBack = cb
	f.activations++
}

func (f *fakeInterrupter) Deactivate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onBack = nil
	f.deactivations++
}

// fire simulates the back keystroke.
func (f *fakeInterrupter) fire() {
	f.mu.Lock()
	cb := f.onBack
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (f *fakeInterrupter) listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onBack != nil {
		return 1
	}
	return 0
}

func (f *fakeInterrupter) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activations, f.deactivations
}
