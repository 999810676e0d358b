package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// abcd builds a linear a -> b -> c -> d -> End graph.
func abcd() []Step {
	return []Step{
		linear("a", 1, "b"),
		linear("b", 2, "c"),
		linear("c", 3, "d"),
		linear("d", 4, End),
	}
}

func newTestWizard(t *testing.T, steps []Step, order []string, r Renderer, in Interrupter) *Wizard {
	t.Helper()
	w, err := New(Config{
		Steps:       steps,
		Order:       order,
		Entry:       order[0],
		Renderer:    r,
		Interrupter: in,
	})
	require.NoError(t, err)
	return w
}

func TestRun_forwardOnly(t *testing.T) {
	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
		pick("a1"), pick("b2"), pick("c3"), pick("d1"),
	}}
	w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

	got, err := w.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Answers{"a": "a1", "b": "b2", "c": "c3", "d": "d1"}, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, w.History().Steps())
	assert.Equal(t, End, w.Current())
	assert.Equal(t, 1, r.completed)
	assert.Equal(t, []string{"Title a", "Title b", "Title c", "Title d"}, r.headers)
}

func TestRun_backFromCResumesAtB(t *testing.T) {
	var w *Wizard
	var atB struct {
		history []string
		answers Answers
	}

	r := &scriptedRenderer{t: t}
	r.script = []func(Prompt) (any, error){
		pick("a1"), // a
		pick("b1"), // b
		pick("c1"), // c
		back(),     // d -> resume c
		back(),     // c -> resume b
		func(Prompt) (any, error) { // b again
			atB.history = w.History().Steps()
			atB.answers = w.Answers().Clone()
			return "b2", nil
		},
		pick("c2"),
		pick("d1"),
	}
	w = newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

	got, err := w.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, atB.history)
	assert.Equal(t, Answers{"a": "a1", "b": "b1"}, atB.answers, "c's answer must be cleared")
	assert.Equal(t, []string{"Pick a", "Pick b", "Pick c", "Pick d", "Pick c", "Pick b", "Pick c", "Pick d"}, r.messages())
	assert.Equal(t, Answers{"a": "a1", "b": "b2", "c": "c2", "d": "d1"}, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, w.History().Steps())
}

func TestRun_backAtEntryIsNoop(t *testing.T) {
	var w *Wizard
	var second struct {
		current string
		answers Answers
		history int
	}

	r := &scriptedRenderer{t: t}
	r.script = []func(Prompt) (any, error){
		back(),
		func(Prompt) (any, error) {
			second.current = w.Current()
			second.answers = w.Answers().Clone()
			second.history = w.History().Len()
			return "a1", nil
		},
		pick("b1"), pick("c1"), pick("d1"),
	}
	w = newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

	_, err := w.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "a", second.current)
	assert.Empty(t, second.answers)
	assert.Equal(t, 0, second.history)
}

func TestRun_noBackOptionWithoutHistory(t *testing.T) {
	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
		pick("a1"), pick("b1"), pick("c1"), pick("d1"),
	}}
	w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

	_, err := w.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, r.prompts, 4)
	assert.Len(t, r.prompts[0].Choices, 3, "entry step must not offer back")
	for _, p := range r.prompts[1:] {
		require.Len(t, p.Choices, 5)
		assert.Equal(t, Divider, p.Choices[3].Value)
		assert.True(t, IsBack(p.Choices[4].Value))
	}
}

func TestRun_cancellationAtBStops(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"interrupted", ErrInterrupted},
		{"wrapped interrupted", fmt.Errorf("select framework: %w", ErrInterrupted)},
		{"context canceled", context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
				pick("a1"), fail(tc.err),
			}}
			w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

			got, err := w.Run(context.Background())
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrUserCancelled)
			assert.Equal(t, CodeUserCancelled, err.Error())
			assert.Equal(t, []string{"Pick a", "Pick b"}, r.messages(), "no further steps may run")
			assert.Equal(t, 0, r.completed)
		})
	}
}

func TestRun_otherErrorsPropagateUnchanged(t *testing.T) {
	boom := errors.New("renderer exploded")
	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
		pick("a1"), fail(boom),
	}}
	w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

	_, err := w.Run(context.Background())
	assert.Same(t, boom, err)
	assert.NotErrorIs(t, err, ErrUserCancelled)
}

func TestRun_cancelledContextBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &scriptedRenderer{t: t}
	w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)

	_, err := w.Run(ctx)
	assert.ErrorIs(t, err, ErrUserCancelled)
	assert.Empty(t, r.prompts)
}

func TestRun_unknownStepIsFatal(t *testing.T) {
	steps := []Step{
		linear("framework", 1, "framwork"),
		linear("styling", 2, End),
	}
	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){pick("framework1")}}
	w := newTestWizard(t, steps, []string{"framework", "styling"}, r, nil)

	_, err := w.Run(context.Background())

	var unknown *UnknownStepError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "framwork", unknown.Name)
	assert.Equal(t, "framework", unknown.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "framework"`)
}

func TestRun_missingTargetIsFatal(t *testing.T) {
	steps := []Step{
		linear("a", 1, ""),
	}
	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){pick("a2")}}
	w := newTestWizard(t, steps, []string{"a"}, r, nil)

	_, err := w.Run(context.Background())

	var missing *MissingTargetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "a", missing.Step)
	assert.Equal(t, "a2", missing.Selection)
	assert.Equal(t, 0, w.History().Len(), "a step without a target is not recorded")
}

func TestRun_invisibleStepIsTransparent(t *testing.T) {
	hidden := &conditionalStep{
		testStep: linear("b", 2, "c"),
		visible:  func(a Answers) bool { return a.String("a") == "a2" },
	}
	var skipped any
	hidden.next = func(v any, _ Answers) string {
		skipped = v
		return "c"
	}
	steps := []Step{
		linear("a", 1, "b"),
		hidden,
		linear("c", 3, End),
	}

	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
		pick("a1"), pick("c1"),
	}}
	w := newTestWizard(t, steps, []string{"a", "b", "c"}, r, nil)

	got, err := w.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Skip, skipped)
	assert.Equal(t, []string{"Pick a", "Pick c"}, r.messages())
	assert.Equal(t, []string{"a", "c"}, w.History().Steps())
	assert.False(t, got.Has("b"))
}

func TestRun_backOverInvisibleStep(t *testing.T) {
	hidden := &conditionalStep{
		testStep: linear("b", 2, "c"),
		visible:  func(a Answers) bool { return a.String("a") == "a2" },
	}
	steps := []Step{linear("a", 1, "b"), hidden, linear("c", 3, End)}

	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
		pick("a2"), // b becomes visible
		pick("b1"),
		back(),     // c -> b
		back(),     // b -> a, b cleared
		pick("a1"), // b hidden now
		pick("c3"),
	}}
	w := newTestWizard(t, steps, []string{"a", "b", "c"}, r, nil)

	got, err := w.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Answers{"a": "a1", "c": "c3"}, got)
	assert.Equal(t, []string{"a", "c"}, w.History().Steps())
}

func TestRun_multiFieldStepCommitsAndClearsAllFields(t *testing.T) {
	editor := &pairStep{testStep: linear("editor", 2, "c", "open", "tool")}
	editor.choices = []Choice{{Label: "none", Value: "none"}, {Label: "vscode", Value: "vscode"}}
	steps := []Step{linear("a", 1, "editor"), editor, linear("c", 3, End)}

	var w *Wizard
	var atA Answers
	r := &scriptedRenderer{t: t}
	r.script = []func(Prompt) (any, error){
		pick("a1"),
		pick("vscode"),
		back(), // c -> editor, both editor fields kept
		back(), // editor -> a, both editor fields cleared
		func(Prompt) (any, error) {
			atA = w.Answers().Clone()
			return "a2", nil
		},
		pick("none"),
		pick("c1"),
	}
	w = newTestWizard(t, steps, []string{"a", "editor", "c"}, r, nil)

	got, err := w.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Answers{"a": "a1"}, atA)
	assert.Equal(t, Answers{"a": "a2", "open": false, "tool": "none", "c": "c1"}, got)
}

func TestExecute_defaultIndexStableUnderPadding(t *testing.T) {
	for _, def := range []int{0, 1, 2} {
		t.Run(fmt.Sprintf("default=%d", def), func(t *testing.T) {
			b := linear("b", 2, End)
			b.def = def

			r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
				pick("a1"),
				func(p Prompt) (any, error) { return p.Choices[p.Default].Value, nil },
			}}
			w := newTestWizard(t, []Step{linear("a", 1, "b"), b}, []string{"a", "b"}, r, nil)

			got, err := w.Run(context.Background())
			require.NoError(t, err)

			p := r.prompts[1]
			require.Len(t, p.Choices, 5)
			assert.Equal(t, def, p.Default)
			assert.Less(t, p.Default, 3, "default must index the unpadded list")
			assert.Equal(t, b.choices[def].Value, got["b"])
		})
	}
}

func TestExecute_defaultIndexOutOfRangeIsClamped(t *testing.T) {
	for _, def := range []int{-1, 3, 99} {
		a := linear("a", 1, End)
		a.def = def
		r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){pick("a1")}}
		w := newTestWizard(t, []Step{a}, []string{"a"}, r, nil)

		_, err := w.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, r.prompts[0].Default, "default %d", def)
	}
}

func TestClearAnswersAfterStep_everyStep(t *testing.T) {
	editor := &pairStep{testStep: linear("editor", 5, End, "open", "tool")}
	steps := []Step{
		linear("pm", 1, "framework"),
		linear("framework", 2, "router"),
		linear("router", 3, "styling", "router", "routerMode"),
		linear("styling", 4, "editor"),
		editor,
	}
	order := []string{"pm", "framework", "router", "styling", "editor"}
	owned := map[string][]Field{
		"pm":        {"pm"},
		"framework": {"framework"},
		"router":    {"router", "routerMode"},
		"styling":   {"styling"},
		"editor":    {"open", "tool"},
	}
	full := Answers{
		"pm": "npm", "framework": "vite", "router": "react-router", "routerMode": "browser",
		"styling": "tailwind", "open": true, "tool": "vscode", "stray": "x",
	}

	for i, name := range order {
		t.Run(name, func(t *testing.T) {
			w := newTestWizard(t, steps, order, &scriptedRenderer{t: t}, nil)
			w.answers = full.Clone()

			require.NoError(t, w.ClearAnswersAfterStep(name))

			for j, other := range order {
				for _, f := range owned[other] {
					if j <= i {
						assert.True(t, w.answers.Has(f), "%s owned by %s must be kept", f, other)
					} else {
						assert.False(t, w.answers.Has(f), "%s owned by %s must be cleared", f, other)
					}
				}
			}
			assert.False(t, w.answers.Has("stray"), "unowned fields are cleared")
		})
	}
}

func TestClearAnswersAfterStep_unknownStepKeepsAnswers(t *testing.T) {
	w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, &scriptedRenderer{t: t}, nil)
	w.answers = Answers{"a": "a1", "b": "b1", "c": "c1"}

	err := w.ClearAnswersAfterStep("bb")

	var unknown *UnknownStepError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bb", unknown.Name)
	assert.Equal(t, "b", unknown.Suggestion)
	assert.Equal(t, Answers{"a": "a1", "b": "b1", "c": "c1"}, w.answers)
}

func TestRun_onStepReportsResolution(t *testing.T) {
	in := &fakeInterrupter{}
	type resolved struct {
		step string
		res  StepResult
	}
	var got []resolved

	r := &scriptedRenderer{t: t}
	r.script = []func(Prompt) (any, error){
		pick("a1"),
		func(Prompt) (any, error) {
			in.fire()
			return "b1", nil
		},
		pick("a2"), pick("b2"), pick("c1"), pick("d1"),
	}
	w, err := New(Config{
		Steps:       abcd(),
		Order:       []string{"a", "b", "c", "d"},
		Entry:       "a",
		Renderer:    r,
		Interrupter: in,
		OnStep: func(step string, res StepResult) {
			got = append(got, resolved{step, res})
		},
	})
	require.NoError(t, err)

	_, err = w.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 6)
	assert.Equal(t, resolved{"a", StepResult{Selection: "a1", Next: "b", ResolvedBy: ResolvedByPrompt}}, got[0])
	assert.Equal(t, "b", got[1].step)
	assert.True(t, IsBack(got[1].res.Selection))
	assert.Equal(t, ResolvedByKeystroke, got[1].res.ResolvedBy)
	assert.Equal(t, resolved{"d", StepResult{Selection: "d1", Next: End, ResolvedBy: ResolvedByPrompt}}, got[5])
}

func TestNew_validation(t *testing.T) {
	r := &scriptedRenderer{t: t}
	cases := []struct {
		name string
		cfg  Config
	}{
		{"no renderer", Config{Steps: abcd(), Order: []string{"a", "b", "c", "d"}, Entry: "a"}},
		{"no steps", Config{Renderer: r, Entry: "a"}},
		{"duplicate", Config{Renderer: r, Steps: []Step{linear("a", 1, End), linear("a", 2, End)}, Order: []string{"a", "a"}, Entry: "a"}},
		{"order too short", Config{Renderer: r, Steps: abcd(), Order: []string{"a", "b"}, Entry: "a"}},
		{"order unknown", Config{Renderer: r, Steps: abcd(), Order: []string{"a", "b", "c", "x"}, Entry: "a"}},
		{"order repeats", Config{Renderer: r, Steps: abcd(), Order: []string{"a", "b", "c", "c"}, Entry: "a"}},
		{"bad entry", Config{Renderer: r, Steps: abcd(), Order: []string{"a", "b", "c", "d"}, Entry: "z"}},
		{"unknown field", Config{Renderer: r, Steps: abcd(), Order: []string{"a", "b", "c", "d"}, Entry: "a", Fields: []Field{"a", "b", "c"}}},
		{"reserved name", Config{Renderer: r, Steps: []Step{linear(End, 1, End)}, Order: []string{End}, Entry: End}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestNew_acceptsClosedFieldSet(t *testing.T) {
	_, err := New(Config{
		Renderer: &scriptedRenderer{t: t},
		Steps:    abcd(),
		Order:    []string{"a", "b", "c", "d"},
		Entry:    "a",
		Fields:   []Field{"a", "b", "c", "d"},
	})
	assert.NoError(t, err)
}

func TestReset(t *testing.T) {
	r := &scriptedRenderer{t: t, script: []func(Prompt) (any, error){
		pick("a1"), pick("b1"), pick("c1"), pick("d1"),
	}}
	w := newTestWizard(t, abcd(), []string{"a", "b", "c", "d"}, r, nil)
	_, err := w.Run(context.Background())
	require.NoError(t, err)

	w.Reset()
	assert.Equal(t, "a", w.Current())
	assert.Empty(t, w.Answers())
	assert.False(t, w.History().CanGoBack())
}
