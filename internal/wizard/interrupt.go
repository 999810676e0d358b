package wizard

import (
	"context"
	"sync"
)

// Interrupter lets a raw keystroke resolve the current prompt as Back.
//
// Activate must drop any callback left by an earlier activation before
// arming onBack, and onBack must fire at most once per activation.
// Deactivate removes the callback; calling it when nothing is armed is a no-op.
type Interrupter interface {
	Activate(onBack func())
	Deactivate()
}

// NopInterrupter never fires. Use it when no input stream is available.
type NopInterrupter struct{}

func (NopInterrupter) Activate(func()) {}
func (NopInterrupter) Deactivate()     {}

// race settles the first of several completion sources. Later settles are
// discarded.
type race struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
	by    string
}

func newRace() *race {
	return &race{done: make(chan struct{})}
}

func (r *race) settle(by string, value any, err error) bool {
	won := false
	r.once.Do(func() {
		r.value, r.err, r.by = value, err, by
		won = true
		close(r.done)
	})
	return won
}

// Sources that can resolve a prompt, reported in StepResult.ResolvedBy.
const (
	ResolvedByKeystroke = "keystroke"
	ResolvedByPrompt    = "prompt"
	ResolvedByContext   = "context"
)

// promptWithBack runs the prompt against the interrupter's back keystroke.
// Whichever resolves first wins; the interrupter is deactivated exactly once
// and the losing prompt is cancelled and awaited before returning, so at most
// one prompt is ever in flight.
func promptWithBack(ctx context.Context, renderer Renderer, interrupter Interrupter, p Prompt) (any, string, error) {
	r := newRace()

	interrupter.Activate(func() {
		r.settle(ResolvedByKeystroke, Back, nil)
	})

	promptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	promptDone := make(chan struct{})
	go func() {
		defer close(promptDone)
		v, err := renderer.PromptChoice(promptCtx, p)
		r.settle(ResolvedByPrompt, v, err)
	}()

	select {
	case <-r.done:
	case <-ctx.Done():
		r.settle(ResolvedByContext, nil, ctx.Err())
	}

	interrupter.Deactivate()
	cancel()
	<-promptDone

	return r.value, r.by, r.err
}
