package main

import "sync"

var (
	ttyMu        sync.Mutex
	ttyRestorers []func() error
)

// onExitRestoreTTY registers fn to run when the process exits on a signal.
func onExitRestoreTTY(fn func() error) {
	ttyMu.Lock()
	defer ttyMu.Unlock()
	ttyRestorers = append(ttyRestorers, fn)
}

// restoreTTYOnExit runs the registered restorers in reverse order, once.
func restoreTTYOnExit() {
	ttyMu.Lock()
	fns := ttyRestorers
	ttyRestorers = nil
	ttyMu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		_ = fns[i]()
	}
}
