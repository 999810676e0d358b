// Package keyboard watches the process input stream for a "go back" keystroke
// while a prompt is running.
//
// The Listener is the only reader of the terminal while the wizard runs. A pump
// goroutine reads raw chunks and either fires the armed back callback or
// forwards the bytes to the input of the current prompt. Prompts receive that
// input through Input, which keeps the real terminal descriptor so prompt
// libraries can still switch the terminal into raw mode. Keys typed while no
// prompt input is open are held and replayed to the next one.
package keyboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

// compile-time interface compliance check
var _ wizard.Interrupter = (*Listener)(nil)

// ErrDeactivated is returned from a prompt input closed by Deactivate.
var ErrDeactivated = errors.New("keyboard: prompt input deactivated")

// maxPending bounds the keys held between prompts; the most recent are kept.
const maxPending = 64

var keySequences = map[string][][]byte{
	"left":      {[]byte("\x1b[D"), []byte("\x1bOD")},
	"backspace": {{0x7f}, {0x08}},
	"ctrl+b":    {{0x02}},
	"escape":    {{0x1b}},
}

// KeyNames lists the key names accepted by ParseKeys.
func KeyNames() []string {
	names := make([]string, 0, len(keySequences))
	for k := range keySequences {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ParseKeys resolves key names to the byte sequences terminals send for them.
func ParseKeys(names []string) ([][]byte, error) {
	var out [][]byte
	for _, n := range names {
		seqs, ok := keySequences[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown back key %q (supported: %s)", n, strings.Join(KeyNames(), ", "))
		}
		out = append(out, seqs...)
	}
	return out, nil
}

// Listener implements wizard.Interrupter over a terminal input stream.
type Listener struct {
	src  io.Reader
	fd   uintptr
	back [][]byte

	startOnce sync.Once
	closeOnce sync.Once
	restore   func() error

	mu          sync.Mutex
	onBack      func()
	fired       bool
	sink        *io.PipeWriter
	pending     []byte
	eof         bool
	activations int
}

// New returns a Listener reading f. When f is a terminal its current state is
// captured so Close can restore it.
func New(f *os.File, backKeys []string) (*Listener, error) {
	l, err := NewFromReader(f, f.Fd(), backKeys)
	if err != nil {
		return nil, err
	}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if state, err := term.GetState(fd); err == nil {
			l.restore = func() error { return term.Restore(fd, state) }
		}
	}
	return l, nil
}

// NewFromReader returns a Listener over an arbitrary reader. fd is reported by
// prompt inputs and should name the terminal src reads from, if any.
func NewFromReader(src io.Reader, fd uintptr, backKeys []string) (*Listener, error) {
	back, err := ParseKeys(backKeys)
	if err != nil {
		return nil, err
	}
	if len(back) == 0 {
		return nil, errors.New("keyboard: at least one back key is required")
	}
	return &Listener{src: src, fd: fd, back: back}, nil
}

// Activate arms onBack for the next back keystroke. A callback left armed by
// an earlier activation is dropped first. onBack fires at most once.
func (l *Listener) Activate(onBack func()) {
	l.start()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.disarmLocked()
	l.onBack = onBack
	l.activations++
}

func (l *Listener) disarmLocked() {
	l.onBack = nil
	l.fired = false
}

// Deactivate disarms the callback and closes the current prompt input, which
// unblocks a prompt that lost the race.
func (l *Listener) Deactivate() {
	l.mu.Lock()
	l.disarmLocked()
	sink := l.sink
	l.sink = nil
	l.mu.Unlock()

	if sink != nil {
		_ = sink.CloseWithError(ErrDeactivated)
	}
}

// Listeners reports how many back callbacks are armed (0 or 1).
func (l *Listener) Listeners() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.onBack != nil {
		return 1
	}
	return 0
}

// Activations reports how many times Activate has been called.
func (l *Listener) Activations() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activations
}

// Input returns a fresh stream for one prompt, starting with any keys typed
// since the previous input was closed. Any previous prompt input is closed.
// Callers must Close the input when the prompt returns.
func (l *Listener) Input() *Input {
	l.start()

	pr, pw := io.Pipe()

	l.mu.Lock()
	old := l.sink
	l.sink = pw
	pending := l.pending
	l.pending = nil
	eof := l.eof
	l.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	if eof {
		_ = pw.CloseWithError(io.EOF)
	}

	in := &Input{pr: pr, pw: pw, l: l, fd: l.fd, r: pr}
	if len(pending) > 0 {
		in.r = io.MultiReader(bytes.NewReader(pending), pr)
	}
	return in
}

// Pending reports how many typed-ahead bytes wait for the next input.
func (l *Listener) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

func (l *Listener) release(pw *io.PipeWriter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink == pw {
		l.sink = nil
	}
}

// IsTerminal reports whether the listener reads from a terminal.
func (l *Listener) IsTerminal() bool {
	return term.IsTerminal(int(l.fd))
}

// Close deactivates the listener and restores the terminal state captured by
// New. It is safe to call more than once, including from a signal handler.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.Deactivate()
		if l.restore != nil {
			err = l.restore()
		}
	})
	return err
}

func (l *Listener) start() {
	l.startOnce.Do(func() {
		go l.pump()
	})
}

func (l *Listener) pump() {
	buf := make([]byte, 256)
	for {
		n, err := l.src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			l.dispatch(chunk)
		}
		if err != nil {
			l.mu.Lock()
			l.eof = true
			sink := l.sink
			l.sink = nil
			l.mu.Unlock()
			if sink != nil {
				_ = sink.CloseWithError(io.EOF)
			}
			return
		}
	}
}

func (l *Listener) dispatch(chunk []byte) {
	l.mu.Lock()
	if l.onBack != nil && l.isBack(chunk) {
		cb := l.onBack
		first := !l.fired
		l.fired = true
		l.mu.Unlock()
		if first {
			cb()
		}
		return
	}
	l.mu.Unlock()

	l.forward(chunk)
}

// forward writes chunk to the current prompt input. Bytes no input accepted
// are held for the next one.
func (l *Listener) forward(chunk []byte) {
	for len(chunk) > 0 {
		l.mu.Lock()
		sink := l.sink
		if sink == nil {
			l.holdLocked(chunk)
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()

		n, err := sink.Write(chunk)
		chunk = chunk[n:]
		if err == nil {
			return
		}
		l.release(sink)
	}
}

func (l *Listener) holdLocked(chunk []byte) {
	l.pending = append(l.pending, chunk...)
	if over := len(l.pending) - maxPending; over > 0 {
		l.pending = append([]byte(nil), l.pending[over:]...)
	}
}

func (l *Listener) isBack(chunk []byte) bool {
	for _, seq := range l.back {
		if bytes.Equal(chunk, seq) {
			return true
		}
	}
	return false
}

// Input is the per-prompt end of the listener. It satisfies survey's
// terminal.FileReader.
type Input struct {
	r  io.Reader
	pr *io.PipeReader
	pw *io.PipeWriter
	l  *Listener
	fd uintptr
}

func (in *Input) Read(p []byte) (int, error) { return in.r.Read(p) }

// Close detaches the input from the listener. Keys typed afterwards are held
// for the next Input.
func (in *Input) Close() error {
	in.l.release(in.pw)
	return in.pr.Close()
}

// Fd returns the descriptor of the underlying terminal.
func (in *Input) Fd() uintptr { return in.fd }
