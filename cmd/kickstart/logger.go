package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

const (
	clrReset  = "\033[0m"
	clrBold   = "\033[1m"
	clrRed    = "\033[31m"
	clrYellow = "\033[33m"
	clrGreen  = "\033[32m"
	clrCyan   = "\033[36m"
	clrGray   = "\033[90m"
	clrWhite  = "\033[97m"
)

// prettyHandler writes console log lines: a colored level glyph, the message
// in bold and the attributes as key=value pairs. Keys listed in fileOnlyKeys
// are left to the debug log file.
type prettyHandler struct {
	mu    sync.Mutex
	out   io.Writer
	level slog.Level
	attrs []slog.Attr
}

type levelMark struct {
	glyph string
	color string
}

var levelMarks = map[slog.Level]levelMark{
	slog.LevelDebug: {"·", clrGray},
	slog.LevelInfo:  {"✓", clrGreen},
	slog.LevelWarn:  {"⚠", clrYellow},
	slog.LevelError: {"✗", clrRed},
}

var fileOnlyKeys = map[string]bool{"run": true}

func newPrettyLogger(w io.Writer) *slog.Logger {
	return slog.New(&prettyHandler{out: w, level: slog.LevelInfo})
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyHandler{out: h.out, level: h.level, attrs: append(slices.Clip(h.attrs), attrs...)}
}

func (h *prettyHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark, ok := levelMarks[r.Level]
	if !ok {
		mark = levelMarks[slog.LevelDebug]
	}
	msgColor := mark.color
	if r.Level == slog.LevelInfo {
		msgColor = clrWhite
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s%s%s %s%s%s%s", mark.color, mark.glyph, clrReset, msgColor, clrBold, r.Message, clrReset)

	writeAttr := func(a slog.Attr) bool {
		if !fileOnlyKeys[a.Key] {
			fmt.Fprintf(&sb, "  %s%s=%s%s%s%s", clrGray, a.Key, clrReset, colorForValue(a), a.Value.String(), clrReset)
		}
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// colorForValue picks the color of an attribute value. Wizard keys get fixed
// colors; anything else is colored by kind.
func colorForValue(a slog.Attr) string {
	switch a.Key {
	case "error":
		return clrRed
	case "step", "field", "name":
		return clrCyan
	case "resolved_by":
		if a.Value.String() == wizard.ResolvedByKeystroke {
			return clrYellow
		}
		return clrGray
	case "value":
		switch a.Value.String() {
		case "No", "none", "None", "false":
			return clrGray
		}
		return clrGreen
	}

	switch a.Value.Kind() {
	case slog.KindBool:
		if a.Value.Bool() {
			return clrGreen
		}
		return clrGray
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return clrYellow
	}
	if strings.ContainsAny(a.Value.String(), `/\`) {
		return clrCyan
	}
	return clrWhite
}

// teeHandler fans records out to several handlers.
type teeHandler struct {
	handlers []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &teeHandler{handlers: make([]slog.Handler, len(t.handlers))}
	for i, h := range t.handlers {
		out.handlers[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	out := &teeHandler{handlers: make([]slog.Handler, len(t.handlers))}
	for i, h := range t.handlers {
		out.handlers[i] = h.WithGroup(name)
	}
	return out
}
