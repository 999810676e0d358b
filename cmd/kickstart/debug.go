package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

const debugLogPath = "tmp/kickstart-debug.log"

var debugLogger *slog.Logger
var debugCleanup func()

// runID tags every debug line of one invocation.
var runID = uuid.NewString()

func initDebugLogger() func() {
	if !debugLogs {
		return nil
	}
	logger, cleanup, err := setupDebugLogger(debugLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to enable debug log: %v\n", err)
		return nil
	}
	debugLogger = logger.With("run", runID)
	debugCleanup = cleanup
	fmt.Println("  Debug log: " + debugLogPath)
	return cleanup
}

func getLogger() *slog.Logger {
	if debugLogs && debugLogger != nil {
		return debugLogger
	}
	return newPrettyLogger(os.Stdout)
}

func setupDebugLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll("tmp", 0700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return newDebugLogger(os.Stdout, f), func() { _ = f.Close() }, nil
}

// newDebugLogger writes pretty output to the console and every level,
// including debug, to file.
func newDebugLogger(console, file io.Writer) *slog.Logger {
	return slog.New(&teeHandler{
		handlers: []slog.Handler{
			&prettyHandler{out: console, level: slog.LevelInfo},
			slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
		},
	})
}
