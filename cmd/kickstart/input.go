package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/chzyer/readline"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
	"github.com/gavbarosee/react-kickstart-sub000/pkg/answers"
)

var ansiEscapeRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
var caretEscapeRE = regexp.MustCompile(`\^\[\[[0-9;?]*[ -/]*[@-~]`)

// readPromptLine reads one line from in with readline, falling back to a
// plain line read when the terminal cannot be driven. in is closed before
// returning so keys typed afterwards go to the next prompt. Ctrl+C and EOF
// return wizard.ErrUserCancelled.
func readPromptLine(in io.ReadCloser, prompt string) (string, error) {
	defer in.Close()

	rl, err := readline.NewEx(&readline.Config{Prompt: prompt, Stdin: in})
	if err == nil {
		line, err := rl.Readline()
		_ = rl.Close()
		switch {
		case err == nil:
			return sanitizeConsoleInput(line), nil
		case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
			return "", wizard.ErrUserCancelled
		default:
			return "", err
		}
	}

	fmt.Print(prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", wizard.ErrUserCancelled
		}
		return "", err
	}
	return sanitizeConsoleInput(line), nil
}

func sanitizeConsoleInput(raw string) string {
	raw = ansiEscapeRE.ReplaceAllString(raw, "")
	raw = caretEscapeRE.ReplaceAllString(raw, "")
	raw = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(raw)
}

// askProjectName prompts until read returns a valid package name.
func askProjectName(read func(prompt string) (string, error), warn func(error)) (string, error) {
	for {
		name, err := read("\033[1mProject name:\033[0m ")
		if err != nil {
			return "", err
		}
		if name == "" {
			name = defaultProjectName
		}
		if err := answers.ValidateProjectName(name); err != nil {
			warn(err)
			continue
		}
		return name, nil
	}
}

const defaultProjectName = "my-react-app"
