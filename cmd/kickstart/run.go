package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gavbarosee/react-kickstart-sub000/configs"
	"github.com/gavbarosee/react-kickstart-sub000/internal/keyboard"
	"github.com/gavbarosee/react-kickstart-sub000/internal/prompt"
	"github.com/gavbarosee/react-kickstart-sub000/internal/steps"
	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
	"github.com/gavbarosee/react-kickstart-sub000/pkg/answers"
)

// runWizard resolves the project, runs the questionnaire and hands the
// answers off.
func runWizard(ctx context.Context, dirArg string) error {
	log := getLogger()
	fs := afero.NewOsFs()

	settings, err := configs.Load(configPath)
	if err != nil {
		return withHint(err, "Fix the config file ("+configHintPath()+") or unset KICKSTART_* variables")
	}
	if noClear {
		settings.Display.ClearScreen = false
	}
	log.Debug("Settings loaded", "back_keys", strings.Join(settings.Keys.Back, ","), "page_size", settings.Display.PageSize)

	renderer, listener, err := newRenderer(settings, log)
	if err != nil {
		return err
	}
	cleanup := func() {}
	var readLine func(string) (string, error)
	if listener != nil {
		cleanup = func() { _ = listener.Close() }
		readLine = func(p string) (string, error) { return readPromptLine(listener.Input(), p) }
	}
	defer cleanup()

	name, dir, err := resolveProject(fs, dirArg, assumeYes, readLine, func(err error) {
		log.Warn("Invalid project name", "error", err)
	})
	if err != nil {
		return err
	}
	log.Debug("Project resolved", "name", name, "dir", dir)

	cfg := steps.Config(steps.Options{
		Candidates: settings.PackageManager.Candidates,
		Preferred:  settings.PackageManager.Preferred,
	})
	cfg.Renderer = renderer
	if listener != nil {
		cfg.Interrupter = listener
	}
	cfg.OnStep = func(step string, res wizard.StepResult) {
		log.Debug("Step resolved", "step", step, "resolved_by", res.ResolvedBy, "value", fmt.Sprint(res.Selection))
	}
	w, err := wizard.New(cfg)
	if err != nil {
		return fmt.Errorf("build wizard: %w", err)
	}

	result, err := w.Run(ctx)
	if err != nil {
		log.Debug("Wizard stopped", "error", err, "history", strings.Join(w.History().Steps(), ","))
		return err
	}
	cleanup()

	printSummary(log, name, dir, result)

	out := answersOutPath
	if out == "" {
		out = settings.Output.AnswersPath
	}
	if out == "" {
		return nil
	}
	doc := answers.Document{ProjectName: name, Directory: dir, Answers: result.Map()}
	if err := answers.Save(fs, out, doc); err != nil {
		return fmt.Errorf("save answers: %w", err)
	}
	log.Info("Answers saved", "path", out)
	return nil
}

// resolveProject returns the package name and absolute directory of the new
// project. Without an argument the name is asked for through readLine.
func resolveProject(fs afero.Fs, dirArg string, nonInteractive bool, readLine func(string) (string, error), warn func(error)) (string, string, error) {
	if dirArg == "" {
		if nonInteractive {
			return "", "", &userError{
				msg:  "a project directory is required with --yes",
				hint: "Run: kickstart my-app --yes",
			}
		}
		name, err := askProjectName(readLine, warn)
		if err != nil {
			return "", "", err
		}
		dirArg = name
	}

	dir, err := filepath.Abs(dirArg)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", dirArg, err)
	}
	name := filepath.Base(dir)
	if err := answers.ValidateProjectName(name); err != nil {
		return "", "", withHint(err, "Use a lowercase name such as "+defaultProjectName)
	}

	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return "", "", fmt.Errorf("stat %s: %w", dir, err)
	}
	if exists {
		empty, err := afero.IsEmpty(fs, dir)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", dir, err)
		}
		if !empty {
			return "", "", &userError{
				msg:  fmt.Sprintf("directory %s already exists and is not empty", dir),
				hint: "Choose a different project name or remove the directory",
			}
		}
	}
	return name, dir, nil
}

// newRenderer picks the renderer for this run. Interactive runs own stdin
// through the returned keyboard listener, which is nil with --yes. Closing the
// listener restores the terminal.
func newRenderer(settings configs.Settings, log *slog.Logger) (wizard.Renderer, *keyboard.Listener, error) {
	if assumeYes {
		return prompt.NewAuto(log), nil, nil
	}

	listener, err := keyboard.New(os.Stdin, settings.Keys.Back)
	if err != nil {
		return nil, nil, withHint(err, "Supported back keys: "+strings.Join(keyboard.KeyNames(), ", "))
	}
	if !listener.IsTerminal() {
		return nil, nil, &userError{
			msg:  "stdin is not a terminal",
			hint: "Pass --yes to accept the defaults non-interactively",
		}
	}
	onExitRestoreTTY(listener.Close)

	renderer := prompt.NewSurvey(prompt.Options{
		Input:          func() prompt.Stream { return listener.Input() },
		Fields:         steps.AllFields,
		Labels:         steps.FieldLabels,
		Format:         steps.FormatValue,
		ClearScreen:    settings.Display.ClearScreen,
		PageSize:       settings.Display.PageSize,
		BackLabel:      settings.Display.BackLabel,
		SeparatorLabel: settings.Display.SeparatorLabel,
		BackHint:       backKeyHint(settings.Keys.Back),
	})
	return renderer, listener, nil
}

var keyGlyphs = map[string]string{
	"left":      "←",
	"backspace": "⌫",
	"ctrl+b":    "Ctrl+B",
	"escape":    "Esc",
}

// backKeyHint renders the configured back keys for the step header.
func backKeyHint(keys []string) string {
	var out []string
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if g, ok := keyGlyphs[k]; ok {
			out = append(out, g)
		} else {
			out = append(out, k)
		}
	}
	return strings.Join(out, "/")
}

func printSummary(log *slog.Logger, name, dir string, result wizard.Answers) {
	log.Info("Project configured", "name", name, "dir", dir)
	for _, f := range steps.AllFields {
		if !result.Has(f) {
			continue
		}
		log.Info(steps.FieldLabels[f], "value", steps.FormatValue(f, result[f]))
	}
}

func configHintPath() string {
	if configPath != "" {
		return configPath
	}
	return configs.UserConfigPath()
}
