// kickstart - interactive setup wizard for new React projects
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

var configPath string
var debugLogs bool
var assumeYes bool
var answersOutPath string
var noClear bool

// mainSigCh receives SIGINT/SIGTERM. Prompts in raw mode report Ctrl+C as an
// error instead, which surfaces as wizard.ErrUserCancelled.
var mainSigCh = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:           "kickstart [project-directory]",
	Short:         "Set up a new React project interactively",
	Long:          "Walks through package manager, framework, language, styling, state management,\nAPI, testing, git, deployment and editor choices. Press the back key (← by default)\nor pick \"Back\" to revisit the previous question.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = initDebugLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir string
		if len(args) == 1 {
			dir = args[0]
		}
		return runWizard(cmd.Context(), dir)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Accept the default answer for every question")
	rootCmd.Flags().StringVar(&answersOutPath, "answers-out", "",
		"Write the answers to a YAML/JSON file (optional)")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Path to a config file (default $XDG_CONFIG_HOME/react-kickstart/config.yaml)")
	rootCmd.Flags().BoolVar(&noClear, "no-clear", false, "Do not clear the screen between questions")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging to "+debugLogPath)
}

func main() {
	// Handle Ctrl+C outside prompts: restore the terminal, print a clean
	// message and exit 0.
	signal.Notify(mainSigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-mainSigCh
		restoreTTYOnExit()
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}()

	err := rootCmd.Execute()
	restoreTTYOnExit()
	code := report(os.Stdout, os.Stderr, err)
	if debugCleanup != nil {
		debugCleanup()
	}
	if code != 0 {
		os.Exit(code)
	}
}

// report prints the outcome of a run and returns the exit code.
// A user cancellation is a clean exit.
func report(stdout, stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, wizard.ErrUserCancelled) {
		fmt.Fprintln(stdout, "\nCancelled.")
		return 0
	}

	var ue *userError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "%sError:%s %s\n", clrRed, clrReset, ue.Error())
		if hint := ue.Hint(); hint != "" {
			fmt.Fprintf(stderr, "%sHint:%s %s%s%s\n", clrYellow, clrReset, clrCyan, hint, clrReset)
		}
	} else {
		fmt.Fprintf(stderr, "%sError:%s %v\n", clrRed, clrReset, err)
	}
	return 1
}
