package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/thecoblack/edtoken/internal/logging"
	"github.com/thecoblack/edtoken/internal/ui"
)

var (
	verbose     bool
	debug       bool
	noColor     bool
	showProfile bool
	Logger      logger.Logger

	RootCmd = &cobra.Command{
		Use:   "edtoken",
		Short: "edtoken - keep command-line credentials encrypted in named profiles.",
		Long: `edtoken stores credentials in named profiles and expands them into
commands and files only when you need them.

Values marked as tokens are encrypted with a passphrase. A profile template
such as "curl -u {user}:{?token} {host}" is expanded and run with exec, and a
profile's wallet file can be opened (expanded in place) and closed again.

Run 'edtoken help <command>' for more details on a specific command.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColor()
			}
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("edtoken", "", "green", true).Print()
			fmt.Println()
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edtoken --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	RootCmd.PersistentFlags().BoolVar(&showProfile, "show", false, "print the profile after changing it")

	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(execCmd)
	RootCmd.AddCommand(walletCmd)
	RootCmd.AddCommand(closeWalletCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

// ExitCodeError carries the exit status of a command run by exec.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var rep *reportedError
	if !errors.As(err, &rep) {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	}
	return 1
}
