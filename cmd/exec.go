package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var (
	execSym    bool
	execAsym   bool
	execDryRun bool
	execCopy   bool
)

func init() {
	execCmd.Flags().BoolVar(&execSym, "sym", false, "decrypt {?name} values with a passphrase (default)")
	execCmd.Flags().BoolVar(&execAsym, "asym", false, "decrypt {?name} values with a key pair (not available)")
	execCmd.Flags().BoolVar(&execDryRun, "dry-run", false, "print the expanded command instead of running it")
	execCmd.Flags().BoolVar(&execCopy, "copy", false, "copy the expanded command to the clipboard instead of running it")

	execCmd.MarkFlagsMutuallyExclusive("sym", "asym")
	execCmd.MarkFlagsMutuallyExclusive("dry-run", "copy")
}

var execCmd = &cobra.Command{
	Use:   "exec <profile>",
	Short: "Expand a profile's template and run it",
	Long: `Expands the profile's template and runs the result with the configured
shell. A passphrase is requested only when the template contains {?name}
placeholders. The exit status of the command becomes edtoken's exit status.

Examples:
  edtoken exec work
  edtoken exec work --dry-run
  edtoken exec work --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := args[0]

		kind := secrets.Symmetric
		if execAsym {
			kind = secrets.Asymmetric
		}

		result, err := workflows.Exec(context.Background(), workflows.ExecOptions{
			Profile:    profile,
			Kind:       kind,
			Passphrase: passphrasePrompt(nil, false),
			DryRun:     execDryRun,
			Copy:       execCopy,
			Runner:     commandRunner,
		})
		if err != nil {
			fmt.Println(formatError(err, profile))
			return reported(err)
		}

		if result.SuspectPassphrase {
			Logger.WarnfUser("The decrypted values are not valid text; the passphrase may be wrong")
		}

		switch {
		case execDryRun:
			fmt.Println(result.Command)
		case result.Copied:
			fmt.Println(ui.Success.Sprint("✓") + " Command copied to the clipboard")
		case result.ExitCode != 0:
			Logger.Debugf("Command exited with status %d", result.ExitCode)
			return &ExitCodeError{Code: result.ExitCode}
		}
		return nil
	},
}
