package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/utils"
	"github.com/thecoblack/edtoken/internal/wallet"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var walletAsym bool

func init() {
	walletOpenCmd.Flags().BoolVar(&walletAsym, "asym", false, "decrypt {?name} values with a key pair (not available)")

	walletCmd.AddCommand(walletOpenCmd)
	walletCmd.AddCommand(walletCloseCmd)
	walletCmd.AddCommand(walletStatusCmd)
}

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Open or close a profile's wallet file",
	Long: `A wallet is a text file, named by the profile's "file" key, whose lines
contain {name} and {?name} placeholders. Opening it writes the expanded text
in place and keeps the original in the cache directory. Closing it restores
the original.`,
}

var walletOpenCmd = &cobra.Command{
	Use:   "open <profile>",
	Short: "Expand the wallet file in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := args[0]

		kind := secrets.Symmetric
		if walletAsym {
			kind = secrets.Asymmetric
		}

		spinner, cleanup := startSpinner("Opening wallet...", verbose)
		defer cleanup()

		result, err := workflows.OpenWallet(context.Background(), workflows.WalletOptions{
			Profile:    profile,
			Kind:       kind,
			Passphrase: passphrasePrompt(spinner, false),
		})
		if err != nil {
			spinner.FinalMSG = formatError(err, profile)
			return reported(err)
		}
		Logger.Debugf("Original kept at %s", result.CachePath)

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Wallet opened\n" +
			"The following file now holds plaintext:" + utils.FormatPaths([]string{result.File}) +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprintf("edtoken wallet close %s", profile) + " when you are done"
		cleanup()

		if result.SuspectPassphrase {
			Logger.WarnfUser("The opened file is not valid text; the passphrase may be wrong. Close it and try again")
		}
		return nil
	},
}

var walletCloseCmd = &cobra.Command{
	Use:   "close <profile>",
	Short: "Restore the wallet file from the cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalletClose,
}

// closeWalletCmd keeps the original top-level spelling.
var closeWalletCmd = &cobra.Command{
	Use:   "closewallet <profile>",
	Short: "Same as 'wallet close'",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalletClose,
}

func runWalletClose(cmd *cobra.Command, args []string) error {
	profile := args[0]

	spinner, cleanup := startSpinner("Closing wallet...", verbose)
	defer cleanup()

	result, err := workflows.CloseWallet(context.Background(), workflows.WalletOptions{Profile: profile})
	if err != nil {
		spinner.FinalMSG = formatError(err, profile)
		return reported(err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Wallet closed\n" +
		"The following file was restored:" + utils.FormatPaths([]string{result.File})
	return nil
}

var walletStatusCmd = &cobra.Command{
	Use:   "status <profile>",
	Short: "Show whether the wallet is open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := args[0]

		result, err := workflows.WalletStatus(context.Background(), workflows.WalletOptions{Profile: profile})
		if err != nil {
			fmt.Println(formatError(err, profile))
			return reported(err)
		}

		state := ui.Muted.Sprint(result.State.String())
		if result.State == wallet.Open {
			state = ui.Warning.Sprint(result.State.String())
		}
		fmt.Printf("%s: %s %s\n", ui.Highlight.Sprint(profile), state, ui.Path.Sprint(result.File))
		return nil
	},
}
