package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var removeKey string

func init() {
	removeCmd.Flags().StringVarP(&removeKey, "key", "k", "", "remove only this key")
}

var removeCmd = &cobra.Command{
	Use:   "remove <profile>",
	Short: "Remove a profile, or a single key with --key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := args[0]
		Logger.Infof("Removing profile=%s key=%q", profile, removeKey)

		spinner, cleanup := startSpinner("Removing...", verbose)
		defer cleanup()

		result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{
			Profile: profile,
			Key:     removeKey,
		})
		if err != nil {
			spinner.FinalMSG = formatError(err, profile)
			return reported(err)
		}

		if removeKey == "" {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Profile " + ui.Highlight.Sprint(profile) + " removed"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Key.Sprint(removeKey) + " from " + ui.Highlight.Sprint(profile)
		}
		cleanup()

		printProfile(result.Profile)
		return nil
	},
}
