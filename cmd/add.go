package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var addCmd = &cobra.Command{
	Use:   "add <profile>",
	Short: "Create an empty profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := args[0]
		Logger.Infof("Adding profile %s", profile)

		spinner, cleanup := startSpinner("Adding profile...", verbose)
		defer cleanup()

		result, err := workflows.Add(context.Background(), workflows.AddOptions{Profile: profile})
		if err != nil {
			spinner.FinalMSG = formatError(err, profile)
			return reported(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Profile " + ui.Highlight.Sprint(profile) + " created\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprintf("edtoken set %s -k <key> -V <value>", profile) + " to add values"
		cleanup()
		printProfile(result.Profile)
		return nil
	},
}
