package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/utils"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var showMatch string

func init() {
	showCmd.Flags().StringVarP(&showMatch, "match", "m", "", "only list profiles matching a glob pattern")
}

var showCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "List profiles, or print one profile",
	Long: `Without arguments, lists profile names. With a profile name, prints the
profile as JSON. Encrypted values are shown in their stored form.

Examples:
  edtoken show
  edtoken show --match 'work-*'
  edtoken show work`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.ShowOptions{Match: showMatch}
		if len(args) == 1 {
			opts.Profile = args[0]
		}

		result, err := workflows.Show(context.Background(), opts)
		if err != nil {
			fmt.Println(formatError(err, opts.Profile))
			return reported(err)
		}

		if result.Profile != nil {
			fmt.Println(result.Profile.String())
			return nil
		}

		Logger.Debugf("Found %d profiles", len(result.Profiles))
		if len(result.Profiles) == 0 {
			fmt.Println("No profiles found.")
			return nil
		}
		fmt.Print(utils.NumberedList(result.Profiles))
		return nil
	},
}
