package cmd

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
	Long: `edtoken reads config.toml from the user config directory. Every setting can
be overridden with an environment variable:

  profiles_path   EDTOKEN_PROFILES
  cache_dir       EDTOKEN_CACHE_DIR
  shell           EDTOKEN_SHELL
  audit_log       EDTOKEN_AUDIT_LOG
  audit_path      EDTOKEN_AUDIT_PATH`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.ShowConfig(context.Background())
		if err != nil {
			fmt.Println(formatError(err, ""))
			return reported(err)
		}

		source := ui.Path.Sprint(result.Path)
		if !result.FileExists {
			source += " " + ui.Muted.Sprint("not created")
		}
		fmt.Println("# config file: " + source)

		return toml.NewEncoder(cmd.OutOrStdout()).Encode(result.Config)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Writing config...", verbose)
		defer cleanup()

		result, err := workflows.InitConfig(context.Background(), workflows.InitConfigOptions{Force: configForce})
		if err != nil {
			spinner.FinalMSG = formatError(err, "")
			return reported(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Config written to " + ui.Path.Sprint(result.Path)
		return nil
	},
}
