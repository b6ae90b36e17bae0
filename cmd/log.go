package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/audit"
	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var (
	logLimit   int
	logProfile string
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "show only the last N entries")
	logCmd.Flags().StringVarP(&logProfile, "profile", "p", "", "filter by profile")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of profile changes, exec runs, and wallet operations.

Auditing is off by default. Turn it on with audit_log = true in config.toml or
EDTOKEN_AUDIT_LOG=true. Values and passphrases are never logged.

Examples:
  edtoken log
  edtoken log -n 10
  edtoken log --profile work`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Log(context.Background(), workflows.LogOptions{
			Limit:   logLimit,
			Profile: logProfile,
		})
		if err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " Failed to read audit log: " + err.Error())
			return reported(err)
		}

		Logger.Debugf("Read %d entries from %s", len(result.Entries), result.Path)

		if len(result.Entries) == 0 {
			fmt.Println("No audit log entries found.")
			if !result.Enabled {
				fmt.Println(ui.Info.Sprint("→") + " Audit logging is off. Set " + ui.Code.Sprint("audit_log = true") + " in config.toml to enable it")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Printf("%-19s  %-12s  %-12s  %s\n", formatTimestamp(e.Timestamp), e.User, e.Operation, formatDetails(e))
		}
		return nil
	},
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDetails(e audit.Entry) string {
	details := e.Profile
	if e.Key != "" {
		details += " " + ui.Key.Sprint(e.Key)
	}
	if e.File != "" {
		details += " " + ui.Path.Sprint(e.File)
	}
	return details
}
