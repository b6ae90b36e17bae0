package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thecoblack/edtoken/internal/profiles"
	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/ui"
	"github.com/thecoblack/edtoken/internal/utils"
	"github.com/thecoblack/edtoken/internal/workflows"
)

var (
	setKey      string
	setValue    string
	setSym      bool
	setAsym     bool
	setTemplate string
	setInput    string
)

func init() {
	setCmd.Flags().StringVarP(&setKey, "key", "k", "", "key to set")
	setCmd.Flags().StringVarP(&setValue, "value", "V", "", "value to store (prompted for tokens when omitted)")
	setCmd.Flags().BoolVar(&setSym, "sym", false, "encrypt the value with a passphrase")
	setCmd.Flags().BoolVar(&setAsym, "asym", false, "encrypt the value with a key pair (not available)")
	setCmd.Flags().StringVar(&setTemplate, "temp", "", "set the profile's command template")
	setCmd.Flags().StringVarP(&setInput, "input", "i", "", "read the value from a file, or - for stdin")

	setCmd.MarkFlagsMutuallyExclusive("sym", "asym")
	setCmd.MarkFlagsMutuallyExclusive("value", "input")
}

var setCmd = &cobra.Command{
	Use:   "set <profile>",
	Short: "Set a value in a profile",
	Long: `Sets a key in a profile, creating the profile if it does not exist.

Plain values are referenced from templates as {key}. Values stored with --sym
are encrypted with a passphrase and referenced as {?key}.

Examples:
  edtoken set work -k user -V alice
  edtoken set work -k token --sym                 # prompts for token and passphrase
  edtoken set work --temp 'curl -u {user}:{?token} https://api.example.com'
  edtoken set work -k file -V ~/.netrc            # wallet file
  edtoken set work -k template -i script.sh      # template from a file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := args[0]

		key := setKey
		value := setValue
		haveValue := cmd.Flags().Changed("value")

		if cmd.Flags().Changed("temp") {
			key = profiles.TemplateKey
			value = setTemplate
			haveValue = true
		}
		if key == "" {
			return errors.New("a key is required: use --key or --temp")
		}

		if setInput != "" {
			data, err := utils.ReadInput(setInput)
			if err != nil {
				return err
			}
			value = strings.TrimRight(string(data), "\r\n")
			haveValue = true
		}

		encrypt := setSym || setAsym
		kind := secrets.Symmetric
		if setAsym {
			kind = secrets.Asymmetric
		}

		if encrypt && !haveValue && kind == secrets.Symmetric {
			token, err := readSecret("Token: ")
			if err != nil {
				return err
			}
			value = token
		}

		Logger.Infof("Setting %s in profile %s (encrypted=%t)", key, profile, encrypt)

		spinner, cleanup := startSpinner("Saving profile...", verbose)
		defer cleanup()

		result, err := workflows.Set(context.Background(), workflows.SetOptions{
			Profile:    profile,
			Key:        key,
			Value:      value,
			Encrypt:    encrypt,
			Kind:       kind,
			Passphrase: passphrasePrompt(spinner, true),
		})
		if err != nil {
			spinner.FinalMSG = formatError(err, profile)
			return reported(err)
		}

		msg := ui.Success.Sprint("✓") + " Set " + ui.Key.Sprint(key) + " in " + ui.Highlight.Sprint(profile)
		if result.Encrypted {
			msg += " " + ui.Muted.Sprint("encrypted")
		}
		if result.Created {
			msg += "\n" + ui.Info.Sprint("→") + " Profile " + ui.Highlight.Sprint(profile) + " was created"
		}
		spinner.FinalMSG = msg
		cleanup()

		if !result.Referenceable {
			Logger.WarnfUser("%s cannot be used in a template: names may only contain letters, digits, '_' and '-'", ui.Key.Sprint(key))
		}
		printProfile(result.Profile)
		return nil
	},
}
