// Package workflows provides high-level orchestration for edtoken commands.
//
// Workflows coordinate multiple operations across packages (configs,
// profiles, templates, wallet, audit) to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, prompts, spinners, and
// output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Supplies a PassphraseFunc that prompts the user
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading configuration and the profile store
//   - Deciding whether a passphrase is needed at all
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Add, Set, Remove, Show: profile store maintenance
//   - Exec: expands a profile's template and runs it in the configured shell
//   - OpenWallet, CloseWallet, WalletStatus: the profile's wallet file
//   - Log: reads the audit trail
//   - ShowConfig, InitConfig: the config file
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Exec(ctx, opts)
//	if errors.Is(err, kerrors.ErrMissingKey) {
//	    // Tell the user which key to set
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Exec hands it to the Runner so the child process dies with the context.
package workflows
