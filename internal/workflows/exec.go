package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/thecoblack/edtoken/internal/audit"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/templates"
)

// Runner executes an expanded command.
type Runner interface {
	// Run executes command with shell and returns its exit status. A non-zero
	// exit status is not an error.
	Run(ctx context.Context, shell, command string) (int, error)
}

// ShellRunner runs commands as `shell -c command` attached to the process's
// standard streams.
type ShellRunner struct{}

// Run implements Runner.
func (ShellRunner) Run(ctx context.Context, shell, command string) (int, error) {
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("running %s: %w", shell, err)
	}
	return 0, nil
}

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// ExecOptions configures the exec workflow.
type ExecOptions struct {
	Profile string
	Kind    secrets.CipherKind

	// Passphrase is only called when the template has {?name} placeholders.
	Passphrase PassphraseFunc

	// DryRun returns the expanded command instead of running it.
	DryRun bool

	// Copy puts the expanded command on the clipboard instead of running it.
	Copy bool

	// Runner defaults to ShellRunner.
	Runner Runner
}

// ExecResult contains the outcome of an exec operation.
type ExecResult struct {
	// Command is the expanded command. Only set for DryRun.
	Command string

	Copied   bool
	Ran      bool
	ExitCode int

	// SuspectPassphrase is set when decrypted output is not valid UTF-8.
	SuspectPassphrase bool
}

// Exec expands the profile's template and runs it with the configured shell.
//
// Returns ErrProfileNotFound for an unknown profile.
// Returns ErrNoTemplate if the profile has no template.
// Returns ErrMissingKey if a placeholder names an absent key.
// Returns ErrCipherUnavailable for the asymmetric kind.
func Exec(ctx context.Context, opts ExecOptions) (*ExecResult, error) {
	cfg, store, err := loadStore()
	if err != nil {
		return nil, err
	}

	profile, err := store.Get(opts.Profile)
	if err != nil {
		return nil, err
	}

	tmpl, ok := profile.Content.Template()
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", kerrors.ErrNoTemplate, opts.Profile)
	}

	expander := templates.Expander{Kind: opts.Kind}
	if templates.HasEncrypted(tmpl) {
		if _, err := secrets.NewTokenCipher(opts.Kind); err != nil {
			return nil, err
		}
		if expander.Passphrase, err = askPassphrase(opts.Passphrase); err != nil {
			return nil, err
		}
	}

	command, err := expander.Expand(tmpl, profile.Content)
	if err != nil {
		return nil, err
	}

	result := &ExecResult{
		SuspectPassphrase: expander.Passphrase != "" && looksGarbled([]byte(command)),
	}

	entry := audit.LogWithUser(audit.OpExec)
	entry.Profile = opts.Profile

	switch {
	case opts.DryRun:
		result.Command = command
		return result, nil
	case opts.Copy:
		if err := copyToClipboard(command); err != nil {
			return nil, fmt.Errorf("copying to clipboard: %w", err)
		}
		result.Copied = true
		recordAudit(cfg, entry)
		return result, nil
	}

	runner := opts.Runner
	if runner == nil {
		runner = ShellRunner{}
	}

	recordAudit(cfg, entry)
	result.ExitCode, err = runner.Run(ctx, cfg.Shell, command)
	if err != nil {
		return nil, err
	}
	result.Ran = true

	return result, nil
}
