package workflows

import (
	"context"
	"fmt"

	"github.com/thecoblack/edtoken/internal/audit"
	"github.com/thecoblack/edtoken/internal/configs"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/profiles"
	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/utils"
	"github.com/thecoblack/edtoken/internal/wallet"
)

// WalletOptions configures the wallet workflows.
type WalletOptions struct {
	Profile string
	Kind    secrets.CipherKind

	// Passphrase is only called by OpenWallet, and only when the file has
	// {?name} placeholders.
	Passphrase PassphraseFunc
}

// WalletResult contains the outcome of a wallet operation.
type WalletResult struct {
	File      string
	CachePath string
	State     wallet.State

	// SuspectPassphrase is set when the opened file is not valid UTF-8.
	SuspectPassphrase bool
}

// OpenWallet expands the profile's wallet file in place.
//
// Returns ErrMissingKey if the profile has no file key.
// Returns ErrFileNotFound if the file does not exist.
// Returns ErrAlreadyOpen if the wallet is already open.
func OpenWallet(ctx context.Context, opts WalletOptions) (*WalletResult, error) {
	cfg, w, err := loadWallet(opts)
	if err != nil {
		return nil, err
	}

	asked := false
	expanded, err := w.OpenFunc(func() (string, error) {
		asked = true
		return askPassphrase(opts.Passphrase)
	})
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpWalletOpen)
	entry.Profile = opts.Profile
	entry.File = w.Path()
	recordAudit(cfg, entry)

	return &WalletResult{
		File:              w.Path(),
		CachePath:         w.CachePath(),
		State:             wallet.Open,
		SuspectPassphrase: asked && looksGarbled(expanded),
	}, nil
}

// CloseWallet restores the profile's wallet file from the cache.
//
// Returns ErrAlreadyClosed if the wallet is not open.
func CloseWallet(ctx context.Context, opts WalletOptions) (*WalletResult, error) {
	cfg, w, err := loadWallet(opts)
	if err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpWalletClose)
	entry.Profile = opts.Profile
	entry.File = w.Path()
	recordAudit(cfg, entry)

	return &WalletResult{File: w.Path(), CachePath: w.CachePath(), State: wallet.Closed}, nil
}

// WalletStatus reports whether the profile's wallet is open.
func WalletStatus(ctx context.Context, opts WalletOptions) (*WalletResult, error) {
	_, w, err := loadWallet(opts)
	if err != nil {
		return nil, err
	}

	state, err := w.CurrentState()
	if err != nil {
		return nil, err
	}
	return &WalletResult{File: w.Path(), CachePath: w.CachePath(), State: state}, nil
}

func loadWallet(opts WalletOptions) (*configs.Config, *wallet.Wallet, error) {
	cfg, store, err := loadStore()
	if err != nil {
		return nil, nil, err
	}

	profile, err := store.Get(opts.Profile)
	if err != nil {
		return nil, nil, err
	}

	file, ok := profile.Content.File()
	if !ok {
		return nil, nil, fmt.Errorf("%w: profile %q has no %q", kerrors.ErrMissingKey, opts.Profile, profiles.FileKey)
	}
	if file, err = utils.ExpandHome(file); err != nil {
		return nil, nil, err
	}

	w, err := wallet.New(file, cfg.CachePath(file), profile.Content)
	if err != nil {
		return nil, nil, err
	}
	w.Kind = opts.Kind

	return cfg, w, nil
}
