package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thecoblack/edtoken/internal/audit"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/profiles"
	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/utils"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	Profile string
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Profile *profiles.Profile
}

// Add creates an empty profile.
//
// Returns ErrProfileExists if the profile is already present.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	cfg, store, err := loadStore()
	if err != nil {
		return nil, err
	}

	if err := store.Add(opts.Profile); err != nil {
		return nil, err
	}
	if err := store.Save(); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpAdd)
	entry.Profile = opts.Profile
	recordAudit(cfg, entry)

	profile, err := store.Get(opts.Profile)
	if err != nil {
		return nil, err
	}
	return &AddResult{Profile: profile}, nil
}

// SetOptions configures the set workflow.
type SetOptions struct {
	Profile string
	Key     string
	Value   string

	// Encrypt stores Value as an EncryptedValue using Kind.
	Encrypt bool
	Kind    secrets.CipherKind

	// Passphrase is only called when Encrypt is set.
	Passphrase PassphraseFunc
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	Profile   *profiles.Profile
	Encrypted bool

	// Referenceable is false when Key cannot be used in a {key} placeholder.
	Referenceable bool

	// Created is true when the profile did not exist before.
	Created bool
}

// Set stores a value under a key, creating the profile if needed.
//
// Returns ErrReservedKey when asked to encrypt the template or file key.
// Returns ErrCipherUnavailable for the asymmetric kind.
// Returns ErrPassphraseRequired if no passphrase is supplied for encryption.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	if opts.Key == "" {
		return nil, fmt.Errorf("%w: key cannot be empty", kerrors.ErrMissingKey)
	}
	if opts.Encrypt && (opts.Key == profiles.TemplateKey || opts.Key == profiles.FileKey) {
		return nil, fmt.Errorf("%w: %q must stay a plain value", kerrors.ErrReservedKey, opts.Key)
	}

	cfg, store, err := loadStore()
	if err != nil {
		return nil, err
	}

	value := profiles.PlainValue(opts.Value)
	if opts.Encrypt {
		tc, err := secrets.NewTokenCipher(opts.Kind)
		if err != nil {
			return nil, err
		}
		passphrase, err := askPassphrase(opts.Passphrase)
		if err != nil {
			return nil, err
		}
		ev, err := tc.Encrypt([]byte(opts.Value), passphrase)
		if err != nil {
			return nil, fmt.Errorf("encrypting %q: %w", opts.Key, err)
		}
		value = profiles.EncryptedValue(ev)
	}

	created := !store.Exists(opts.Profile)
	if err := store.Set(opts.Profile, opts.Key, value); err != nil {
		return nil, err
	}
	if err := store.Save(); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpSet)
	entry.Profile = opts.Profile
	entry.Key = opts.Key
	recordAudit(cfg, entry)

	profile, err := store.Get(opts.Profile)
	if err != nil {
		return nil, err
	}
	return &SetResult{
		Profile:       profile,
		Encrypted:     opts.Encrypt,
		Referenceable: utils.IsReferenceableKey(opts.Key),
		Created:       created,
	}, nil
}

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Profile string

	// Key removes a single key. Empty removes the whole profile.
	Key string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Profile is what is left of the profile after a key removal; nil when
	// the whole profile was removed.
	Profile *profiles.Profile
}

// Remove deletes a key from a profile, or the profile itself.
//
// Returns ErrProfileNotFound or ErrMissingKey when there is nothing to remove.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	cfg, store, err := loadStore()
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpRemove)
	entry.Profile = opts.Profile

	if opts.Key == "" {
		err = store.Remove(opts.Profile)
	} else {
		entry.Operation = audit.OpRemoveKey
		entry.Key = opts.Key
		err = store.RemoveKey(opts.Profile, opts.Key)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Save(); err != nil {
		return nil, err
	}
	recordAudit(cfg, entry)

	result := &RemoveResult{}
	if opts.Key != "" {
		if result.Profile, err = store.Get(opts.Profile); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ShowOptions configures the show workflow.
type ShowOptions struct {
	// Profile selects one profile. Empty lists profile names.
	Profile string

	// Match filters listed names with a glob pattern, such as "work-*".
	Match string
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	Profiles []string
	Profile  *profiles.Profile
}

// Show returns either one profile or the sorted list of profile names.
//
// Returns ErrProfileNotFound for an unknown profile.
func Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	_, store, err := loadStore()
	if err != nil {
		return nil, err
	}

	if opts.Profile != "" {
		profile, err := store.Get(opts.Profile)
		if err != nil {
			return nil, err
		}
		return &ShowResult{Profile: profile}, nil
	}

	if opts.Match != "" && !doublestar.ValidatePattern(opts.Match) {
		return nil, fmt.Errorf("invalid match pattern %q: %w", opts.Match, doublestar.ErrBadPattern)
	}

	names := make([]string, 0)
	for _, name := range store.List() {
		if opts.Match != "" {
			ok, err := doublestar.Match(opts.Match, name)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		names = append(names, name)
	}

	return &ShowResult{Profiles: names}, nil
}
