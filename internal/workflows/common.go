package workflows

import (
	"fmt"
	"unicode/utf8"

	"github.com/thecoblack/edtoken/internal/audit"
	"github.com/thecoblack/edtoken/internal/configs"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/profiles"
)

// PassphraseFunc supplies a passphrase on demand. Workflows only call it when
// an encrypted value actually has to be read or written.
type PassphraseFunc func() (string, error)

// StaticPassphrase returns a PassphraseFunc that always yields p.
func StaticPassphrase(p string) PassphraseFunc {
	return func() (string, error) { return p, nil }
}

// askPassphrase calls fn and rejects an empty answer.
func askPassphrase(fn PassphraseFunc) (string, error) {
	if fn == nil {
		return "", kerrors.ErrPassphraseRequired
	}
	passphrase, err := fn()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if passphrase == "" {
		return "", kerrors.ErrPassphraseRequired
	}
	return passphrase, nil
}

// loadStore loads the effective config and the profile store it points at.
func loadStore() (*configs.Config, *profiles.Store, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := profiles.Load(cfg.ProfilesPath)
	if err != nil {
		return nil, nil, err
	}

	return cfg, store, nil
}

// recordAudit appends entry when auditing is turned on.
func recordAudit(cfg *configs.Config, entry audit.Entry) {
	if !cfg.AuditLog {
		return
	}
	audit.Log(cfg.AuditPath, entry)
}

// looksGarbled reports whether decrypted output is probably the result of a
// wrong passphrase. CBC without a MAC cannot tell for sure.
func looksGarbled(data []byte) bool {
	return !utf8.Valid(data)
}
