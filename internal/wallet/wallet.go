package wallet

import (
	"fmt"
	"os"
	"strings"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/templates"
	"github.com/thecoblack/edtoken/internal/utils"
)

// State is the wallet's position in the open/close cycle.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Wallet is a target file paired with the cache path holding its original
// content while open.
type Wallet struct {
	path      string
	cachePath string
	content   templates.Content

	// Kind is the cipher used for {?name} placeholders. Defaults to Symmetric.
	Kind secrets.CipherKind
}

// New returns the wallet for path. It fails with ErrFileNotFound if the
// target file does not exist.
func New(path, cachePath string, content templates.Content) (*Wallet, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat wallet file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("wallet target %s is a directory", path)
	}

	return &Wallet{
		path:      path,
		cachePath: cachePath,
		content:   content,
		Kind:      secrets.Symmetric,
	}, nil
}

// Path returns the target file.
func (w *Wallet) Path() string {
	return w.path
}

// CachePath returns where the original is kept while open.
func (w *Wallet) CachePath() string {
	return w.cachePath
}

// CurrentState inspects the cache path.
func (w *Wallet) CurrentState() (State, error) {
	exists, err := utils.Exists(w.cachePath)
	if err != nil {
		return Closed, fmt.Errorf("failed to check wallet cache: %w", err)
	}
	if exists {
		return Open, nil
	}
	return Closed, nil
}

// Open expands the target in place with passphrase, keeping the original in
// the cache.
func (w *Wallet) Open(passphrase string) error {
	_, err := w.OpenFunc(func() (string, error) { return passphrase, nil })
	return err
}

// OpenFunc is Open with the passphrase supplied on demand: ask is called only
// when the target has {?name} placeholders, after the state and cipher checks.
// It returns the expanded content written to the target.
func (w *Wallet) OpenFunc(ask func() (string, error)) ([]byte, error) {
	state, err := w.CurrentState()
	if err != nil {
		return nil, err
	}
	if state == Open {
		return nil, fmt.Errorf("%w: cache %s exists", kerrors.ErrAlreadyOpen, w.cachePath)
	}

	info, err := os.Stat(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat wallet file: %w", err)
	}
	original, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}

	var passphrase string
	if templates.HasEncrypted(string(original)) {
		if _, err := secrets.NewTokenCipher(w.Kind); err != nil {
			return nil, err
		}
		if passphrase, err = ask(); err != nil {
			return nil, err
		}
	}

	expanded, err := w.expand(string(original), passphrase)
	if err != nil {
		return nil, err
	}

	if err := utils.CopyFile(w.path, w.cachePath); err != nil {
		return nil, fmt.Errorf("failed to write wallet cache: %w", err)
	}

	if err := utils.WriteFileAtomic(w.path, []byte(expanded), info.Mode().Perm()); err != nil {
		// The target is untouched, so dropping the cache returns to Closed.
		_ = os.Remove(w.cachePath)
		return nil, fmt.Errorf("failed to write expanded wallet file: %w", err)
	}

	return []byte(expanded), nil
}

// Close restores the original from the cache and removes the cache.
func (w *Wallet) Close() error {
	state, err := w.CurrentState()
	if err != nil {
		return err
	}
	if state == Closed {
		return fmt.Errorf("%w: no cache at %s", kerrors.ErrAlreadyClosed, w.cachePath)
	}

	if err := utils.CopyFile(w.cachePath, w.path); err != nil {
		return fmt.Errorf("failed to restore wallet file: %w", err)
	}

	if err := os.Remove(w.cachePath); err != nil {
		return fmt.Errorf("failed to remove wallet cache: %w", err)
	}

	return nil
}

// expand runs each line through the template engine. Line endings are part
// of the line, so the output keeps them exactly.
func (w *Wallet) expand(text, passphrase string) (string, error) {
	expander := templates.Expander{Kind: w.Kind, Passphrase: passphrase}

	var b strings.Builder
	b.Grow(len(text))
	for i, line := range strings.SplitAfter(text, "\n") {
		expanded, err := expander.Expand(line, w.content)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		b.WriteString(expanded)
	}
	return b.String(), nil
}
