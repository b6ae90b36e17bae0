package templates

import (
	"fmt"
	"strings"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/secrets"
)

// Content is the read-only view of a profile that placeholders resolve against.
//
// Lookup returns a string for plain values and a *secrets.EncryptedValue for
// encrypted ones. ok is false when the key is absent.
type Content interface {
	Lookup(key string) (value any, ok bool)
}

// Map is a Content backed by a plain Go map.
type Map map[string]any

// Lookup implements Content.
func (m Map) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// ResolvePlain looks up each name and returns the values in the same order.
func ResolvePlain(names []string, content Content) ([]string, error) {
	values := make([]string, 0, len(names))
	for _, name := range names {
		raw, ok := content.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", kerrors.ErrMissingKey, name)
		}

		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: {%s} is not a plain string value", kerrors.ErrWrongValueKind, name)
		}
		values = append(values, s)
	}
	return values, nil
}

// ResolveEncrypted looks up each name's encrypted value and decrypts it with
// passphrase. No cipher is constructed when names is empty. Any passphrase,
// including the empty one, is accepted; callers that prompt decide whether
// an empty answer is allowed.
func ResolveEncrypted(names []string, content Content, kind secrets.CipherKind, passphrase string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	tc, err := secrets.NewTokenCipher(kind)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(names))
	for _, name := range names {
		raw, ok := content.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", kerrors.ErrMissingKey, name)
		}

		ev, ok := raw.(*secrets.EncryptedValue)
		if !ok {
			return nil, fmt.Errorf("%w: {?%s} is not an encrypted value", kerrors.ErrWrongValueKind, name)
		}

		plaintext, err := tc.Decrypt(ev, passphrase)
		if err != nil {
			return nil, fmt.Errorf("decrypting %q: %w", name, err)
		}
		values = append(values, string(plaintext))
	}
	return values, nil
}

// Substitute walks template once and replaces each placeholder with the next
// value from the queue of its kind. Substituted text is never rescanned, so a
// value that itself looks like a placeholder is emitted literally.
//
// Each queue must hold exactly one value per occurrence of its kind.
func Substitute(template string, plain, encrypted []string) (string, error) {
	placeholders := Scan(template)

	var b strings.Builder
	b.Grow(len(template))

	last, pi, ei := 0, 0, 0
	for _, p := range placeholders {
		var value string
		switch p.Kind {
		case Plain:
			if pi >= len(plain) {
				return "", fmt.Errorf("%w: ran out of plain values at {%s}", kerrors.ErrPlaceholderMismatch, p.Name)
			}
			value = plain[pi]
			pi++
		case Encrypted:
			if ei >= len(encrypted) {
				return "", fmt.Errorf("%w: ran out of encrypted values at {?%s}", kerrors.ErrPlaceholderMismatch, p.Name)
			}
			value = encrypted[ei]
			ei++
		}

		b.WriteString(template[last:p.Start])
		b.WriteString(value)
		last = p.End
	}
	b.WriteString(template[last:])

	if pi != len(plain) || ei != len(encrypted) {
		return "", fmt.Errorf("%w: %d plain and %d encrypted values left over",
			kerrors.ErrPlaceholderMismatch, len(plain)-pi, len(encrypted)-ei)
	}

	return b.String(), nil
}

// Expander expands templates with a fixed cipher kind and passphrase.
type Expander struct {
	Kind       secrets.CipherKind
	Passphrase string
}

// Expand resolves every placeholder in template against content. Any missing
// key aborts the expansion; a partially substituted string is never returned.
func (e Expander) Expand(template string, content Content) (string, error) {
	plain, err := ResolvePlain(ExtractPlain(template), content)
	if err != nil {
		return "", err
	}

	encrypted, err := ResolveEncrypted(ExtractEncrypted(template), content, e.Kind, e.Passphrase)
	if err != nil {
		return "", err
	}

	return Substitute(template, plain, encrypted)
}

// Expand is a shorthand for Expander{Kind: secrets.Symmetric, Passphrase: passphrase}.Expand.
func Expand(template string, content Content, passphrase string) (string, error) {
	return Expander{Kind: secrets.Symmetric, Passphrase: passphrase}.Expand(template, content)
}
