package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/thecoblack/edtoken/internal/secrets"
)

// Reserved keys with a meaning beyond plain substitution.
const (
	// TemplateKey holds the command template expanded by exec.
	TemplateKey = "template"
	// FileKey holds the wallet target path.
	FileKey = "file"
)

// Value is a single profile entry: a plain string, an encrypted token, or any
// other JSON value that is kept verbatim so hand-edited files round-trip.
type Value struct {
	Plain     string
	Encrypted *secrets.EncryptedValue
	raw       json.RawMessage
}

// PlainValue wraps s as a plain Value.
func PlainValue(s string) Value {
	return Value{Plain: s}
}

// EncryptedValue wraps ev as an encrypted Value.
func EncryptedValue(ev *secrets.EncryptedValue) Value {
	return Value{Encrypted: ev}
}

// IsEncrypted reports whether v holds an encrypted token.
func (v Value) IsEncrypted() bool {
	return v.Encrypted != nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.Encrypted != nil:
		return json.Marshal(v.Encrypted)
	case v.raw != nil:
		return v.raw, nil
	default:
		return json.Marshal(v.Plain)
	}
}

// UnmarshalJSON implements json.Unmarshaler. Objects carrying a "token" field
// decode as encrypted values; strings as plain values; anything else is kept raw.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty profile value")
	}

	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &v.Plain)
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if _, ok := probe["token"]; ok {
			ev := &secrets.EncryptedValue{}
			if err := json.Unmarshal(trimmed, ev); err != nil {
				return fmt.Errorf("decoding encrypted value: %w", err)
			}
			v.Encrypted = ev
			return nil
		}
	}

	v.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// Content is the key-value bag of one profile.
type Content map[string]Value

// Lookup returns a string for plain values, a *secrets.EncryptedValue for
// encrypted ones, and the raw JSON for anything else.
func (c Content) Lookup(key string) (any, bool) {
	v, ok := c[key]
	if !ok {
		return nil, false
	}
	switch {
	case v.Encrypted != nil:
		return v.Encrypted, true
	case v.raw != nil:
		return v.raw, true
	default:
		return v.Plain, true
	}
}

// Template returns the command template, if one is set.
func (c Content) Template() (string, bool) {
	v, ok := c[TemplateKey]
	if !ok || v.IsEncrypted() || v.raw != nil {
		return "", false
	}
	return v.Plain, true
}

// File returns the wallet target path, if one is set.
func (c Content) File() (string, bool) {
	v, ok := c[FileKey]
	if !ok || v.IsEncrypted() || v.raw != nil || v.Plain == "" {
		return "", false
	}
	return v.Plain, true
}

// HasEncrypted reports whether any value in c is encrypted.
func (c Content) HasEncrypted() bool {
	for _, v := range c {
		if v.IsEncrypted() {
			return true
		}
	}
	return false
}

// Keys returns the keys of c in sorted order.
func (c Content) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
