package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/secrets"
)

func mustEncrypt(t *testing.T, plaintext, passphrase string) *secrets.EncryptedValue {
	t.Helper()
	v, err := secrets.Encrypt([]byte(plaintext), passphrase)
	require.NoError(t, err)
	return v
}

func TestScan(t *testing.T) {
	got := Scan("curl -u {user}:{?token} {host}/{user} {?} {} {bad name}")

	require.Len(t, got, 4)
	assert.Equal(t, Placeholder{Name: "user", Kind: Plain, Start: 8, End: 14}, got[0])
	assert.Equal(t, Placeholder{Name: "token", Kind: Encrypted, Start: 15, End: 23}, got[1])
	assert.Equal(t, "host", got[2].Name)
	assert.Equal(t, "user", got[3].Name)
}

func TestExtractKeepsDuplicatesInOrder(t *testing.T) {
	tmpl := "{b} {?x} {a} {b} {?y-1} {?x}"

	assert.Equal(t, []string{"b", "a", "b"}, ExtractPlain(tmpl))
	assert.Equal(t, []string{"x", "y-1", "x"}, ExtractEncrypted(tmpl))
	assert.True(t, HasEncrypted(tmpl))
	assert.False(t, HasEncrypted("{a} {b}"))
	assert.Nil(t, ExtractPlain("no placeholders"))
}

func TestExpandMixedOrdering(t *testing.T) {
	content := Map{
		"user":  "alice",
		"token": mustEncrypt(t, "secret", "pw"),
	}

	got, err := Expand("{?token} {user}", content, "pw")
	require.NoError(t, err)
	assert.Equal(t, "secret alice", got)
}

// Every occurrence of a repeated placeholder is resolved on its own.
func TestExpandDuplicatePlaceholders(t *testing.T) {
	got, err := Expand("{a} and {a}", Map{"a": "x"}, "")
	require.NoError(t, err)
	assert.Equal(t, "x and x", got)

	content := Map{"t": mustEncrypt(t, "s3cr3t", "pw")}
	got, err = Expand("{?t}:{?t}:{?t}", content, "pw")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t:s3cr3t:s3cr3t", got)
}

func TestExpandMissingKey(t *testing.T) {
	got, err := Expand("echo {user} {host}", Map{"user": "bob"}, "")
	require.ErrorIs(t, err, kerrors.ErrMissingKey)
	assert.Contains(t, err.Error(), `"host"`)
	assert.Empty(t, got)

	_, err = Expand("echo {?token}", Map{}, "pw")
	assert.ErrorIs(t, err, kerrors.ErrMissingKey)
}

func TestExpandWrongValueKind(t *testing.T) {
	content := Map{
		"plain":  "value",
		"secret": mustEncrypt(t, "value", "pw"),
	}

	_, err := Expand("{secret}", content, "pw")
	assert.ErrorIs(t, err, kerrors.ErrWrongValueKind)

	_, err = Expand("{?plain}", content, "pw")
	assert.ErrorIs(t, err, kerrors.ErrWrongValueKind)
}

func TestExpandCipherAndPassphrase(t *testing.T) {
	content := Map{"token": mustEncrypt(t, "secret", "pw")}

	_, err := Expander{Kind: secrets.Asymmetric, Passphrase: "pw"}.Expand("{?token}", content)
	assert.ErrorIs(t, err, kerrors.ErrCipherUnavailable)

	// A token encrypted under the empty passphrase expands with it.
	empty := Map{"token": mustEncrypt(t, "secret", "")}
	got, err := Expander{Kind: secrets.Symmetric}.Expand("{?token}", empty)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	// No encrypted placeholders means no cipher and no passphrase are needed.
	got, err = Expander{Kind: secrets.Asymmetric}.Expand("plain {x}", Map{"x": "1"})
	require.NoError(t, err)
	assert.Equal(t, "plain 1", got)
}

func TestExpandDoesNotRescanValues(t *testing.T) {
	content := Map{"a": "{b}", "b": "nope"}

	got, err := Expand("{a}", content, "")
	require.NoError(t, err)
	assert.Equal(t, "{b}", got)
}

func TestExpandLeavesNonPlaceholdersAlone(t *testing.T) {
	tmpl := `awk '{print $1}' {file} | jq '{}' {?}`

	got, err := Expand(tmpl, Map{"file": "log.txt"}, "")
	require.NoError(t, err)
	assert.Equal(t, `awk '{print $1}' log.txt | jq '{}' {?}`, got)
}

func TestSubstituteQueueMismatch(t *testing.T) {
	_, err := Substitute("{a} {a}", []string{"x"}, nil)
	assert.ErrorIs(t, err, kerrors.ErrPlaceholderMismatch)

	_, err = Substitute("{a}", []string{"x", "y"}, nil)
	assert.ErrorIs(t, err, kerrors.ErrPlaceholderMismatch)

	_, err = Substitute("{?a}", nil, nil)
	assert.ErrorIs(t, err, kerrors.ErrPlaceholderMismatch)

	got, err := Substitute("{?a}-{b}-{?c}", []string{"B"}, []string{"A", "C"})
	require.NoError(t, err)
	assert.Equal(t, "A-B-C", got)
}

func TestExpandKeepsLineEndings(t *testing.T) {
	got, err := Expand("user={user}\n", Map{"user": "bob"}, "")
	require.NoError(t, err)
	assert.Equal(t, "user=bob\n", got)
}
