package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReferenceableKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"token", true},
		{"api-key", true},
		{"API_KEY_2", true},
		{"", false},
		{"with space", false},
		{"?token", false},
		{"a.b", false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.want, IsReferenceableKey(tc.key))
		})
	}
}

func TestNumberedList(t *testing.T) {
	assert.Equal(t, "1. work\n2. home\n", NumberedList([]string{"work", "home"}))
	assert.Empty(t, NumberedList(nil))
}

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestGetHostnameIsShort(t *testing.T) {
	host, err := GetHostname()
	require.NoError(t, err)
	assert.NotEmpty(t, host)
	assert.NotContains(t, host, ".")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	ok, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/creds/.netrc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "creds", ".netrc"), got)

	got, err = ExpandHome("/etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, "/etc/hosts", got)

	got, err = ExpandHome("~user/file")
	require.NoError(t, err)
	assert.Equal(t, "~user/file", got)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0600))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "cache", "dst")

	content := []byte("user={user}\npass={?token}")
	require.NoError(t, os.WriteFile(src, content, 0640))

	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	assert.Error(t, CopyFile(filepath.Join(dir, "missing"), dst))
}
