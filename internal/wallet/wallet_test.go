package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecoblack/edtoken/internal/configs"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
	"github.com/thecoblack/edtoken/internal/secrets"
	"github.com/thecoblack/edtoken/internal/templates"
)

const original = "user={user}\npass={?token}"

type fixture struct {
	target string
	cache  string
	wallet *Wallet
}

func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	dir := t.TempDir()
	target := filepath.Join(dir, "home", ".netrc")
	cache := filepath.Join(dir, "cache", ".netrc")

	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0700))
	require.NoError(t, os.WriteFile(target, []byte(text), 0640))

	token, err := secrets.Encrypt([]byte("hunter2"), "pw")
	require.NoError(t, err)
	content := templates.Map{"user": "bob", "token": token}

	w, err := New(target, cache, content)
	require.NoError(t, err)

	return &fixture{target: target, cache: cache, wallet: w}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestOpenCloseRoundTrip(t *testing.T) {
	f := newFixture(t, original)

	state, err := f.wallet.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, Closed, state)

	require.NoError(t, f.wallet.Open("pw"))

	assert.Equal(t, "user=bob\npass=hunter2", readFile(t, f.target))
	assert.Equal(t, original, readFile(t, f.cache))
	state, err = f.wallet.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, Open, state)

	info, err := os.Stat(f.target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "target mode is preserved")

	require.NoError(t, f.wallet.Close())

	assert.Equal(t, original, readFile(t, f.target))
	assert.NoFileExists(t, f.cache)
	state, err = f.wallet.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, Closed, state)
}

func TestDoubleOpenLeavesFilesAlone(t *testing.T) {
	f := newFixture(t, original)
	require.NoError(t, f.wallet.Open("pw"))

	targetAfterOpen := readFile(t, f.target)
	cacheAfterOpen := readFile(t, f.cache)

	err := f.wallet.Open("pw")
	assert.ErrorIs(t, err, kerrors.ErrAlreadyOpen)

	assert.Equal(t, targetAfterOpen, readFile(t, f.target))
	assert.Equal(t, cacheAfterOpen, readFile(t, f.cache))
	assert.Equal(t, original, cacheAfterOpen)
}

func TestCloseWhenClosed(t *testing.T) {
	f := newFixture(t, original)

	assert.ErrorIs(t, f.wallet.Close(), kerrors.ErrAlreadyClosed)
	assert.Equal(t, original, readFile(t, f.target))
}

func TestNewMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := New(filepath.Join(dir, "absent"), filepath.Join(dir, "cache"), templates.Map{})
	assert.ErrorIs(t, err, kerrors.ErrFileNotFound)
}

func TestFailedExpansionChangesNothing(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		passphrase string
		wantErr    error
	}{
		{"missing key", "user={user}\nhost={host}\n", "pw", kerrors.ErrMissingKey},
		{"wrong kind", "pass={token}\n", "pw", kerrors.ErrWrongValueKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.text)

			err := f.wallet.Open(tt.passphrase)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, tt.text, readFile(t, f.target))
			assert.NoFileExists(t, f.cache)
		})
	}
}

func TestAsymmetricWalletUnavailable(t *testing.T) {
	f := newFixture(t, original)
	f.wallet.Kind = secrets.Asymmetric

	assert.ErrorIs(t, f.wallet.Open("pw"), kerrors.ErrCipherUnavailable)
	assert.NoFileExists(t, f.cache)
}

func TestStateSurvivesNewInstance(t *testing.T) {
	f := newFixture(t, original)
	require.NoError(t, f.wallet.Open("pw"))

	again, err := New(f.target, f.cache, templates.Map{})
	require.NoError(t, err)

	state, err := again.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, Open, state)

	// Close needs only the cache, not the profile content.
	require.NoError(t, again.Close())
	assert.Equal(t, original, readFile(t, f.target))
}

func TestPlainOnlyFileNeedsNoPassphrase(t *testing.T) {
	f := newFixture(t, "login {user}\r\nmachine example.com\r\n")

	require.NoError(t, f.wallet.Open(""))
	assert.Equal(t, "login bob\r\nmachine example.com\r\n", readFile(t, f.target))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "open", Open.String())
}

func TestOpenFuncAsksOnlyForEncryptedFiles(t *testing.T) {
	f := newFixture(t, "login {user}\n")
	asked := false
	expanded, err := f.wallet.OpenFunc(func() (string, error) {
		asked = true
		return "pw", nil
	})
	require.NoError(t, err)
	assert.False(t, asked)
	assert.Equal(t, "login bob\n", string(expanded))

	f = newFixture(t, original)
	expanded, err = f.wallet.OpenFunc(func() (string, error) {
		asked = true
		return "pw", nil
	})
	require.NoError(t, err)
	assert.True(t, asked)
	assert.Equal(t, "user=bob\npass=hunter2", string(expanded))
}

func TestOpenFuncAskErrorChangesNothing(t *testing.T) {
	f := newFixture(t, original)
	cancelled := errors.New("cancelled")

	_, err := f.wallet.OpenFunc(func() (string, error) { return "", cancelled })
	assert.ErrorIs(t, err, cancelled)
	assert.Equal(t, original, readFile(t, f.target))
	assert.NoFileExists(t, f.cache)
}

func TestOpenFuncSkipsAskWhenAlreadyOpen(t *testing.T) {
	f := newFixture(t, original)
	require.NoError(t, f.wallet.Open("pw"))

	_, err := f.wallet.OpenFunc(func() (string, error) {
		t.Fatal("passphrase requested for an open wallet")
		return "", nil
	})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyOpen)
}

func TestSameBasenameWalletsKeepSeparateState(t *testing.T) {
	dir := t.TempDir()
	cfg := &configs.Config{CacheDir: filepath.Join(dir, "cache")}

	pathA := filepath.Join(dir, "a", ".netrc")
	pathB := filepath.Join(dir, "b", ".netrc")
	for path, text := range map[string]string{pathA: "A={x}\n", pathB: "B-original-content\n"} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	}

	content := templates.Map{"x": "1"}
	wa, err := New(pathA, cfg.CachePath(pathA), content)
	require.NoError(t, err)
	wb, err := New(pathB, cfg.CachePath(pathB), content)
	require.NoError(t, err)
	require.NotEqual(t, wa.CachePath(), wb.CachePath())

	require.NoError(t, wa.Open(""))

	state, err := wb.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, Closed, state)
	assert.ErrorIs(t, wb.Close(), kerrors.ErrAlreadyClosed)
	assert.Equal(t, "B-original-content\n", readFile(t, pathB))

	require.NoError(t, wa.Close())
	assert.Equal(t, "A={x}\n", readFile(t, pathA))
}

func TestFailedTargetWriteDropsCache(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	f := newFixture(t, original)
	targetDir := filepath.Dir(f.target)

	// The cache lives elsewhere, so only the expanded write is refused.
	require.NoError(t, os.Chmod(targetDir, 0500))
	defer func() {
		if err := os.Chmod(targetDir, 0700); err != nil {
			t.Logf("Failed to restore permissions on %s: %v", targetDir, err)
		}
	}()

	err := f.wallet.Open("pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write expanded wallet file")

	assert.NoFileExists(t, f.cache)
	state, err := f.wallet.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, Closed, state)
	assert.Equal(t, original, readFile(t, f.target))
}
