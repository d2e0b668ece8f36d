package credential_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/rcfile"
	"github.com/hbjs97/pmctl/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "PMAK-0123456789abcdefghij"

func newStore(t *testing.T) (*credential.Store, string) {
	t.Helper()
	home := t.TempDir()
	d := &shell.Detector{Home: home, GOOS: "linux"}
	vars := rcfile.New(shell.Zsh, d.ConfigPaths(shell.Zsh), rcfile.WithLookupEnv(nil))
	return credential.NewStore(vars), filepath.Join(home, ".zshrc")
}

func TestValidAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"valid", validKey, true},
		{"prefix plus 20", "PMAK-" + strings.Repeat("a", 20), true},
		{"no prefix", "bad-key", false},
		{"empty", "", false},
		{"too short", "PMAK-abc", false},
		{"lowercase prefix", "pmak-0123456789abcdefghij", false},
		{"contains space", "PMAK-0123456789 abcdefghij", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, credential.ValidAPIKey(tt.key))
		})
	}
}

func TestValidWorkspaceID(t *testing.T) {
	assert.True(t, credential.ValidWorkspaceID("1f0df51a-8658-4ee8-a2a1-d2567dfa09a9"))
	assert.False(t, credential.ValidWorkspaceID("not-a-uuid"))
	assert.False(t, credential.ValidWorkspaceID("{1f0df51a-8658-4ee8-a2a1-d2567dfa09a9}"))
	assert.False(t, credential.ValidWorkspaceID("1f0df51a86584ee8a2a1d2567dfa09a9"))
	assert.False(t, credential.ValidWorkspaceID(""))
}

func TestStoreAPIKey_ValidationGate(t *testing.T) {
	store, rc := newStore(t)

	err := store.StoreAPIKey("bad-key")
	assert.ErrorIs(t, err, credential.ErrInvalidAPIKey)
	assert.NoFileExists(t, rc)

	require.NoError(t, store.StoreAPIKey("PMAK-"+strings.Repeat("x", 20)))
	got, ok := store.APIKey()
	require.True(t, ok)
	assert.Equal(t, "PMAK-"+strings.Repeat("x", 20), got)
}

func TestStoreAPIKey_InvalidLeavesFileUnchanged(t *testing.T) {
	store, rc := newStore(t)
	require.NoError(t, os.WriteFile(rc, []byte("# zshrc\n"), 0o600))

	assert.Error(t, store.StoreAPIKey("bad-key"))
	data, err := os.ReadFile(rc)
	require.NoError(t, err)
	assert.Equal(t, "# zshrc\n", string(data))
}

func TestRestoreAPIKey_SkipsFormatCheck(t *testing.T) {
	store, rc := newStore(t)

	require.NoError(t, store.RestoreAPIKey("PMAK-old"))
	got, ok := store.APIKey()
	require.True(t, ok)
	assert.Equal(t, "PMAK-old", got)

	err := store.RestoreAPIKey("PMAK-old\nexport EVIL=1")
	assert.ErrorIs(t, err, rcfile.ErrInvalidValue)
	data, err := os.ReadFile(rc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "EVIL")
}

func TestStoreWorkspaceID(t *testing.T) {
	store, _ := newStore(t)

	assert.ErrorIs(t, store.StoreWorkspaceID("ws-1"), credential.ErrInvalidWorkspaceID)

	id := "1f0df51a-8658-4ee8-a2a1-d2567dfa09a9"
	require.NoError(t, store.StoreWorkspaceID(id))
	got, ok := store.WorkspaceID()
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestClear(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.StoreAPIKey(validKey))

	cleared, err := store.Clear()
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.False(t, store.All().Authenticated())

	cleared, err = store.Clear()
	require.NoError(t, err)
	assert.False(t, cleared, "이미 비어있으면 nothing to clear")
}

func TestAll(t *testing.T) {
	store, _ := newStore(t)
	assert.Equal(t, credential.Credentials{}, store.All())

	require.NoError(t, store.StoreAPIKey(validKey))
	creds := store.All()
	assert.True(t, creds.Authenticated())
	assert.Equal(t, validKey, creds.APIKey)
	assert.Empty(t, creds.WorkspaceID)
}
