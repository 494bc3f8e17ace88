package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", ConfigFileName))
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)
	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)
	want := &Config{
		Credentials:     &Credentials{AccountID: "student", Password: "pw"},
		LastUpdateCheck: "1700000000000",
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(configFileMode), info.Mode().Perm())
}

func TestStore_SaveOverwritesWholesale(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(&Config{Credentials: &Credentials{AccountID: "a", Password: "b"}, LastUpdateCheck: "1"}))
	require.NoError(t, s.Save(&Config{LastUpdateCheck: "2"}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, got.Credentials)
	assert.Equal(t, "2", got.LastUpdateCheck)
}

func TestStore_LoadCorrupt(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	cfg, err := s.Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)

	// Update replaces an unreadable record instead of failing.
	require.NoError(t, s.Update(func(cfg *Config) { cfg.LastUpdateCheck = "5" }))
	cfg, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "5", cfg.LastUpdateCheck)
}

func TestStore_UpdateKeepsOtherFields(t *testing.T) {
	s := newTestStore(t)
	creds := &Credentials{AccountID: "a", Password: "b"}
	require.NoError(t, s.Save(&Config{Credentials: creds}))
	require.NoError(t, s.Update(func(cfg *Config) { cfg.SetLastChecked(time.UnixMilli(42)) }))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, got.Credentials)
	assert.Equal(t, "42", got.LastUpdateCheck)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	cleared, err := s.Clear()
	require.NoError(t, err)
	assert.False(t, cleared)

	require.NoError(t, s.Save(&Config{Credentials: &Credentials{AccountID: "a", Password: "b"}}))
	cleared, err = s.Clear()
	require.NoError(t, err)
	assert.True(t, cleared)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestConfig_LastChecked(t *testing.T) {
	var cfg Config
	_, ok := cfg.LastChecked()
	assert.False(t, ok)

	cfg.LastUpdateCheck = "garbage"
	_, ok = cfg.LastChecked()
	assert.False(t, ok)

	now := time.UnixMilli(1700000000123)
	cfg.SetLastChecked(now)
	got, ok := cfg.LastChecked()
	require.True(t, ok)
	assert.True(t, now.Equal(got))
}
