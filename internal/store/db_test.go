package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d := NewDB()
	require.NoError(t, d.Open(filepath.Join(t.TempDir(), "sub", "fstree.db")))
	t.Cleanup(d.Close)
	return d
}

func TestSettingsRoundTrip(t *testing.T) {
	d := openTestDB(t)

	settings, err := d.Settings()
	require.NoError(t, err)
	assert.Empty(t, settings)

	require.NoError(t, d.SaveSetting(KeyLastSelection, "/home/user"))
	require.NoError(t, d.SaveSetting(KeyLastSelection, "/srv"))

	settings, err = d.Settings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyLastSelection: "/srv"}, settings)
}

func TestStart_SaveThenFetch(t *testing.T) {
	d := openTestDB(t)
	go d.Start()
	t.Cleanup(func() { close(d.RequestChan) })

	d.RequestChan <- Request{Op: SaveSetting, Key: "k", Value: "v"}
	d.RequestChan <- Request{Op: FetchSettings}

	select {
	case resp := <-d.ResponseChan:
		require.NoError(t, resp.Err)
		assert.Equal(t, FetchSettings, resp.Op)
		assert.Equal(t, "v", resp.Settings["k"])
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for response")
	}
}

func TestReopenKeepsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstree.db")

	d := NewDB()
	require.NoError(t, d.Open(path))
	require.NoError(t, d.SaveSetting(KeyLastSelection, "/etc"))
	d.Close()

	d = NewDB()
	require.NoError(t, d.Open(path))
	defer d.Close()
	settings, err := d.Settings()
	require.NoError(t, err)
	assert.Equal(t, "/etc", settings[KeyLastSelection])
}
