package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Init(dir))

	c := Get()
	assert.Equal(t, DefaultServerURL, c.Server.URL)
	assert.Equal(t, 30*time.Second, c.Server.Timeout)
	assert.Equal(t, FixedUserID, c.User.ID)
	assert.Equal(t, "en-US", c.UI.Locale)
	assert.Equal(t, 10*time.Second, c.UI.StatusInterval)
	assert.Equal(t, "stress", c.Agent.ResourceMood)
	assert.False(t, c.Agent.InferMood)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), Path())
	assert.FileExists(t, Path())
}

func TestInitReadsFileAndPinsUser(t *testing.T) {
	dir := t.TempDir()
	content := []byte("server:\n  url: http://example.test/api\n  timeout: 5s\nuser:\n  id: 42\nagent:\n  infer_mood: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	require.NoError(t, Init(dir))

	c := Get()
	assert.Equal(t, "http://example.test/api", c.Server.URL)
	assert.Equal(t, 5*time.Second, c.Server.Timeout)
	assert.Equal(t, FixedUserID, c.User.ID)
	assert.True(t, c.Agent.InferMood)
}

func TestInitEnvOverride(t *testing.T) {
	t.Setenv("MOODNEST_SERVER_URL", "http://env.test/api")
	t.Setenv("MOODNEST_UI_LOCALE", "de-DE")

	require.NoError(t, Init(t.TempDir()))

	assert.Equal(t, "http://env.test/api", GetServerURL())
	assert.Equal(t, "de-DE", Get().UI.Locale)
}

func TestSetServerURLTrimsSlash(t *testing.T) {
	require.NoError(t, Init(t.TempDir()))

	SetServerURL("http://localhost:9000/api/ ")

	assert.Equal(t, "http://localhost:9000/api", GetServerURL())
}

func TestSaveResourceMood(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	require.NoError(t, SaveResourceMood("anxious"))
	require.NoError(t, Init(dir))

	assert.Equal(t, "anxious", Get().Agent.ResourceMood)
}
