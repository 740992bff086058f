package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = `
server:
  host: ${SS_TEST_HOST}
  port: 9000
site:
  url: https://x.test/
  name: X
license:
  item_name: Social Sharing
  item_id: 42
security:
  unfiltered_html: "yes"
`

func TestLoadFromBytesExpandsEnv(t *testing.T) {
	t.Setenv("SS_TEST_HOST", "0.0.0.0")

	c, err := LoadFromBytes([]byte(base))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", c.Addr())
	assert.Equal(t, "https://x.test/", c.Site.URL)
	assert.Equal(t, 42, c.License.ItemID)
	assert.True(t, c.IsUnfilteredHTML())
	assert.False(t, c.IsDevelopment())
}

func TestLoadFromBytesDefaults(t *testing.T) {
	c, err := LoadFromBytes(nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:27480", c.Addr())
	assert.Equal(t, "https://themezee.com", c.License.StoreURL)
	assert.Equal(t, 15*time.Second, c.LicenseTimeout())
	assert.Equal(t, "@daily", c.License.CheckSchedule)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, int64(86400), c.Auth.AccessExpire)
}

func TestLoadFromOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("site:\n  name: Overlay\nlog:\n  level: debug\n"), 0644))

	c, err := LoadFrom([]byte(base), filepath.Join(dir, "missing.yaml"), overlay)
	require.NoError(t, err)

	assert.Equal(t, "Overlay", c.Site.Name)
	assert.Equal(t, "https://x.test/", c.Site.URL, "keys absent from the overlay keep their base value")
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 9000, c.Server.Port)
}

func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [unclosed"), 0644))

	_, err := LoadFrom([]byte(base), bad)
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("TRUE", false))
	assert.True(t, parseBool(" 1 ", false))
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("nope", true))
}
