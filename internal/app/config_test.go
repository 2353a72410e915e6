package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// clearConfigEnv blanks every override so the host environment cannot leak in
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTINGS_ENDPOINT", "PORT", "LISTEN_ADDRESS", "LISTINGS_LOCALE",
		"LISTINGS_TIMEZONE", "LISTINGS_IMAGE_URL", "EXPORT_BUCKET",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), FilePermissions))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, DefaultEndpoint, cfg.Source.Endpoint)
	assert.Equal(t, "GET", cfg.Source.Method)
	assert.Equal(t, map[string]string{"Content-Type": DefaultContentType}, cfg.Source.Headers)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Equal(t, DefaultTitle, cfg.View.Title)
	assert.Equal(t, DefaultImageURL, cfg.View.ImageURL)
	assert.Equal(t, DefaultExportPath, cfg.Export.Output)
	assert.Equal(t, DefaultExportKey, cfg.Export.Key)
	assert.Empty(t, cfg.Export.Bucket)
}

func TestLoadConfigFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, `
server:
  listen_address: ":9090"
  read_timeout: 5s
source:
  endpoint: "http://api.internal/listings"
  timeout: 3s
  user_agent: "listings-view/1.0"
  headers:
    Accept: application/json
view:
  title: "Upcoming"
  locale: de-DE
  timezone: Europe/Berlin
export:
  bucket: static-site
  key: listings/index.html
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "http://api.internal/listings", cfg.Source.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "listings-view/1.0", cfg.Source.UserAgent)
	assert.Equal(t, map[string]string{"Accept": "application/json"}, cfg.Source.Headers)
	assert.Equal(t, "Upcoming", cfg.View.Title)
	assert.Equal(t, "static-site", cfg.Export.Bucket)
	assert.Equal(t, "listings/index.html", cfg.Export.Key)

	opts := cfg.View.DisplayOptions()
	assert.Equal(t, language.German, opts.Dates.Locale)
	assert.Equal(t, "Europe/Berlin", opts.Dates.Location.String())
	assert.Equal(t, DefaultImageURL, opts.ImageURL)
}

func TestLoadConfigEmptyHeaders(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "source:\n  headers: {}\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Source.Headers)
	assert.Empty(t, cfg.Source.Headers)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "source:\n  endpoint: http://from-file/listings\n")

	t.Setenv("LISTINGS_ENDPOINT", "http://from-env/listings")
	t.Setenv("PORT", "3001")
	t.Setenv("LISTINGS_TIMEZONE", "UTC")
	t.Setenv("EXPORT_BUCKET", "env-bucket")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env/listings", cfg.Source.Endpoint)
	assert.Equal(t, ":3001", cfg.Server.ListenAddress)
	assert.Equal(t, "UTC", cfg.View.Timezone)
	assert.Equal(t, "env-bucket", cfg.Export.Bucket)
}

func TestLoadConfigListenAddressWinsOverPort(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "3001")
	t.Setenv("LISTEN_ADDRESS", "127.0.0.1:4000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.Server.ListenAddress)
}

func TestLoadConfigErrors(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	_, err = LoadConfig(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")

	_, err = LoadConfig(writeConfig(t, "view:\n  timezone: Mars/Olympus\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "view.timezone")
}
