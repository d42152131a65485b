package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML(t *testing.T) {
	t.Run("section keeps defaults for missing keys", func(t *testing.T) {
		cfg := New()
		cfg.API.Burst = 99

		path := writeConfig(t, "api:\n  base_url: https://api.example.com\n  timeout: 30s\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))

		assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, DefaultBurst, cfg.API.Burst, "section replaced over defaults")
		assert.Equal(t, DefaultRequestsPerSecond, cfg.API.RequestsPerSecond)
	})

	t.Run("absent sections untouched", func(t *testing.T) {
		cfg := New()
		cfg.Logging.Level = "warn"

		path := writeConfig(t, "pagination:\n  page_size: 20\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))

		assert.Equal(t, 20, cfg.Pagination.PageSize)
		assert.Equal(t, "newest", cfg.Pagination.Sort)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("display list replaces defaults", func(t *testing.T) {
		cfg := New()
		path := writeConfig(t, "display:\n  pinned_authors: [Mim]\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))
		assert.Equal(t, []string{"Mim"}, cfg.Display.PinnedAuthors)
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		cfg := New()
		path := writeConfig(t, "plugins:\n  aws: {}\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))
		assert.Equal(t, New().API, cfg.API)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg := New()
		require.NoError(t, ShallowMergeYAML(cfg, writeConfig(t, "# nothing\n")))
		assert.Equal(t, New().Pagination, cfg.Pagination)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		err := ShallowMergeYAML(New(), writeConfig(t, "api: [unclosed\n"))
		require.Error(t, err)
	})

	t.Run("wrong type in section", func(t *testing.T) {
		err := ShallowMergeYAML(New(), writeConfig(t, "pagination:\n  page_size: lots\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pagination")
	})

	t.Run("missing file", func(t *testing.T) {
		err := ShallowMergeYAML(New(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nil target", func(t *testing.T) {
		require.Error(t, ShallowMergeYAML(nil, "x"))
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultAPIURL, cfg.API.BaseURL)
		assert.Empty(t, cfg.Path())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_url: https://file.example.com\nlogging:\n  level: warn\n")
		t.Setenv("ARCHIVECTL_API_URL", "https://env.example.com")
		t.Setenv("ARCHIVECTL_PAGE_SIZE", "7")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
		assert.Equal(t, 7, cfg.Pagination.PageSize)
		assert.Equal(t, "warn", cfg.Logging.Level, "file value kept when env is unset")
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("default location under ARCHIVECTL_HOME", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("ARCHIVECTL_HOME", home)
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("output:\n  default_format: json\n"), 0o600))

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output.DefaultFormat)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_url: ftp://nope\noutput:\n  default_format: xml\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "api.base_url")
		assert.Contains(t, err.Error(), "output.default_format")
	})

	t.Run("bad environment value", func(t *testing.T) {
		t.Setenv("ARCHIVECTL_PAGE_SIZE", "many")
		_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.Error(t, err)
	})
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	cfg := New()
	cfg.API.BaseURL = "https://api.example.com"
	cfg.API.Timeout = 20 * time.Second

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))
	assert.Equal(t, path, cfg.Path())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API, loaded.API)
	assert.Equal(t, cfg.Display, loaded.Display)
}
