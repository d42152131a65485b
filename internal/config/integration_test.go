package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	t.Setenv("ARCHIVECTL_HOME", t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)

	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, cfg, cfg3)
}

func TestConfigGetters(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := New()
	cfg.API.BaseURL = "https://api.example.com"
	cfg.Output.DefaultFormat = "json"
	cfg.Pagination.PageSize = 25
	cfg.Display.PinnedAuthors = []string{"Mim"}
	cfg.Logging.Level = "debug"
	SetGlobalConfig(cfg)

	assert.Equal(t, "https://api.example.com", GetAPIURL())
	assert.Equal(t, "json", GetDefaultOutputFormat())
	assert.Equal(t, 25, GetPageSize())
	assert.Equal(t, []string{"Mim"}, GetPinnedAuthors())
	assert.Equal(t, "debug", GetLoggingConfig().Level)
}

func TestInitGlobalConfigFallsBackOnError(t *testing.T) {
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pagination:\n  page_size: -1\n"), 0o600))

	err := InitGlobalConfig(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, DefaultAPIURL, GetGlobalConfig().API.BaseURL)
}

func TestConfigDirs(t *testing.T) {
	t.Run("ARCHIVECTL_HOME wins", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("ARCHIVECTL_HOME", home)

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, home, dir)

		creds, err := GetCredentialsDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "credentials"), creds)

		logs, err := GetLogDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "logs"), logs)
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		tmpHome := t.TempDir()
		t.Setenv("ARCHIVECTL_HOME", "")
		t.Setenv("HOME", tmpHome)
		t.Setenv("USERPROFILE", tmpHome)

		require.NoError(t, EnsureConfigDir())

		stat, err := os.Stat(filepath.Join(tmpHome, ".archivectl"))
		require.NoError(t, err)
		assert.True(t, stat.IsDir())
	})
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	tests := []struct {
		name       string
		in         LoggingConfig
		wantOutput string
	}{
		{"stderr when no file", LoggingConfig{Level: "info", Format: "json"}, "stderr"},
		{"file when set", LoggingConfig{Level: "debug", Format: "json", File: "/tmp/a.log"}, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ToLoggingConfig()
			assert.Equal(t, tt.wantOutput, got.Output)
			assert.Equal(t, tt.in.Level, got.Level)
			assert.Equal(t, tt.in.Format, got.Format)
			assert.Equal(t, tt.in.File, got.File)
		})
	}
}
