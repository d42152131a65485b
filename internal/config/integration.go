package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfigInit flag
var globalConfigInit bool       //nolint:gochecknoglobals // Tracks if global config has been initialized

// InitGlobalConfig loads the global configuration from path (or the default
// location when empty). A config that fails to load falls back to defaults
// and the error is returned so callers can report it.
func InitGlobalConfig(path string) error {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return nil
	}

	cfg, err := Load(path)
	if err != nil {
		cfg = New()
	}
	GlobalConfig = cfg
	globalConfigInit = true
	return err
}

// SetGlobalConfig replaces the global configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = cfg
	globalConfigInit = cfg != nil
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it from the
// default location if needed.
func GetGlobalConfig() *Config {
	_ = InitGlobalConfig("")

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return GlobalConfig
}

// GetAPIURL returns the configured API base URL.
func GetAPIURL() string {
	return GetGlobalConfig().API.BaseURL
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// GetPageSize returns the configured page size.
func GetPageSize() int {
	return GetGlobalConfig().Pagination.PageSize
}

// GetPinnedAuthors returns the author names listed first in displays.
func GetPinnedAuthors() []string {
	return GetGlobalConfig().Display.PinnedAuthors
}

// EnsureConfigDir ensures the archivectl configuration directory exists.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// GetConfigDir returns the archivectl configuration directory: $ARCHIVECTL_HOME
// when set, otherwise ~/.archivectl.
func GetConfigDir() (string, error) {
	if home := os.Getenv("ARCHIVECTL_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".archivectl"), nil
}

// GetCredentialsDir returns the directory holding stored access tokens.
func GetCredentialsDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials"), nil
}

// GetLogDir returns the default directory for log files.
func GetLogDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
