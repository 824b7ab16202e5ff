package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/aasgraph/pkg/errors"
)

// Config holds the settings read from config.toml.
//
//	strict = false
//	log_level = "info"
//	stripped = false
//	cache = true
//	identity_cache_size = 1024
//	store_dir = "/var/lib/aasgraph"
type Config struct {
	Strict            bool   `toml:"strict"`
	LogLevel          string `toml:"log_level"`
	Stripped          bool   `toml:"stripped"`
	Cache             bool   `toml:"cache"`
	IdentityCacheSize int    `toml:"identity_cache_size"`
	StoreDir          string `toml:"store_dir"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LogLevel:          "info",
		Cache:             true,
		IdentityCacheSize: 1024,
	}
}

func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error; unknown keys are logged and ignored.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String(), "file", path)
	}
	return cfg, nil
}

func (cfg Config) level() (log.Level, error) {
	if cfg.LogLevel == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "log_level")
	}
	return level, nil
}

// storeDir returns the file store directory from the config, falling back
// to the XDG data directory.
func (cfg Config) storeDir() (string, error) {
	if cfg.StoreDir != "" {
		return cfg.StoreDir, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "objects"), nil
}
