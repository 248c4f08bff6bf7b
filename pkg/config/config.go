// Package config loads the application configuration with koanf: embedded
// defaults first, then the project-local .assetrules.toml merged on top.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/logging"
)

// ScanConfig controls how the sidecar scanner classifies files
type ScanConfig struct {
	// ModelExtensions maps a file extension (without dot) to a file kind
	ModelExtensions map[string]string `koanf:"model_extensions"`

	// TextureExtensions lists the extensions treated as textures
	TextureExtensions []string `koanf:"texture_extensions"`

	// TextureSuffixes maps filename suffixes to texture kinds
	TextureSuffixes map[string]string `koanf:"texture_suffixes"`
}

// WatchConfig controls the filesystem watcher
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// Debounce returns the watch debounce as a duration
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Config is the merged application configuration
type Config struct {
	Scan  ScanConfig  `koanf:"scan"`
	Watch WatchConfig `koanf:"watch"`
}

// Load builds the configuration from embedded defaults and, when present,
// the project config file at projectConfigPath. An empty path skips the
// project layer.
func Load(projectConfigPath string) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if projectConfigPath != "" {
		if _, err := os.Stat(projectConfigPath); err == nil {
			if err := k.Load(file.Provider(projectConfigPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load project config from %s", projectConfigPath)
			}
			logger.Debug().Str("path", projectConfigPath).Msg("Merged project config")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if cfg.Watch.DebounceMS <= 0 {
		return nil, errors.Newf(errors.ErrConfigParse,
			"watch.debounce_ms must be positive, got %d", cfg.Watch.DebounceMS)
	}

	return &cfg, nil
}
