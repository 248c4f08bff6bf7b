// Package paths provides centralized path handling for assetrules.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/assetpipe/assetrules/pkg/errors"
)

// Environment variable names
const (
	// EnvAssetRoot is the primary environment variable for the asset project location
	EnvAssetRoot = "ASSETRULES_ROOT"

	// EnvConfigDir overrides the XDG config directory for assetrules
	EnvConfigDir = "ASSETRULES_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for assetrules
	EnvStateDir = "ASSETRULES_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "assetrules"

	// ProjectConfigFile is the name of the per-project configuration file
	ProjectConfigFile = ".assetrules.toml"

	// RuleSetFile is the default rule set document name
	RuleSetFile = "rules.yaml"
)

// Paths resolves all filesystem locations the application reads or writes
type Paths struct {
	assetRoot string
}

// New creates a Paths instance rooted at the given asset directory.
// An empty root falls back to EnvAssetRoot, then the current directory.
func New(assetRoot string) (*Paths, error) {
	if assetRoot == "" {
		assetRoot = os.Getenv(EnvAssetRoot)
	}
	if assetRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		assetRoot = cwd
	}

	abs, err := filepath.Abs(assetRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid asset root %q", assetRoot)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "asset root %s does not exist", abs)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "asset root %s is not a directory", abs)
	}

	return &Paths{assetRoot: abs}, nil
}

// AssetRoot returns the absolute path of the asset project directory
func (p *Paths) AssetRoot() string {
	return p.assetRoot
}

// ProjectConfig returns the path of the per-project config file.
// The file is not required to exist.
func (p *Paths) ProjectConfig() string {
	return filepath.Join(p.assetRoot, ProjectConfigFile)
}

// ConfigDir returns the user-level configuration directory
func (p *Paths) ConfigDir() string {
	if override := os.Getenv(EnvConfigDir); override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the state directory used for logs and session data
func (p *Paths) StateDir() string {
	if override := os.Getenv(EnvStateDir); override != "" {
		return override
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// RuleSetPath returns the location of the persisted rule set document.
// A project-local rules.yaml takes precedence over the user-level one.
func (p *Paths) RuleSetPath() string {
	local := filepath.Join(p.assetRoot, RuleSetFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Join(p.ConfigDir(), RuleSetFile)
}
