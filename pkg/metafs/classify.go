package metafs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/config"
)

// classifier turns file paths into asset classifications using the
// configured extension and suffix tables
type classifier struct {
	modelExts map[string]assets.FileKind
	texExts   map[string]bool
	// suffixes sorted longest-first so the most specific one wins
	suffixes     []string
	suffixToKind map[string]assets.TextureKind
}

func newClassifier(scan config.ScanConfig) *classifier {
	c := &classifier{
		modelExts:    make(map[string]assets.FileKind, len(scan.ModelExtensions)),
		texExts:      make(map[string]bool, len(scan.TextureExtensions)),
		suffixToKind: make(map[string]assets.TextureKind, len(scan.TextureSuffixes)),
	}
	for ext, kind := range scan.ModelExtensions {
		fk, err := assets.ParseFileKind(kind)
		if err != nil {
			fk = assets.FileKindOther
		}
		c.modelExts[strings.ToLower(ext)] = fk
	}
	for _, ext := range scan.TextureExtensions {
		c.texExts[strings.ToLower(ext)] = true
	}
	for suffix, kind := range scan.TextureSuffixes {
		tk, err := assets.ParseTextureKind(kind)
		if err != nil {
			tk = assets.TextureKindOther
		}
		c.suffixToKind[strings.ToLower(suffix)] = tk
		c.suffixes = append(c.suffixes, strings.ToLower(suffix))
	}
	sort.Slice(c.suffixes, func(i, j int) bool {
		if len(c.suffixes[i]) != len(c.suffixes[j]) {
			return len(c.suffixes[i]) > len(c.suffixes[j])
		}
		return c.suffixes[i] < c.suffixes[j]
	})
	return c
}

// classify reports the asset kind and classification for a path; ok is
// false for files that are not assets (sidecars, configs, unknown types)
func (c *classifier) classify(path string) (kind assets.Kind, fileKind assets.FileKind, texKind assets.TextureKind, ok bool) {
	if strings.HasSuffix(path, SidecarSuffix) {
		return "", "", "", false
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", "", "", false
	}

	if fk, isModel := c.modelExts[ext]; isModel {
		return assets.KindModel, fk, "", true
	}
	if c.texExts[ext] {
		return assets.KindTexture, "", c.textureKind(path), true
	}
	return "", "", "", false
}

// textureKind derives the texture classification from the filename stem
func (c *classifier) textureKind(path string) assets.TextureKind {
	base := filepath.Base(path)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	for _, suffix := range c.suffixes {
		if strings.HasSuffix(stem, suffix) {
			return c.suffixToKind[suffix]
		}
	}
	return assets.TextureKindDefault
}

// dirConfig is the optional per-directory override file. It shares the
// .assetrules.toml name with the project config; directory-level keys are
// simply absent at the root.
type dirConfig struct {
	// Ignore excludes the directory and everything under it from scans
	Ignore bool `toml:"ignore"`

	// TextureKind forces a texture classification for all textures in the
	// directory, e.g. a sprites folder
	TextureKind string `toml:"texture_kind"`
}

// loadDirConfig reads a directory's .assetrules.toml if present
func loadDirConfig(dir string) dirConfig {
	var dc dirConfig

	data, err := os.ReadFile(filepath.Join(dir, dirConfigFile))
	if err != nil {
		return dc
	}
	// A malformed directory config is ignored rather than failing the scan.
	_ = toml.Unmarshal(data, &dc)
	return dc
}

const dirConfigFile = ".assetrules.toml"
