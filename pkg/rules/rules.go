package rules

import (
	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/override"
)

// MeshKind filters model assets on their skinned-geometry flag
type MeshKind string

const (
	MeshKindAll         MeshKind = "all"
	MeshKindSkinnedOnly MeshKind = "skinnedOnly"
	MeshKindStaticOnly  MeshKind = "staticOnly"
)

// AlphaFilter filters texture assets on their has-alpha flag
type AlphaFilter string

const (
	AlphaAll        AlphaFilter = "all"
	AlphaOnly       AlphaFilter = "onlyWithAlpha"
	AlphaOnlyOpaque AlphaFilter = "onlyOpaque"
)

// ParseMeshKind validates a user-supplied mesh kind string
func ParseMeshKind(s string) (MeshKind, error) {
	switch MeshKind(s) {
	case MeshKindAll, MeshKindSkinnedOnly, MeshKindStaticOnly:
		return MeshKind(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown mesh kind %q", s)
}

// ParseAlphaFilter validates a user-supplied alpha filter string
func ParseAlphaFilter(s string) (AlphaFilter, error) {
	switch AlphaFilter(s) {
	case AlphaAll, AlphaOnly, AlphaOnlyOpaque:
		return AlphaFilter(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown alpha filter %q", s)
}

// ModelFilters are the predicates a ModelRule matches assets with.
// Configured dimensions combine with logical AND.
type ModelFilters struct {
	// FileKind restricts the rule to one source format; FileKindAll matches
	// everything. ApplyToAllTypes overrides the stored kind entirely.
	FileKind        assets.FileKind `yaml:"fileKind"`
	ApplyToAllTypes bool            `yaml:"applyToAllTypes"`
	MeshKind        MeshKind        `yaml:"meshKind"`
}

// ModelOverrides holds one override.Value per configurable model setting.
// The zero value changes nothing.
type ModelOverrides struct {
	ScaleMode         override.Value[assets.ScaleMode]        `yaml:"scaleMode"`
	ScaleFactor       override.Value[float64]                 `yaml:"scaleFactor"`
	LightmapUV        override.Value[assets.LightmapUVPolicy] `yaml:"lightmapUV"`
	MeshCompression   override.Value[assets.MeshCompression]  `yaml:"meshCompression"`
	ReadWrite         override.Value[bool]                    `yaml:"readWrite"`
	OptimizeMesh      override.Value[bool]                    `yaml:"optimizeMesh"`
	ImportBlendShapes override.Value[bool]                    `yaml:"importBlendShapes"`
	ImportVisibility  override.Value[bool]                    `yaml:"importVisibility"`
	ImportCameras     override.Value[bool]                    `yaml:"importCameras"`
	ImportLights      override.Value[bool]                    `yaml:"importLights"`
}

// ModelRule is a named, enableable filter + override bundle for model assets
type ModelRule struct {
	Name      string         `yaml:"name"`
	Enabled   bool           `yaml:"enabled"`
	Filters   ModelFilters   `yaml:"filters"`
	Overrides ModelOverrides `yaml:"overrides"`
}

// NewModelRule creates an enabled rule with wildcard filters and every
// override at DontChange
func NewModelRule(name string) ModelRule {
	return ModelRule{
		Name:    name,
		Enabled: true,
		Filters: ModelFilters{
			FileKind: assets.FileKindAll,
			MeshKind: MeshKindAll,
		},
	}
}

// RuleName implements engine.Rule
func (r ModelRule) RuleName() string { return r.Name }

// IsEnabled implements engine.Rule
func (r ModelRule) IsEnabled() bool { return r.Enabled }

// Matches reports whether the rule's filters accept the asset. Pure and
// side-effect-free; exact categorical matching only.
func (r ModelRule) Matches(meta *assets.Metadata) bool {
	if !r.Enabled {
		return false
	}
	if meta.Kind != assets.KindModel {
		return false
	}
	if !r.Filters.ApplyToAllTypes &&
		r.Filters.FileKind != assets.FileKindAll &&
		r.Filters.FileKind != meta.FileKind {
		return false
	}
	switch r.Filters.MeshKind {
	case MeshKindSkinnedOnly:
		if !meta.HasSkinned {
			return false
		}
	case MeshKindStaticOnly:
		if meta.HasSkinned {
			return false
		}
	}
	return true
}

// IsNoOp reports whether every override is DontChange. A no-op rule is
// legal: matches are computed but the resolver reports no modification.
func (r ModelRule) IsNoOp() bool {
	o := r.Overrides
	return !o.ScaleMode.IsSet() && !o.ScaleFactor.IsSet() && !o.LightmapUV.IsSet() &&
		!o.MeshCompression.IsSet() && !o.ReadWrite.IsSet() && !o.OptimizeMesh.IsSet() &&
		!o.ImportBlendShapes.IsSet() && !o.ImportVisibility.IsSet() &&
		!o.ImportCameras.IsSet() && !o.ImportLights.IsSet()
}

// Validate checks filter values and override ranges
func (r ModelRule) Validate() error {
	if _, err := assets.ParseFileKind(string(r.Filters.FileKind)); err != nil {
		return errors.Wrapf(err, errors.ErrRuleInvalid, "rule %q has an invalid file kind filter", r.Name)
	}
	switch r.Filters.MeshKind {
	case MeshKindAll, MeshKindSkinnedOnly, MeshKindStaticOnly:
	default:
		return errors.Newf(errors.ErrRuleInvalid, "rule %q has an invalid mesh kind filter %q", r.Name, r.Filters.MeshKind)
	}
	if factor, ok := r.Overrides.ScaleFactor.Get(); ok && factor <= 0 {
		return errors.Newf(errors.ErrRuleInvalid, "rule %q has a non-positive scale factor %v", r.Name, factor)
	}
	return nil
}

// TextureFilters are the predicates a TextureRule matches assets with
type TextureFilters struct {
	TextureKind     assets.TextureKind `yaml:"textureKind"`
	ApplyToAllTypes bool               `yaml:"applyToAllTypes"`
	Alpha           AlphaFilter        `yaml:"alpha"`
}

// PlatformOverrides holds the per-platform texture encode overrides.
// Quality and crunch fields are only meaningful for formats that support
// them; that gating is advisory to the UI, the resolver applies what is set.
type PlatformOverrides struct {
	MaxSize       override.Value[int]                      `yaml:"maxSize"`
	Format        override.Value[assets.CompressionFormat] `yaml:"format"`
	Quality       override.Value[int]                      `yaml:"quality"`
	UseCrunch     override.Value[bool]                     `yaml:"useCrunch"`
	CrunchQuality override.Value[int]                      `yaml:"crunchQuality"`
}

// IsNoOp reports whether every platform override is DontChange
func (p PlatformOverrides) IsNoOp() bool {
	return !p.MaxSize.IsSet() && !p.Format.IsSet() && !p.Quality.IsSet() &&
		!p.UseCrunch.IsSet() && !p.CrunchQuality.IsSet()
}

// TextureOverrides holds one override.Value per configurable texture setting
type TextureOverrides struct {
	SRGB     override.Value[bool] `yaml:"srgb"`
	MipMaps  override.Value[bool] `yaml:"mipMaps"`
	Readable override.Value[bool] `yaml:"readable"`

	// Platforms scopes encode overrides to build targets; absent platforms
	// are all-DontChange
	Platforms map[assets.Platform]PlatformOverrides `yaml:"platforms,omitempty"`
}

// TextureRule is a named, enableable filter + override bundle for textures
type TextureRule struct {
	Name      string           `yaml:"name"`
	Enabled   bool             `yaml:"enabled"`
	Filters   TextureFilters   `yaml:"filters"`
	Overrides TextureOverrides `yaml:"overrides"`
}

// NewTextureRule creates an enabled rule with wildcard filters and every
// override at DontChange
func NewTextureRule(name string) TextureRule {
	return TextureRule{
		Name:    name,
		Enabled: true,
		Filters: TextureFilters{
			TextureKind: assets.TextureKindAll,
			Alpha:       AlphaAll,
		},
	}
}

// RuleName implements engine.Rule
func (r TextureRule) RuleName() string { return r.Name }

// IsEnabled implements engine.Rule
func (r TextureRule) IsEnabled() bool { return r.Enabled }

// Matches reports whether the rule's filters accept the asset
func (r TextureRule) Matches(meta *assets.Metadata) bool {
	if !r.Enabled {
		return false
	}
	if meta.Kind != assets.KindTexture {
		return false
	}
	if !r.Filters.ApplyToAllTypes &&
		r.Filters.TextureKind != assets.TextureKindAll &&
		r.Filters.TextureKind != meta.TextureKind {
		return false
	}
	switch r.Filters.Alpha {
	case AlphaOnly:
		if !meta.HasAlpha {
			return false
		}
	case AlphaOnlyOpaque:
		if meta.HasAlpha {
			return false
		}
	}
	return true
}

// IsNoOp reports whether every override, including all platform scopes,
// is DontChange
func (r TextureRule) IsNoOp() bool {
	o := r.Overrides
	if o.SRGB.IsSet() || o.MipMaps.IsSet() || o.Readable.IsSet() {
		return false
	}
	for _, po := range o.Platforms {
		if !po.IsNoOp() {
			return false
		}
	}
	return true
}

// Validate checks filter values and override ranges
func (r TextureRule) Validate() error {
	if _, err := assets.ParseTextureKind(string(r.Filters.TextureKind)); err != nil {
		return errors.Wrapf(err, errors.ErrRuleInvalid, "rule %q has an invalid texture kind filter", r.Name)
	}
	switch r.Filters.Alpha {
	case AlphaAll, AlphaOnly, AlphaOnlyOpaque:
	default:
		return errors.Newf(errors.ErrRuleInvalid, "rule %q has an invalid alpha filter %q", r.Name, r.Filters.Alpha)
	}
	for plat, po := range r.Overrides.Platforms {
		if _, err := assets.ParsePlatform(string(plat)); err != nil {
			return errors.Wrapf(err, errors.ErrRuleInvalid, "rule %q targets an unknown platform", r.Name)
		}
		if size, ok := po.MaxSize.Get(); ok && size <= 0 {
			return errors.Newf(errors.ErrRuleInvalid, "rule %q has a non-positive max size for %s", r.Name, plat)
		}
		if q, ok := po.Quality.Get(); ok && (q < 0 || q > 100) {
			return errors.Newf(errors.ErrRuleInvalid, "rule %q has quality %d out of range for %s", r.Name, q, plat)
		}
		if q, ok := po.CrunchQuality.Get(); ok && (q < 0 || q > 100) {
			return errors.Newf(errors.ErrRuleInvalid, "rule %q has crunch quality %d out of range for %s", r.Name, q, plat)
		}
	}
	return nil
}
