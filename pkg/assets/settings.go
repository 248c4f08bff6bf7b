package assets

import (
	"strings"

	"github.com/assetpipe/assetrules/pkg/errors"
)

// ModelSettings is the current-import-settings snapshot for a model asset
type ModelSettings struct {
	ScaleMode          ScaleMode       `yaml:"scaleMode"`
	ScaleFactor        float64         `yaml:"scaleFactor"`
	GenerateLightmapUV bool            `yaml:"generateLightmapUV"`
	MeshCompression    MeshCompression `yaml:"meshCompression"`
	ReadWrite          bool            `yaml:"readWrite"`
	OptimizeMesh       bool            `yaml:"optimizeMesh"`
	ImportBlendShapes  bool            `yaml:"importBlendShapes"`
	ImportVisibility   bool            `yaml:"importVisibility"`
	ImportCameras      bool            `yaml:"importCameras"`
	ImportLights       bool            `yaml:"importLights"`
}

// DefaultModelSettings mirrors the host defaults for a freshly imported model
func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		ScaleMode:         ScaleModeFileScale,
		ScaleFactor:       1.0,
		MeshCompression:   MeshCompressionOff,
		ImportBlendShapes: true,
		ImportVisibility:  true,
		ImportCameras:     true,
		ImportLights:      true,
	}
}

// PlatformSettings holds the per-platform texture encode settings
type PlatformSettings struct {
	MaxSize       int               `yaml:"maxSize"`
	Format        CompressionFormat `yaml:"format"`
	Quality       int               `yaml:"quality"`
	UseCrunch     bool              `yaml:"useCrunch"`
	CrunchQuality int               `yaml:"crunchQuality"`
}

// DefaultPlatformSettings mirrors the host defaults for one platform
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		MaxSize: 2048,
		Format:  FormatUncompressed,
		Quality: 50,
	}
}

// TextureSettings is the current-import-settings snapshot for a texture asset
type TextureSettings struct {
	SRGB     bool `yaml:"srgb"`
	MipMaps  bool `yaml:"mipMaps"`
	Readable bool `yaml:"readable"`

	// Platforms maps build targets to their encode settings. Every known
	// platform is present after normalization.
	Platforms map[Platform]PlatformSettings `yaml:"platforms"`
}

// DefaultTextureSettings mirrors the host defaults for a freshly imported texture
func DefaultTextureSettings() TextureSettings {
	s := TextureSettings{
		SRGB:      true,
		MipMaps:   true,
		Platforms: make(map[Platform]PlatformSettings, 4),
	}
	for _, p := range Platforms() {
		s.Platforms[p] = DefaultPlatformSettings()
	}
	return s
}

// Normalize fills in missing platform entries with defaults so lookups by
// the resolver never miss
func (s *TextureSettings) Normalize() {
	if s.Platforms == nil {
		s.Platforms = make(map[Platform]PlatformSettings, 4)
	}
	for _, p := range Platforms() {
		if _, ok := s.Platforms[p]; !ok {
			s.Platforms[p] = DefaultPlatformSettings()
		}
	}
}

// Apply writes the delta's fields into the settings, leaving everything not
// present in the delta untouched. Unknown fields are an error; unsupported
// quality/crunch values for the selected format are applied as-is, matching
// the host mutator contract.
func (s *ModelSettings) Apply(delta map[string]interface{}) error {
	for field, value := range delta {
		ok := true
		switch field {
		case FieldScaleMode:
			s.ScaleMode, ok = value.(ScaleMode)
		case FieldScaleFactor:
			s.ScaleFactor, ok = value.(float64)
		case FieldGenerateLightmapUV:
			s.GenerateLightmapUV, ok = value.(bool)
		case FieldMeshCompression:
			s.MeshCompression, ok = value.(MeshCompression)
		case FieldReadWrite:
			s.ReadWrite, ok = value.(bool)
		case FieldOptimizeMesh:
			s.OptimizeMesh, ok = value.(bool)
		case FieldImportBlendShapes:
			s.ImportBlendShapes, ok = value.(bool)
		case FieldImportVisibility:
			s.ImportVisibility, ok = value.(bool)
		case FieldImportCameras:
			s.ImportCameras, ok = value.(bool)
		case FieldImportLights:
			s.ImportLights, ok = value.(bool)
		default:
			return errors.Newf(errors.ErrInvalidInput, "unknown model setting %q", field)
		}
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "wrong value type for model setting %q", field)
		}
	}
	return nil
}

// Apply writes the delta's fields into the settings. Platform-scoped keys
// ("platform/<name>/<field>") address the matching Platforms entry.
func (s *TextureSettings) Apply(delta map[string]interface{}) error {
	s.Normalize()
	for field, value := range delta {
		if plat, sub, isPlatform := splitPlatformField(field); isPlatform {
			ps := s.Platforms[plat]
			if err := ps.apply(sub, value); err != nil {
				return err
			}
			s.Platforms[plat] = ps
			continue
		}

		ok := true
		switch field {
		case FieldSRGB:
			s.SRGB, ok = value.(bool)
		case FieldMipMaps:
			s.MipMaps, ok = value.(bool)
		case FieldReadable:
			s.Readable, ok = value.(bool)
		default:
			return errors.Newf(errors.ErrInvalidInput, "unknown texture setting %q", field)
		}
		if !ok {
			return errors.Newf(errors.ErrInvalidInput, "wrong value type for texture setting %q", field)
		}
	}
	return nil
}

func (ps *PlatformSettings) apply(field string, value interface{}) error {
	ok := true
	switch field {
	case FieldMaxSize:
		ps.MaxSize, ok = value.(int)
	case FieldFormat:
		ps.Format, ok = value.(CompressionFormat)
	case FieldQuality:
		ps.Quality, ok = value.(int)
	case FieldUseCrunch:
		ps.UseCrunch, ok = value.(bool)
	case FieldCrunchQuality:
		ps.CrunchQuality, ok = value.(int)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown platform setting %q", field)
	}
	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "wrong value type for platform setting %q", field)
	}
	return nil
}

// splitPlatformField decomposes a "platform/<name>/<field>" key
func splitPlatformField(key string) (Platform, string, bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] != "platform" {
		return "", "", false
	}
	plat, err := ParsePlatform(parts[1])
	if err != nil {
		return "", "", false
	}
	return plat, parts[2], true
}
