// Package assets defines the asset metadata model shared by the rule engine
// and its host collaborators: classification enums, import settings, and the
// metadata provider contract.
package assets

import (
	"github.com/assetpipe/assetrules/pkg/errors"
)

// Kind distinguishes the two asset families the engine knows about
type Kind string

const (
	KindModel   Kind = "model"
	KindTexture Kind = "texture"
)

// FileKind classifies a model asset by its source format.
// FileKindAll is the wildcard used in rule filters.
type FileKind string

const (
	FileKindAll     FileKind = "all"
	FileKindFBX     FileKind = "fbx"
	FileKindOBJ     FileKind = "obj"
	FileKindBlend   FileKind = "blend"
	FileKindCollada FileKind = "collada"
	FileKindMax     FileKind = "max"
	FileKindOther   FileKind = "other"
)

// TextureKind classifies a texture asset by its intended use
type TextureKind string

const (
	TextureKindAll       TextureKind = "all"
	TextureKindDefault   TextureKind = "default"
	TextureKindNormalMap TextureKind = "normalmap"
	TextureKindSprite    TextureKind = "sprite"
	TextureKindLightmap  TextureKind = "lightmap"
	TextureKindOther     TextureKind = "other"
)

// Platform identifies a build target for platform-scoped texture settings
type Platform string

const (
	PlatformDefault    Platform = "default"
	PlatformStandalone Platform = "standalone"
	PlatformAndroid    Platform = "android"
	PlatformIOS        Platform = "ios"
)

// Platforms lists all known platforms in a fixed, deterministic order
func Platforms() []Platform {
	return []Platform{PlatformDefault, PlatformStandalone, PlatformAndroid, PlatformIOS}
}

// ScaleMode selects how a model's import scale is derived
type ScaleMode string

const (
	ScaleModeFileScale   ScaleMode = "fileScale"
	ScaleModeFileUnits   ScaleMode = "fileUnits"
	ScaleModeCustomScale ScaleMode = "customScale"
)

// MeshCompression levels for model imports
type MeshCompression string

const (
	MeshCompressionOff    MeshCompression = "off"
	MeshCompressionLow    MeshCompression = "low"
	MeshCompressionMedium MeshCompression = "medium"
	MeshCompressionHigh   MeshCompression = "high"
)

// LightmapUVPolicy is the three-way secondary UV generation override
type LightmapUVPolicy string

const (
	LightmapUVOff          LightmapUVPolicy = "off"
	LightmapUVOn           LightmapUVPolicy = "on"
	LightmapUVIfMissingUV2 LightmapUVPolicy = "ifMissingUV2"
)

// CompressionFormat for texture imports
type CompressionFormat string

const (
	FormatUncompressed CompressionFormat = "uncompressed"
	FormatDXT1         CompressionFormat = "dxt1"
	FormatDXT5         CompressionFormat = "dxt5"
	FormatETC2         CompressionFormat = "etc2"
	FormatASTC         CompressionFormat = "astc"
	FormatBC7          CompressionFormat = "bc7"
)

// FormatSupportsQuality reports whether a compression format honors the
// compression quality slider. Advisory only: hosts no-op unsupported fields.
func FormatSupportsQuality(f CompressionFormat) bool {
	switch f {
	case FormatASTC, FormatBC7, FormatETC2:
		return true
	default:
		return false
	}
}

// FormatSupportsCrunch reports whether a compression format has a crunched
// variant. Advisory only, mirrors FormatSupportsQuality.
func FormatSupportsCrunch(f CompressionFormat) bool {
	switch f {
	case FormatDXT1, FormatDXT5, FormatETC2:
		return true
	default:
		return false
	}
}

// ParseKind validates a user-supplied asset kind string
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindModel, KindTexture:
		return Kind(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown asset kind %q", s)
}

// ParseFileKind validates a user-supplied file kind string
func ParseFileKind(s string) (FileKind, error) {
	switch FileKind(s) {
	case FileKindAll, FileKindFBX, FileKindOBJ, FileKindBlend, FileKindCollada, FileKindMax, FileKindOther:
		return FileKind(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown file kind %q", s)
}

// ParseTextureKind validates a user-supplied texture kind string
func ParseTextureKind(s string) (TextureKind, error) {
	switch TextureKind(s) {
	case TextureKindAll, TextureKindDefault, TextureKindNormalMap, TextureKindSprite, TextureKindLightmap, TextureKindOther:
		return TextureKind(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown texture kind %q", s)
}

// ParsePlatform validates a user-supplied platform string
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformDefault, PlatformStandalone, PlatformAndroid, PlatformIOS:
		return Platform(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown platform %q", s)
}
