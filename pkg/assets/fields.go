package assets

import "fmt"

// Canonical setting names. These keys address both the settings bag on an
// asset and the override fields on a rule; deltas produced by the resolver
// use the same names, so the mutator can apply them without translation.
const (
	FieldScaleMode          = "scaleMode"
	FieldScaleFactor        = "scaleFactor"
	FieldGenerateLightmapUV = "generateLightmapUV"
	FieldMeshCompression    = "meshCompression"
	FieldReadWrite          = "readWrite"
	FieldOptimizeMesh       = "optimizeMesh"
	FieldImportBlendShapes  = "importBlendShapes"
	FieldImportVisibility   = "importVisibility"
	FieldImportCameras      = "importCameras"
	FieldImportLights       = "importLights"

	FieldSRGB     = "srgb"
	FieldMipMaps  = "mipMaps"
	FieldReadable = "readable"

	FieldMaxSize       = "maxSize"
	FieldFormat        = "format"
	FieldQuality       = "quality"
	FieldUseCrunch     = "useCrunch"
	FieldCrunchQuality = "crunchQuality"
)

// PlatformField qualifies a texture setting name with its target platform.
// Platform-scoped entries in a delta use these keys so one merged delta per
// asset can carry several platforms' worth of changes.
func PlatformField(p Platform, field string) string {
	return fmt.Sprintf("platform/%s/%s", p, field)
}
