package rules

import (
	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/engine"
	"github.com/assetpipe/assetrules/pkg/override"
)

// setValue adapts an override.Value to the engine's (value, applicable) shape
func setValue[T comparable](v override.Value[T]) (interface{}, bool) {
	concrete, ok := v.Get()
	if !ok {
		return nil, false
	}
	return concrete, true
}

// ModelSchema returns the ordered field table driving the generic engine
// for model rules. Field order is fixed: it is the resolver's deterministic
// iteration order.
func ModelSchema() *engine.Schema[ModelRule, assets.ModelSettings] {
	return &engine.Schema[ModelRule, assets.ModelSettings]{
		Kind:     assets.KindModel,
		Settings: func(meta *assets.Metadata) *assets.ModelSettings { return meta.Model },
		Fields: []engine.Field[ModelRule, assets.ModelSettings]{
			{
				Name:    assets.FieldScaleMode,
				Current: func(s *assets.ModelSettings) interface{} { return s.ScaleMode },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.ScaleMode)
				},
			},
			{
				Name:    assets.FieldScaleFactor,
				Current: func(s *assets.ModelSettings) interface{} { return s.ScaleFactor },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					// The numeric factor only applies when the rule also
					// selects the custom scale mode.
					if !r.Overrides.ScaleMode.Equals(assets.ScaleModeCustomScale) {
						return nil, false
					}
					return setValue(r.Overrides.ScaleFactor)
				},
			},
			{
				Name:    assets.FieldGenerateLightmapUV,
				Current: func(s *assets.ModelSettings) interface{} { return s.GenerateLightmapUV },
				Proposed: func(r ModelRule, _ interface{}, ctx *engine.ResolveContext) (interface{}, bool) {
					policy, ok := r.Overrides.LightmapUV.Get()
					if !ok {
						return nil, false
					}
					switch policy {
					case assets.LightmapUVOn:
						return true, true
					case assets.LightmapUVIfMissingUV2:
						return !ctx.HasSecondaryUV(), true
					default:
						return false, true
					}
				},
			},
			{
				Name:    assets.FieldMeshCompression,
				Current: func(s *assets.ModelSettings) interface{} { return s.MeshCompression },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.MeshCompression)
				},
			},
			{
				Name:    assets.FieldReadWrite,
				Current: func(s *assets.ModelSettings) interface{} { return s.ReadWrite },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.ReadWrite)
				},
			},
			{
				Name:    assets.FieldOptimizeMesh,
				Current: func(s *assets.ModelSettings) interface{} { return s.OptimizeMesh },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.OptimizeMesh)
				},
			},
			{
				Name:    assets.FieldImportBlendShapes,
				Current: func(s *assets.ModelSettings) interface{} { return s.ImportBlendShapes },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.ImportBlendShapes)
				},
			},
			{
				Name:    assets.FieldImportVisibility,
				Current: func(s *assets.ModelSettings) interface{} { return s.ImportVisibility },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.ImportVisibility)
				},
			},
			{
				Name:    assets.FieldImportCameras,
				Current: func(s *assets.ModelSettings) interface{} { return s.ImportCameras },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.ImportCameras)
				},
			},
			{
				Name:    assets.FieldImportLights,
				Current: func(s *assets.ModelSettings) interface{} { return s.ImportLights },
				Proposed: func(r ModelRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
					return setValue(r.Overrides.ImportLights)
				},
			},
		},
	}
}
