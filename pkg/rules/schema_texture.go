package rules

import (
	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/engine"
)

// TextureSchema returns the ordered field table driving the generic engine
// for texture rules. The global fields come first, then the platform-scoped
// encode fields, one group per platform in assets.Platforms() order.
func TextureSchema() *engine.Schema[TextureRule, assets.TextureSettings] {
	fields := []engine.Field[TextureRule, assets.TextureSettings]{
		{
			Name:    assets.FieldSRGB,
			Current: func(s *assets.TextureSettings) interface{} { return s.SRGB },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.SRGB)
			},
		},
		{
			Name:    assets.FieldMipMaps,
			Current: func(s *assets.TextureSettings) interface{} { return s.MipMaps },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.MipMaps)
			},
		},
		{
			Name:    assets.FieldReadable,
			Current: func(s *assets.TextureSettings) interface{} { return s.Readable },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.Readable)
			},
		},
	}

	for _, plat := range assets.Platforms() {
		fields = append(fields, platformFields(plat)...)
	}

	return &engine.Schema[TextureRule, assets.TextureSettings]{
		Kind:     assets.KindTexture,
		Settings: func(meta *assets.Metadata) *assets.TextureSettings { return meta.Texture },
		Fields:   fields,
	}
}

// platformFields builds the encode field group for one platform. Each field
// reads the rule's override for that platform; an absent platform entry is
// all-DontChange.
func platformFields(plat assets.Platform) []engine.Field[TextureRule, assets.TextureSettings] {
	return []engine.Field[TextureRule, assets.TextureSettings]{
		{
			Name:    assets.PlatformField(plat, assets.FieldMaxSize),
			Current: func(s *assets.TextureSettings) interface{} { return s.Platforms[plat].MaxSize },
			Proposed: func(r TextureRule, current interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				size, ok := r.Overrides.Platforms[plat].MaxSize.Get()
				if !ok {
					return nil, false
				}
				// One-directional clamp: only shrink, never grow.
				if currentSize, isInt := current.(int); isInt && currentSize <= size {
					return nil, false
				}
				return size, true
			},
		},
		{
			Name:    assets.PlatformField(plat, assets.FieldFormat),
			Current: func(s *assets.TextureSettings) interface{} { return s.Platforms[plat].Format },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.Platforms[plat].Format)
			},
		},
		{
			Name:    assets.PlatformField(plat, assets.FieldQuality),
			Current: func(s *assets.TextureSettings) interface{} { return s.Platforms[plat].Quality },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.Platforms[plat].Quality)
			},
		},
		{
			Name:    assets.PlatformField(plat, assets.FieldUseCrunch),
			Current: func(s *assets.TextureSettings) interface{} { return s.Platforms[plat].UseCrunch },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.Platforms[plat].UseCrunch)
			},
		},
		{
			Name:    assets.PlatformField(plat, assets.FieldCrunchQuality),
			Current: func(s *assets.TextureSettings) interface{} { return s.Platforms[plat].CrunchQuality },
			Proposed: func(r TextureRule, _ interface{}, _ *engine.ResolveContext) (interface{}, bool) {
				return setValue(r.Overrides.Platforms[plat].CrunchQuality)
			},
		},
	}
}
