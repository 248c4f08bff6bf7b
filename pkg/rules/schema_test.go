package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/engine"
	"github.com/assetpipe/assetrules/pkg/override"
)

func resolveModel(t *testing.T, rule ModelRule, meta *assets.Metadata) (engine.Delta, bool) {
	t.Helper()
	return engine.Resolve(ModelSchema(), rule, meta.Model, engine.Delta{}, &engine.ResolveContext{Meta: meta})
}

func resolveTexture(t *testing.T, rule TextureRule, meta *assets.Metadata) (engine.Delta, bool) {
	t.Helper()
	return engine.Resolve(TextureSchema(), rule, meta.Texture, engine.Delta{}, &engine.ResolveContext{Meta: meta})
}

func TestModelSchemaFieldOrderIsStable(t *testing.T) {
	a := ModelSchema()
	b := ModelSchema()
	require.Equal(t, len(a.Fields), len(b.Fields))
	for i := range a.Fields {
		assert.Equal(t, a.Fields[i].Name, b.Fields[i].Name)
	}
}

func TestTextureSchemaCoversAllPlatforms(t *testing.T) {
	schema := TextureSchema()

	names := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		names[f.Name] = true
	}
	for _, p := range assets.Platforms() {
		assert.True(t, names[assets.PlatformField(p, assets.FieldMaxSize)])
		assert.True(t, names[assets.PlatformField(p, assets.FieldFormat)])
	}
}

func TestResolveStraightOverride(t *testing.T) {
	meta := modelMeta(assets.FileKindFBX, false)
	rule := NewModelRule("readwrite")
	rule.Overrides.ReadWrite = override.Set(true)

	delta, changed := resolveModel(t, rule, &meta)
	require.True(t, changed)
	assert.Equal(t, engine.Delta{assets.FieldReadWrite: true}, delta)
}

func TestResolveEqualityShortCircuit(t *testing.T) {
	meta := modelMeta(assets.FileKindFBX, false)
	rule := NewModelRule("already satisfied")
	// Defaults already import blend shapes.
	rule.Overrides.ImportBlendShapes = override.Set(true)

	delta, changed := resolveModel(t, rule, &meta)
	assert.False(t, changed)
	assert.Empty(t, delta)
}

func TestResolveNoOpRuleProducesNothing(t *testing.T) {
	meta := modelMeta(assets.FileKindFBX, true)
	rule := NewModelRule("noop")

	delta, changed := resolveModel(t, rule, &meta)
	assert.False(t, changed)
	assert.Empty(t, delta)
}

func TestResolveScaleFactorRequiresCustomScaleMode(t *testing.T) {
	meta := modelMeta(assets.FileKindFBX, false)

	// Factor set, but the mode selector is DontChange: the numeric field
	// must be ignored.
	rule := NewModelRule("orphan factor")
	rule.Overrides.ScaleFactor = override.Set(0.01)

	delta, changed := resolveModel(t, rule, &meta)
	assert.False(t, changed)
	assert.Empty(t, delta)

	rule.Overrides.ScaleMode = override.Set(assets.ScaleModeCustomScale)
	delta, changed = resolveModel(t, rule, &meta)
	require.True(t, changed)
	assert.Equal(t, assets.ScaleModeCustomScale, delta[assets.FieldScaleMode])
	assert.Equal(t, 0.01, delta[assets.FieldScaleFactor])
}

func TestResolveScaleFactorIgnoredForFileScaleMode(t *testing.T) {
	meta := modelMeta(assets.FileKindFBX, false)
	rule := NewModelRule("file units")
	rule.Overrides.ScaleMode = override.Set(assets.ScaleModeFileUnits)
	rule.Overrides.ScaleFactor = override.Set(42.0)

	delta, changed := resolveModel(t, rule, &meta)
	require.True(t, changed)
	assert.Equal(t, assets.ScaleModeFileUnits, delta[assets.FieldScaleMode])
	_, hasFactor := delta[assets.FieldScaleFactor]
	assert.False(t, hasFactor)
}

func TestResolveLightmapUVPolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      assets.LightmapUVPolicy
		hasUV2      bool
		wantChanged bool
		wantValue   bool
	}{
		{name: "force on", policy: assets.LightmapUVOn, wantChanged: true, wantValue: true},
		{name: "force off vs default off", policy: assets.LightmapUVOff, wantChanged: false},
		{name: "conditional, uv2 present", policy: assets.LightmapUVIfMissingUV2, hasUV2: true, wantChanged: false},
		{name: "conditional, uv2 missing", policy: assets.LightmapUVIfMissingUV2, hasUV2: false, wantChanged: true, wantValue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := modelMeta(assets.FileKindFBX, false)
			meta.HasSecondaryUV = tt.hasUV2

			rule := NewModelRule("lightmap")
			rule.Overrides.LightmapUV = override.Set(tt.policy)

			delta, changed := resolveModel(t, rule, &meta)
			assert.Equal(t, tt.wantChanged, changed)
			if tt.wantChanged {
				assert.Equal(t, tt.wantValue, delta[assets.FieldGenerateLightmapUV])
			}
		})
	}
}

func TestResolveMaxSizeClampOnlyShrinks(t *testing.T) {
	meta := textureMeta(assets.TextureKindDefault, false)
	android := meta.Texture.Platforms[assets.PlatformAndroid]
	android.MaxSize = 4096
	meta.Texture.Platforms[assets.PlatformAndroid] = android

	rule := NewTextureRule("clamp")
	rule.Overrides.Platforms = map[assets.Platform]PlatformOverrides{
		assets.PlatformAndroid: {MaxSize: override.Set(1024)},
	}

	delta, changed := resolveTexture(t, rule, &meta)
	require.True(t, changed)
	key := assets.PlatformField(assets.PlatformAndroid, assets.FieldMaxSize)
	assert.Equal(t, 1024, delta[key])

	// Current below the proposed cap: the clamp must not grow it.
	android.MaxSize = 256
	meta.Texture.Platforms[assets.PlatformAndroid] = android
	delta, changed = resolveTexture(t, rule, &meta)
	assert.False(t, changed)
	assert.Empty(t, delta)
}

func TestResolvePlatformScoping(t *testing.T) {
	meta := textureMeta(assets.TextureKindDefault, false)

	rule := NewTextureRule("android etc2")
	rule.Overrides.Platforms = map[assets.Platform]PlatformOverrides{
		assets.PlatformAndroid: {
			Format:  override.Set(assets.FormatETC2),
			Quality: override.Set(80),
		},
	}

	delta, changed := resolveTexture(t, rule, &meta)
	require.True(t, changed)
	assert.Equal(t, assets.FormatETC2, delta[assets.PlatformField(assets.PlatformAndroid, assets.FieldFormat)])
	assert.Equal(t, 80, delta[assets.PlatformField(assets.PlatformAndroid, assets.FieldQuality)])

	// Other platforms stay untouched.
	_, iosTouched := delta[assets.PlatformField(assets.PlatformIOS, assets.FieldFormat)]
	assert.False(t, iosTouched)
}

func TestResolveSeesAccumulatedDelta(t *testing.T) {
	meta := textureMeta(assets.TextureKindDefault, false)

	// An earlier rule in the same pass already flipped srgb off.
	acc := engine.Delta{assets.FieldSRGB: false}

	rule := NewTextureRule("srgb off again")
	rule.Overrides.SRGB = override.Set(false)

	delta, changed := engine.Resolve(TextureSchema(), rule, meta.Texture, acc, &engine.ResolveContext{Meta: &meta})
	assert.False(t, changed, "later rules observe prior rules' effect")
	assert.Empty(t, delta)
}

func TestResolveIdempotence(t *testing.T) {
	meta := textureMeta(assets.TextureKindDefault, true)

	rule := NewTextureRule("readable")
	rule.Overrides.Readable = override.Set(true)

	delta, changed := resolveTexture(t, rule, &meta)
	require.True(t, changed)

	// Apply the delta, then resolve again: the second application must
	// report no change.
	require.NoError(t, meta.Texture.Apply(delta))
	delta, changed = resolveTexture(t, rule, &meta)
	assert.False(t, changed)
	assert.Empty(t, delta)
}
