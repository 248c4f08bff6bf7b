package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/engine"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/override"
	"github.com/assetpipe/assetrules/pkg/rules"
	"github.com/assetpipe/assetrules/pkg/testutil"
)

func newModelApplicator(mut engine.Mutator) *engine.Applicator[rules.ModelRule, assets.ModelSettings] {
	return engine.NewApplicator(rules.ModelSchema(), engine.Options{Mutator: mut})
}

func newTextureApplicator(mut engine.Mutator) *engine.Applicator[rules.TextureRule, assets.TextureSettings] {
	return engine.NewApplicator(rules.TextureSchema(), engine.Options{Mutator: mut})
}

func TestApplyNoEnabledRules(t *testing.T) {
	mut := &testutil.RecordingMutator{}
	app := newModelApplicator(mut)

	disabled := rules.NewModelRule("off")
	disabled.Enabled = false

	result, err := app.Apply(context.Background(),
		[]rules.ModelRule{disabled},
		[]assets.Metadata{testutil.NewModelAsset("a.fbx", assets.FileKindFBX, false)})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNoEnabledRules))
	assert.Equal(t, 0, result.Attempted)
	assert.Equal(t, 0, mut.Begins, "no assets may be touched")
	assert.Empty(t, mut.Commits)
}

func TestApplyScaleDownScenario(t *testing.T) {
	// One rule forcing a custom 0.01 scale; asset A still at 1.0, asset B
	// already satisfied. Only A gets a commit.
	rule := rules.NewModelRule("ScaleDown")
	rule.Overrides.ScaleMode = override.Set(assets.ScaleModeCustomScale)
	rule.Overrides.ScaleFactor = override.Set(0.01)

	a := testutil.NewModelAsset("a.fbx", assets.FileKindFBX, false)
	b := testutil.NewModelAsset("b.fbx", assets.FileKindFBX, false)
	b.Model.ScaleMode = assets.ScaleModeCustomScale
	b.Model.ScaleFactor = 0.01

	mut := &testutil.RecordingMutator{}
	app := newModelApplicator(mut)

	result, err := app.Apply(context.Background(), []rules.ModelRule{rule}, []assets.Metadata{a, b})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Modified)
	assert.Empty(t, result.Failed)

	require.Len(t, mut.Commits, 1)
	assert.Equal(t, "a.fbx", mut.Commits[0].Path)
	assert.Equal(t, 0.01, mut.Commits[0].Delta[assets.FieldScaleFactor])
}

func TestApplyLastWriteWinsPrecedence(t *testing.T) {
	r1 := rules.NewTextureRule("first")
	r1.Overrides.Platforms = map[assets.Platform]rules.PlatformOverrides{
		assets.PlatformDefault: {Format: override.Set(assets.FormatDXT1)},
	}
	r2 := rules.NewTextureRule("second")
	r2.Overrides.Platforms = map[assets.Platform]rules.PlatformOverrides{
		assets.PlatformDefault: {Format: override.Set(assets.FormatDXT5)},
	}

	mut := &testutil.RecordingMutator{}
	app := newTextureApplicator(mut)

	result, err := app.Apply(context.Background(),
		[]rules.TextureRule{r1, r2},
		[]assets.Metadata{testutil.NewTextureAsset("t.png", assets.TextureKindDefault, false)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Modified)

	require.Len(t, mut.Commits, 1)
	key := assets.PlatformField(assets.PlatformDefault, assets.FieldFormat)
	assert.Equal(t, assets.FormatDXT5, mut.Commits[0].Delta[key])
}

func TestApplyFailureIsolation(t *testing.T) {
	rule := rules.NewTextureRule("readable")
	rule.Overrides.Readable = override.Set(true)

	items := make([]assets.Metadata, 0, 5)
	for i := 1; i <= 5; i++ {
		items = append(items, testutil.NewTextureAsset(fmt.Sprintf("t%d.png", i), assets.TextureKindDefault, false))
	}

	mut := &testutil.RecordingMutator{
		FailPaths: map[string]error{"t2.png": fmt.Errorf("importer crashed")},
	}
	app := newTextureApplicator(mut)

	result, err := app.Apply(context.Background(), []rules.TextureRule{rule}, items)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Attempted)
	assert.Equal(t, 4, result.Modified)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "t2.png", result.Failed[0].Path)
	assert.True(t, errors.IsCode(result.Failed[0].Err, errors.ErrMutationFailed))

	// The failure must not stop later assets from committing.
	assert.Equal(t, []string{"t1.png", "t3.png", "t4.png", "t5.png"}, mut.CommittedPaths())
}

func TestApplyBracketsBatchOnce(t *testing.T) {
	rule := rules.NewModelRule("readwrite")
	rule.Overrides.ReadWrite = override.Set(true)

	items := []assets.Metadata{
		testutil.NewModelAsset("a.fbx", assets.FileKindFBX, false),
		testutil.NewModelAsset("b.obj", assets.FileKindOBJ, false),
	}

	mut := &testutil.RecordingMutator{}
	app := newModelApplicator(mut)

	_, err := app.Apply(context.Background(), []rules.ModelRule{rule}, items)
	require.NoError(t, err)

	assert.Equal(t, 1, mut.Begins, "one reimport storm, not N")
	assert.Equal(t, 1, mut.Ends)
	assert.Len(t, mut.Commits, 2)
}

func TestApplyDryRunCommitsNothing(t *testing.T) {
	rule := rules.NewModelRule("readwrite")
	rule.Overrides.ReadWrite = override.Set(true)

	mut := &testutil.RecordingMutator{}
	app := engine.NewApplicator(rules.ModelSchema(), engine.Options{Mutator: mut, DryRun: true})

	result, err := app.Apply(context.Background(),
		[]rules.ModelRule{rule},
		[]assets.Metadata{testutil.NewModelAsset("a.fbx", assets.FileKindFBX, false)})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Modified)
	assert.Empty(t, mut.Commits)
}

func TestApplySkipsOtherKinds(t *testing.T) {
	rule := rules.NewModelRule("readwrite")
	rule.Overrides.ReadWrite = override.Set(true)

	items := []assets.Metadata{
		testutil.NewModelAsset("a.fbx", assets.FileKindFBX, false),
		testutil.NewTextureAsset("t.png", assets.TextureKindDefault, false),
	}

	mut := &testutil.RecordingMutator{}
	app := newModelApplicator(mut)

	result, err := app.Apply(context.Background(), []rules.ModelRule{rule}, items)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Attempted, "texture assets are outside the model schema")
	assert.Equal(t, []string{"a.fbx"}, mut.CommittedPaths())
}

func TestApplyDisabledRulesAreSkippedButOthersRun(t *testing.T) {
	off := rules.NewModelRule("off")
	off.Enabled = false
	off.Overrides.OptimizeMesh = override.Set(true)

	on := rules.NewModelRule("on")
	on.Overrides.ReadWrite = override.Set(true)

	mut := &testutil.RecordingMutator{}
	app := newModelApplicator(mut)

	_, err := app.Apply(context.Background(),
		[]rules.ModelRule{off, on},
		[]assets.Metadata{testutil.NewModelAsset("a.fbx", assets.FileKindFBX, false)})
	require.NoError(t, err)

	require.Len(t, mut.Commits, 1)
	_, optimized := mut.Commits[0].Delta[assets.FieldOptimizeMesh]
	assert.False(t, optimized, "disabled rule must contribute nothing")
	assert.Equal(t, true, mut.Commits[0].Delta[assets.FieldReadWrite])
}

func TestApplyIsIdempotentAcrossRuns(t *testing.T) {
	rule := rules.NewTextureRule("mips off")
	rule.Overrides.MipMaps = override.Set(false)

	item := testutil.NewTextureAsset("t.png", assets.TextureKindDefault, false)

	mut := &testutil.RecordingMutator{}
	app := newTextureApplicator(mut)

	result, err := app.Apply(context.Background(), []rules.TextureRule{rule}, []assets.Metadata{item})
	require.NoError(t, err)
	require.Equal(t, 1, result.Modified)

	// Feed the committed delta back into the snapshot, as the host would
	// after a reimport, then apply again.
	require.NoError(t, item.Texture.Apply(mut.Commits[0].Delta))

	result, err = app.Apply(context.Background(), []rules.TextureRule{rule}, []assets.Metadata{item})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Modified, "second application must observe no change")
}

func TestApplyConditionalLightmapUsesUVQuery(t *testing.T) {
	rule := rules.NewModelRule("lightmaps")
	rule.Overrides.LightmapUV = override.Set(assets.LightmapUVIfMissingUV2)

	withUV2 := testutil.NewModelAsset("with.fbx", assets.FileKindFBX, false)
	without := testutil.NewModelAsset("without.fbx", assets.FileKindFBX, false)

	mut := &testutil.RecordingMutator{}
	app := engine.NewApplicator(rules.ModelSchema(), engine.Options{
		Mutator: mut,
		UV:      &testutil.StaticUVQuery{UV2: map[string]bool{"with.fbx": true}},
	})

	result, err := app.Apply(context.Background(),
		[]rules.ModelRule{rule},
		[]assets.Metadata{withUV2, without})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Modified)
	require.Len(t, mut.Commits, 1)
	assert.Equal(t, "without.fbx", mut.Commits[0].Path)
	assert.Equal(t, true, mut.Commits[0].Delta[assets.FieldGenerateLightmapUV])
}
