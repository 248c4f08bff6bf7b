package rulestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/override"
	"github.com/assetpipe/assetrules/pkg/rules"
)

// fixtureSet builds a rule set touching every corner the round-trip must
// preserve: disabled rules, DontChange sentinels, explicit false overrides,
// and platform-scoped entries.
func fixtureSet() rules.RuleSet {
	scaleDown := rules.NewModelRule("ScaleDown")
	scaleDown.Filters.FileKind = assets.FileKindFBX
	scaleDown.Filters.MeshKind = rules.MeshKindSkinnedOnly
	scaleDown.Overrides.ScaleMode = override.Set(assets.ScaleModeCustomScale)
	scaleDown.Overrides.ScaleFactor = override.Set(0.01)

	disabled := rules.NewModelRule("Parked")
	disabled.Enabled = false
	disabled.Overrides.ReadWrite = override.Set(false)

	mobile := rules.NewTextureRule("Mobile compression")
	mobile.Filters.Alpha = rules.AlphaOnlyOpaque
	mobile.Overrides.SRGB = override.Set(false)
	mobile.Overrides.Platforms = map[assets.Platform]rules.PlatformOverrides{
		assets.PlatformAndroid: {
			MaxSize: override.Set(1024),
			Format:  override.Set(assets.FormatETC2),
			Quality: override.Set(80),
		},
		assets.PlatformIOS: {
			Format:    override.Set(assets.FormatASTC),
			UseCrunch: override.Set(false),
		},
	}

	return rules.RuleSet{
		Models:   []rules.ModelRule{scaleDown, disabled},
		Textures: []rules.TextureRule{mobile},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := fixtureSet()

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out, "round-trip must preserve every field exactly")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rules.yaml")
	in := fixtureSet()

	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestLoadMalformedFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [not a rule"), 0644))

	set, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRuleSetParse))
	assert.Equal(t, 0, set.Len(), "caller keeps working with an empty set")
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	// Valid YAML that is not a rule set document must not decode to an
	// empty set; a replace-mode import of such a file would eat rules.
	_, err := Decode([]byte("::: junk\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRuleSetParse))
}

func TestImportUnknownKeysLeavesSetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bogus: true\n"), 0644))

	set := rules.RuleSet{Models: []rules.ModelRule{rules.NewModelRule("existing")}}
	err := Import(&set, path, rules.MergeReplace)
	require.Error(t, err)
	require.Len(t, set.Models, 1, "a bad import must never eat existing rules")
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode([]byte("version: 99\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRuleSetParse))
}

func TestDecodeDefaultsMissingOverridesToDontChange(t *testing.T) {
	doc := []byte(`version: 1
models:
  - name: sparse
    enabled: true
    filters:
      fileKind: all
      meshKind: all
    overrides:
      readWrite: true
`)
	set, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, set.Models, 1)

	o := set.Models[0].Overrides
	assert.True(t, o.ReadWrite.Equals(true))
	assert.False(t, o.ScaleMode.IsSet())
	assert.False(t, o.OptimizeMesh.IsSet())
}

func TestImportAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.yaml")
	require.NoError(t, Save(path, fixtureSet()))

	set := rules.RuleSet{Models: []rules.ModelRule{rules.NewModelRule("existing")}}
	require.NoError(t, Import(&set, path, rules.MergeAppend))

	require.Len(t, set.Models, 3)
	assert.Equal(t, "existing", set.Models[0].Name)
	assert.Equal(t, "ScaleDown", set.Models[1].Name)
	require.Len(t, set.Textures, 1)
}

func TestImportReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.yaml")
	require.NoError(t, Save(path, fixtureSet()))

	set := rules.RuleSet{Models: []rules.ModelRule{rules.NewModelRule("existing")}}
	require.NoError(t, Import(&set, path, rules.MergeReplace))

	require.Len(t, set.Models, 2)
	assert.Equal(t, "ScaleDown", set.Models[0].Name)
}

func TestImportMalformedLeavesSetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [unclosed"), 0644))

	set := rules.RuleSet{Models: []rules.ModelRule{rules.NewModelRule("existing")}}
	err := Import(&set, path, rules.MergeReplace)
	require.Error(t, err)
	require.Len(t, set.Models, 1, "a bad import must never eat existing rules")
}

func TestImportInvalidRuleRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.yaml")
	doc := []byte(`version: 1
models:
  - name: broken
    enabled: true
    filters:
      fileKind: gltf
      meshKind: all
`)
	require.NoError(t, os.WriteFile(path, doc, 0644))

	set := rules.RuleSet{}
	err := Import(&set, path, rules.MergeAppend)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRuleInvalid))
	assert.Equal(t, 0, set.Len())
}
