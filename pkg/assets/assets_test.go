package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetpipe/assetrules/pkg/errors"
)

func TestParseFileKind(t *testing.T) {
	tests := []struct {
		input   string
		want    FileKind
		wantErr bool
	}{
		{input: "fbx", want: FileKindFBX},
		{input: "all", want: FileKindAll},
		{input: "collada", want: FileKindCollada},
		{input: "FBX", wantErr: true},
		{input: "", wantErr: true},
		{input: "gltf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFileKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	got, err := ParseKind("texture")
	require.NoError(t, err)
	assert.Equal(t, KindTexture, got)

	_, err = ParseKind("audio")
	require.Error(t, err)
}

func TestParsePlatform(t *testing.T) {
	got, err := ParsePlatform("android")
	require.NoError(t, err)
	assert.Equal(t, PlatformAndroid, got)

	_, err = ParsePlatform("webgl")
	require.Error(t, err)
}

func TestFormatCapabilities(t *testing.T) {
	assert.True(t, FormatSupportsQuality(FormatASTC))
	assert.True(t, FormatSupportsQuality(FormatBC7))
	assert.False(t, FormatSupportsQuality(FormatDXT1))
	assert.False(t, FormatSupportsQuality(FormatUncompressed))

	assert.True(t, FormatSupportsCrunch(FormatDXT1))
	assert.True(t, FormatSupportsCrunch(FormatETC2))
	assert.False(t, FormatSupportsCrunch(FormatASTC))
}

func TestDefaultTextureSettingsCoversAllPlatforms(t *testing.T) {
	s := DefaultTextureSettings()
	for _, p := range Platforms() {
		ps, ok := s.Platforms[p]
		require.True(t, ok, "missing platform %s", p)
		assert.Equal(t, 2048, ps.MaxSize)
	}
}

func TestNormalizeFillsMissingPlatforms(t *testing.T) {
	s := TextureSettings{
		Platforms: map[Platform]PlatformSettings{
			PlatformAndroid: {MaxSize: 512, Format: FormatETC2},
		},
	}
	s.Normalize()

	assert.Len(t, s.Platforms, len(Platforms()))
	assert.Equal(t, 512, s.Platforms[PlatformAndroid].MaxSize)
	assert.Equal(t, 2048, s.Platforms[PlatformDefault].MaxSize)
}

func TestModelSettingsApply(t *testing.T) {
	s := DefaultModelSettings()

	err := s.Apply(map[string]interface{}{
		FieldScaleMode:   ScaleModeCustomScale,
		FieldScaleFactor: 0.01,
		FieldReadWrite:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, ScaleModeCustomScale, s.ScaleMode)
	assert.Equal(t, 0.01, s.ScaleFactor)
	assert.True(t, s.ReadWrite)
	// Untouched fields keep their values.
	assert.True(t, s.ImportBlendShapes)
}

func TestModelSettingsApplyUnknownField(t *testing.T) {
	s := DefaultModelSettings()
	err := s.Apply(map[string]interface{}{"bogus": 1})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestModelSettingsApplyWrongType(t *testing.T) {
	s := DefaultModelSettings()
	err := s.Apply(map[string]interface{}{FieldScaleFactor: "tiny"})
	require.Error(t, err)
}

func TestTextureSettingsApplyPlatformScoped(t *testing.T) {
	s := DefaultTextureSettings()

	err := s.Apply(map[string]interface{}{
		FieldSRGB: false,
		PlatformField(PlatformAndroid, FieldMaxSize): 512,
		PlatformField(PlatformAndroid, FieldFormat):  FormatETC2,
		PlatformField(PlatformIOS, FieldMaxSize):     1024,
	})
	require.NoError(t, err)

	assert.False(t, s.SRGB)
	assert.Equal(t, 512, s.Platforms[PlatformAndroid].MaxSize)
	assert.Equal(t, FormatETC2, s.Platforms[PlatformAndroid].Format)
	assert.Equal(t, 1024, s.Platforms[PlatformIOS].MaxSize)
	// Platforms not named in the delta are untouched.
	assert.Equal(t, 2048, s.Platforms[PlatformStandalone].MaxSize)
}

func TestTextureSettingsApplyUnknownPlatformKey(t *testing.T) {
	s := DefaultTextureSettings()
	err := s.Apply(map[string]interface{}{"platform/webgl/maxSize": 256})
	require.Error(t, err)
}

func TestPlatformField(t *testing.T) {
	assert.Equal(t, "platform/ios/maxSize", PlatformField(PlatformIOS, FieldMaxSize))
}
