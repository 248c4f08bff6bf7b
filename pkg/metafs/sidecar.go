package metafs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/errors"
)

// SidecarSuffix is appended to an asset path to locate its sidecar document
const SidecarSuffix = ".meta.yaml"

// Sidecar is the per-asset document holding the flags the rule filters
// consult and the asset's current import settings. A missing sidecar means
// default settings and false flags.
type Sidecar struct {
	HasSkinned     bool `yaml:"hasSkinned,omitempty"`
	HasAlpha       bool `yaml:"hasAlpha,omitempty"`
	HasSecondaryUV bool `yaml:"hasSecondaryUV,omitempty"`

	VertexCount int `yaml:"vertexCount,omitempty"`
	Width       int `yaml:"width,omitempty"`
	Height      int `yaml:"height,omitempty"`

	Model   *assets.ModelSettings   `yaml:"model,omitempty"`
	Texture *assets.TextureSettings `yaml:"texture,omitempty"`
}

// SidecarPath returns the sidecar location for an asset path
func SidecarPath(assetPath string) string {
	return assetPath + SidecarSuffix
}

// readSidecar loads an asset's sidecar. A missing file returns an empty
// sidecar with no error; an unreadable or malformed one is a metadata
// failure for that asset.
func readSidecar(assetPath string) (Sidecar, error) {
	var sc Sidecar

	data, err := os.ReadFile(SidecarPath(assetPath))
	if os.IsNotExist(err) {
		return sc, nil
	}
	if err != nil {
		return sc, errors.Wrapf(err, errors.ErrMetadataUnavailable,
			"cannot read sidecar for %s", assetPath)
	}

	// Strict decode: a document of unrecognized keys is junk, not a
	// sidecar, and must not read as default settings.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && err != io.EOF {
		return Sidecar{}, errors.Wrapf(err, errors.ErrMetadataUnavailable,
			"malformed sidecar for %s", assetPath)
	}
	return sc, nil
}

// writeSidecar persists an asset's sidecar atomically
func writeSidecar(assetPath string, sc Sidecar) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMutationFailed,
			"cannot serialize sidecar for %s", assetPath)
	}

	target := SidecarPath(assetPath)
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".meta-*.yaml")
	if err != nil {
		return errors.Wrap(err, errors.ErrMutationFailed, "cannot create temp sidecar")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrMutationFailed, "cannot write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrMutationFailed, "cannot close %s", tmpName)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrMutationFailed, "cannot replace %s", target)
	}
	return nil
}
