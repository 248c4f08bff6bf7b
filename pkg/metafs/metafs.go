// Package metafs is the filesystem-backed asset database: it scans an asset
// root for model and texture files, keeps each asset's import settings in a
// YAML sidecar next to it, and implements the engine's provider, mutator,
// and secondary-UV query contracts.
package metafs

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/config"
	"github.com/assetpipe/assetrules/pkg/engine"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/logging"
)

var (
	_ assets.Provider = (*DB)(nil)
	_ engine.Mutator  = (*DB)(nil)
	_ engine.UVQuery  = (*DB)(nil)
)

// DB is a sidecar-file asset database rooted at one project directory.
// It is the host side of the engine's collaborator contracts.
type DB struct {
	root       string
	classifier *classifier
	logger     zerolog.Logger

	inBatch   bool
	committed int
}

// New creates a DB over the given asset root
func New(root string, scan config.ScanConfig) *DB {
	return &DB{
		root:       root,
		classifier: newClassifier(scan),
		logger:     logging.GetLogger("metafs"),
	}
}

// List implements assets.Provider. It walks the asset root, classifies
// files, and builds a metadata snapshot per asset. Assets whose sidecar
// cannot be read are excluded with a warning, never failing the listing.
func (db *DB) List(ctx context.Context, q assets.Query) ([]assets.Metadata, []assets.Warning, error) {
	var (
		out      []assets.Metadata
		warnings []assets.Warning
	)

	start := db.root
	if q.Scope != "" {
		start = filepath.Join(db.root, q.Scope)
	}

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if loadDirConfig(path).Ignore {
				db.logger.Debug().Str("dir", path).Msg("Skipping ignored directory")
				return filepath.SkipDir
			}
			return nil
		}

		kind, fileKind, texKind, ok := db.classifier.classify(path)
		if !ok {
			return nil
		}

		rel, relErr := filepath.Rel(db.root, path)
		if relErr != nil {
			rel = path
		}

		if q.Kind != "" && kind != q.Kind {
			return nil
		}
		if q.NameContains != "" &&
			!strings.Contains(strings.ToLower(rel), strings.ToLower(q.NameContains)) {
			return nil
		}

		// A directory-level override can force the texture classification.
		if kind == assets.KindTexture {
			if forced := loadDirConfig(filepath.Dir(path)).TextureKind; forced != "" {
				if tk, parseErr := assets.ParseTextureKind(forced); parseErr == nil {
					texKind = tk
				}
			}
		}

		meta, buildErr := db.buildMetadata(path, rel, kind, fileKind, texKind)
		if buildErr != nil {
			warnings = append(warnings, assets.Warning{Path: rel, Err: buildErr})
			db.logger.Warn().Err(buildErr).Str("asset", rel).Msg("Excluding asset with unavailable metadata")
			return nil
		}

		out = append(out, meta)
		return nil
	})
	if err != nil {
		return nil, warnings, errors.Wrapf(err, errors.ErrAssetScan, "failed to scan %s", start)
	}

	db.logger.Info().
		Int("assets", len(out)).
		Int("warnings", len(warnings)).
		Str("scope", q.Scope).
		Msg("Completed asset scan")
	return out, warnings, nil
}

// buildMetadata assembles one asset's snapshot from its sidecar
func (db *DB) buildMetadata(path, rel string, kind assets.Kind, fileKind assets.FileKind, texKind assets.TextureKind) (assets.Metadata, error) {
	sc, err := readSidecar(path)
	if err != nil {
		return assets.Metadata{}, err
	}

	meta := assets.Metadata{
		Path:           rel,
		Kind:           kind,
		FileKind:       fileKind,
		TextureKind:    texKind,
		HasSkinned:     sc.HasSkinned,
		HasAlpha:       sc.HasAlpha,
		HasSecondaryUV: sc.HasSecondaryUV,
		VertexCount:    sc.VertexCount,
		Width:          sc.Width,
		Height:         sc.Height,
	}

	switch kind {
	case assets.KindModel:
		settings := assets.DefaultModelSettings()
		if sc.Model != nil {
			settings = *sc.Model
		}
		meta.Model = &settings
	case assets.KindTexture:
		settings := assets.DefaultTextureSettings()
		if sc.Texture != nil {
			settings = *sc.Texture
			settings.Normalize()
		}
		meta.Texture = &settings
	}

	return meta, nil
}

// BeginBatch implements engine.Mutator
func (db *DB) BeginBatch() {
	db.inBatch = true
	db.committed = 0
	db.logger.Debug().Msg("Begin sidecar batch")
}

// EndBatch implements engine.Mutator. Reimport side effects are deferred to
// this single point, one storm per batch.
func (db *DB) EndBatch() {
	db.inBatch = false
	db.logger.Info().Int("committed", db.committed).Msg("End sidecar batch")
}

// Commit implements engine.Mutator: it applies exactly the fields present
// in the delta to the asset's sidecar settings and rewrites the sidecar.
func (db *DB) Commit(relPath string, delta engine.Delta) error {
	path := filepath.Join(db.root, relPath)

	kind, _, _, ok := db.classifier.classify(path)
	if !ok {
		return errors.Newf(errors.ErrMutationFailed, "%s is not a known asset", relPath)
	}

	sc, err := readSidecar(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMutationFailed, "cannot load sidecar for %s", relPath)
	}

	switch kind {
	case assets.KindModel:
		if sc.Model == nil {
			settings := assets.DefaultModelSettings()
			sc.Model = &settings
		}
		if err := sc.Model.Apply(delta); err != nil {
			return errors.Wrapf(err, errors.ErrMutationFailed, "cannot apply delta to %s", relPath)
		}
	case assets.KindTexture:
		if sc.Texture == nil {
			settings := assets.DefaultTextureSettings()
			sc.Texture = &settings
		}
		if err := sc.Texture.Apply(delta); err != nil {
			return errors.Wrapf(err, errors.ErrMutationFailed, "cannot apply delta to %s", relPath)
		}
	}

	if err := writeSidecar(path, sc); err != nil {
		return err
	}

	db.committed++
	db.logger.Debug().Str("asset", relPath).Int("fields", len(delta)).Msg("Committed sidecar")
	return nil
}

// HasSecondaryUV implements engine.UVQuery from the sidecar's flag
func (db *DB) HasSecondaryUV(relPath string) bool {
	sc, err := readSidecar(filepath.Join(db.root, relPath))
	if err != nil {
		return false
	}
	return sc.HasSecondaryUV
}
