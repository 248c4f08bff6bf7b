// Package testutil provides shared test fakes for the engine's host
// collaborators: an in-memory metadata provider, recording and scripted
// failing mutators, and a static secondary-UV query.
package testutil

import (
	"context"
	"strings"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/engine"
)

// NewModelAsset builds model metadata with default settings
func NewModelAsset(path string, fileKind assets.FileKind, skinned bool) assets.Metadata {
	settings := assets.DefaultModelSettings()
	return assets.Metadata{
		Path:       path,
		Kind:       assets.KindModel,
		FileKind:   fileKind,
		HasSkinned: skinned,
		Model:      &settings,
	}
}

// NewTextureAsset builds texture metadata with default settings
func NewTextureAsset(path string, kind assets.TextureKind, alpha bool) assets.Metadata {
	settings := assets.DefaultTextureSettings()
	return assets.Metadata{
		Path:        path,
		Kind:        assets.KindTexture,
		TextureKind: kind,
		HasAlpha:    alpha,
		Texture:     &settings,
	}
}

// StaticProvider serves a fixed metadata slice, applying the query's
// kind and substring filters like a real provider would
type StaticProvider struct {
	Assets   []assets.Metadata
	Warnings []assets.Warning
	Err      error
}

// List implements assets.Provider
func (p *StaticProvider) List(_ context.Context, q assets.Query) ([]assets.Metadata, []assets.Warning, error) {
	if p.Err != nil {
		return nil, nil, p.Err
	}
	var out []assets.Metadata
	for _, m := range p.Assets {
		if q.Kind != "" && m.Kind != q.Kind {
			continue
		}
		if q.NameContains != "" && !strings.Contains(strings.ToLower(m.Path), strings.ToLower(q.NameContains)) {
			continue
		}
		out = append(out, m)
	}
	return out, p.Warnings, nil
}

// RecordingMutator captures every commit and the batch bracketing so tests
// can assert on ordering and call counts
type RecordingMutator struct {
	Begins  int
	Ends    int
	Commits []RecordedCommit

	// FailPaths lists asset paths whose Commit call returns ErrCommit
	FailPaths map[string]error
}

// RecordedCommit is one captured Commit call
type RecordedCommit struct {
	Path  string
	Delta engine.Delta
}

// BeginBatch implements engine.Mutator
func (m *RecordingMutator) BeginBatch() { m.Begins++ }

// EndBatch implements engine.Mutator
func (m *RecordingMutator) EndBatch() { m.Ends++ }

// Commit implements engine.Mutator
func (m *RecordingMutator) Commit(path string, delta engine.Delta) error {
	if err, ok := m.FailPaths[path]; ok {
		return err
	}
	copied := make(engine.Delta, len(delta))
	for k, v := range delta {
		copied[k] = v
	}
	m.Commits = append(m.Commits, RecordedCommit{Path: path, Delta: copied})
	return nil
}

// CommittedPaths returns the paths of successful commits in order
func (m *RecordingMutator) CommittedPaths() []string {
	out := make([]string, 0, len(m.Commits))
	for _, c := range m.Commits {
		out = append(out, c.Path)
	}
	return out
}

// StaticUVQuery answers HasSecondaryUV from a fixed table; unknown paths
// report false
type StaticUVQuery struct {
	UV2 map[string]bool
}

// HasSecondaryUV implements engine.UVQuery
func (q *StaticUVQuery) HasSecondaryUV(path string) bool {
	return q.UV2[path]
}
