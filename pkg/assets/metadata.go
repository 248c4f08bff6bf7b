package assets

import "context"

// Metadata is a read-only, per-run snapshot of one asset: its identity,
// classification, the boolean flags the rule filters consult, and its
// current import settings. It is rebuilt on every refresh and never
// persisted by the engine.
type Metadata struct {
	// Path identifies the asset within the project
	Path string

	// Kind selects which settings bag and rule family apply
	Kind Kind

	// Classification computed once at metadata-build time
	FileKind    FileKind
	TextureKind TextureKind

	// Boolean flags consulted by rule filters
	HasSkinned     bool
	HasAlpha       bool
	HasSecondaryUV bool

	// Display-only stats, never matched against
	VertexCount int
	Width       int
	Height      int

	// Current settings; exactly one of these is non-nil, per Kind
	Model   *ModelSettings
	Texture *TextureSettings
}

// Query scopes a metadata listing
type Query struct {
	// Kind restricts the listing to one asset family; empty means both
	Kind Kind

	// Scope restricts the listing to a subdirectory of the asset root
	Scope string

	// NameContains filters by a case-insensitive path substring
	NameContains string
}

// Warning records an asset that was excluded from the working set because
// its metadata could not be built. Warnings are not fatal to a listing.
type Warning struct {
	Path string
	Err  error
}

// Provider supplies asset metadata snapshots. Implementations live on the
// host side of the boundary; the engine only consumes the result.
type Provider interface {
	List(ctx context.Context, q Query) ([]Metadata, []Warning, error)
}
