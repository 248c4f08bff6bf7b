// Package engine implements the generic rule evaluation and application
// engine: matching rules against asset metadata, resolving override deltas,
// and applying them across an asset collection in one batch.
//
// The engine is parameterized by a rule type R and a settings type S and is
// driven entirely by a Schema: an ordered table of fields that knows how to
// read a setting's current value and compute a rule's proposed value. The
// concrete model and texture schemas live in pkg/rules as data, not code.
package engine

import (
	"github.com/assetpipe/assetrules/pkg/assets"
)

// Rule is the contract a concrete rule type grants the engine. Matches must
// be pure: defined only over the rule's filter fields and the metadata.
type Rule interface {
	RuleName() string
	IsEnabled() bool
	Matches(meta *assets.Metadata) bool
}

// Delta maps setting names to concrete new values for one asset. It never
// contains DontChange entries and does not outlive one apply call.
type Delta map[string]interface{}

// ResolveContext carries the per-asset collaborators a derived field may
// need while computing its proposed value
type ResolveContext struct {
	Meta *assets.Metadata
	UV   UVQuery
}

// HasSecondaryUV answers the lightmap-UV conditional override's question,
// preferring the host query over the metadata snapshot when one is wired
func (c *ResolveContext) HasSecondaryUV() bool {
	if c.UV != nil {
		return c.UV.HasSecondaryUV(c.Meta.Path)
	}
	return c.Meta.HasSecondaryUV
}

// Field describes one resolvable setting within a schema.
//
// Current reads the setting's present value from the settings bag. Proposed
// computes the rule's override for it: the bool reports whether the override
// is set and applicable (qualifiers like the max-size clamp or the custom
// scale selector return false when their condition does not hold). The
// current argument reflects earlier rules' accumulated effect on the same
// asset, so later rules in a pass observe prior rules' writes.
type Field[R Rule, S any] struct {
	Name     string
	Current  func(s *S) interface{}
	Proposed func(r R, current interface{}, ctx *ResolveContext) (interface{}, bool)
}

// Schema binds an asset kind to its ordered field table. Field order is
// fixed and deterministic across runs.
type Schema[R Rule, S any] struct {
	Kind     assets.Kind
	Fields   []Field[R, S]
	Settings func(meta *assets.Metadata) *S
}

// UVQuery is the host capability behind the "generate lightmap UV only if
// the asset lacks a secondary channel" override
type UVQuery interface {
	HasSecondaryUV(path string) bool
}

// Mutator commits resolved deltas back to the host asset database. Commit
// must apply only the fields present in the delta. BeginBatch and EndBatch
// bracket all commits of one apply call so the host can defer expensive
// reimport side effects until the end.
type Mutator interface {
	BeginBatch()
	Commit(path string, delta Delta) error
	EndBatch()
}

// Failure records one asset whose commit failed
type Failure struct {
	Path string
	Err  error
}

// BatchResult is the aggregate outcome of one apply call
type BatchResult struct {
	// Attempted counts assets that were evaluated against the rule set
	Attempted int

	// Modified counts assets whose merged delta was committed successfully
	Modified int

	// Failed collects per-asset commit failures; they never abort the batch
	Failed []Failure
}
