// Package rules defines the user-authored import rules for assetrules.
//
// A rule is a named, enableable bundle of filter predicates and override
// values. Two concrete rule shapes exist, one per asset family:
//
//   - ModelRule filters on source file kind and mesh kind and overrides
//     import scale, lightmap UV generation, mesh compression, and the
//     import toggles.
//   - TextureRule filters on texture kind and alpha presence and overrides
//     color space, mip maps, readability, and the per-platform encode
//     settings (max size, compression format, quality, crunch).
//
// Every override field is wrapped in an override.Value, so a freshly
// constructed rule changes nothing until the user sets a field. Filters
// combine with logical AND; the wildcard value for a dimension is always
// satisfied, and a rule's "apply to all types" flag short-circuits the
// classification dimension regardless of its stored value.
//
// # Precedence
//
// A RuleSet is an ordered list per rule kind. Order is application order:
// when several enabled rules match the same asset, later rules overwrite
// earlier ones' fields, last write wins per field.
//
// # Schemas
//
// The generic engine in pkg/engine is driven by field tables built here.
// ModelSchema and TextureSchema describe every resolvable setting as data
// (name, current-value accessor, proposed-value function), which is the
// single place the override semantics of each field live.
package rules
