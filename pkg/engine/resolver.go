package engine

// Resolve computes the delta one matched rule contributes for one asset.
//
// Fields are visited in schema order. For each field whose override is set
// and applicable, the proposed value is compared against the accumulated
// delta's value when present, otherwise against the current settings, using
// value equality. Equal values are skipped, which makes reapplying an
// already-satisfied rule report no change.
func Resolve[R Rule, S any](schema *Schema[R, S], rule R, settings *S, acc Delta, ctx *ResolveContext) (Delta, bool) {
	delta := make(Delta)
	changed := false

	for _, field := range schema.Fields {
		current := field.Current(settings)
		if prior, ok := acc[field.Name]; ok {
			current = prior
		}

		proposed, ok := field.Proposed(rule, current, ctx)
		if !ok {
			continue
		}
		if proposed == current {
			continue
		}

		delta[field.Name] = proposed
		changed = true
	}

	return delta, changed
}
