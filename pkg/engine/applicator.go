package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/logging"
)

// Options contains configuration for an Applicator
type Options struct {
	Mutator Mutator
	UV      UVQuery
	DryRun  bool
	Logger  zerolog.Logger
}

// Applicator orchestrates one batch apply: for each asset, evaluate all
// enabled rules in order, merge each match's resolved delta, then commit
// once per asset. Commits are serialized; a per-asset failure is recorded
// and never aborts the remaining batch.
type Applicator[R Rule, S any] struct {
	schema  *Schema[R, S]
	mutator Mutator
	uv      UVQuery
	dryRun  bool
	logger  zerolog.Logger
}

// NewApplicator creates an applicator for one schema
func NewApplicator[R Rule, S any](schema *Schema[R, S], opts Options) *Applicator[R, S] {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("engine.applicator")
	}

	return &Applicator[R, S]{
		schema:  schema,
		mutator: opts.Mutator,
		uv:      opts.UV,
		dryRun:  opts.DryRun,
		logger:  logger,
	}
}

// Apply evaluates the rule set over the assets and commits merged deltas.
//
// Rules keep their caller-supplied order, which is precedence order: later
// matching rules overwrite earlier ones' fields, last write wins per field.
// Assets are processed in caller-supplied order. With no enabled rules the
// call fails fast and touches nothing.
func (a *Applicator[R, S]) Apply(ctx context.Context, rules []R, items []assets.Metadata) (BatchResult, error) {
	var result BatchResult

	enabled := make([]R, 0, len(rules))
	for _, r := range rules {
		if r.IsEnabled() {
			enabled = append(enabled, r)
		}
	}
	if len(enabled) == 0 {
		return result, errors.New(errors.ErrNoEnabledRules, "no enabled rules to apply")
	}

	a.logger.Info().
		Int("rules", len(enabled)).
		Int("assets", len(items)).
		Bool("dry_run", a.dryRun).
		Msg("Starting batch apply")

	a.mutator.BeginBatch()
	defer a.mutator.EndBatch()

	for i := range items {
		meta := &items[i]

		settings := a.schema.Settings(meta)
		if settings == nil {
			// Wrong kind for this schema; the caller's listing was broader
			// than the schema, not an error.
			a.logger.Trace().Str("asset", meta.Path).Msg("Skipping asset of other kind")
			continue
		}
		result.Attempted++

		rctx := &ResolveContext{Meta: meta, UV: a.uv}
		merged := make(Delta)
		for _, rule := range enabled {
			if !rule.Matches(meta) {
				continue
			}
			delta, changed := Resolve(a.schema, rule, settings, merged, rctx)
			if !changed {
				continue
			}
			a.logger.Debug().
				Str("asset", meta.Path).
				Str("rule", rule.RuleName()).
				Int("fields", len(delta)).
				Msg("Rule matched with changes")
			for name, value := range delta {
				merged[name] = value
			}
		}

		if len(merged) == 0 {
			continue
		}

		if a.dryRun {
			result.Modified++
			a.logger.Info().
				Str("asset", meta.Path).
				Int("fields", len(merged)).
				Msg("Dry run - would modify asset")
			continue
		}

		if err := a.mutator.Commit(meta.Path, merged); err != nil {
			wrapped := errors.Wrapf(err, errors.ErrMutationFailed,
				"failed to commit changes to %s", meta.Path)
			result.Failed = append(result.Failed, Failure{Path: meta.Path, Err: wrapped})
			a.logger.Error().
				Err(err).
				Str("asset", meta.Path).
				Msg("Commit failed, continuing with remaining assets")
			continue
		}
		result.Modified++
	}

	a.logger.Info().
		Int("attempted", result.Attempted).
		Int("modified", result.Modified).
		Int("failed", len(result.Failed)).
		Msg("Batch apply completed")

	return result, nil
}
