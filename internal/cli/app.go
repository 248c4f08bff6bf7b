package cli

import (
	"context"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/config"
	"github.com/assetpipe/assetrules/pkg/engine"
	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/logging"
	"github.com/assetpipe/assetrules/pkg/metafs"
	"github.com/assetpipe/assetrules/pkg/paths"
	"github.com/assetpipe/assetrules/pkg/rules"
	"github.com/assetpipe/assetrules/pkg/rulestore"
)

// appEnv bundles the per-invocation collaborators every command needs.
type appEnv struct {
	paths *paths.Paths
	cfg   *config.Config
	db    *metafs.DB
}

func newAppEnv(rootDir string) (*appEnv, error) {
	p, err := paths.New(rootDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p.ProjectConfig())
	if err != nil {
		return nil, err
	}
	return &appEnv{
		paths: p,
		cfg:   cfg,
		db:    metafs.New(p.AssetRoot(), cfg.Scan),
	}, nil
}

func (env *appEnv) loadRules() (rules.RuleSet, error) {
	return rulestore.Load(env.paths.RuleSetPath())
}

func (env *appEnv) saveRules(set rules.RuleSet) error {
	return rulestore.Save(env.paths.RuleSetPath(), set)
}

// applyRules runs the full rule set against the asset tree. Model and
// texture rules each apply to their own kind; results are merged.
func applyRules(ctx context.Context, env *appEnv, set rules.RuleSet, dryRun bool) (*engine.BatchResult, []assets.Warning, error) {
	logger := logging.GetLogger("cli.apply")

	if set.EnabledCount() == 0 {
		return nil, nil, errors.New(errors.ErrNoEnabledRules, "no enabled rules to apply")
	}

	total := &engine.BatchResult{}
	var allWarnings []assets.Warning

	if enabledModels(set.Models) > 0 {
		items, warnings, err := env.db.List(ctx, assets.Query{Kind: assets.KindModel})
		if err != nil {
			return nil, nil, err
		}
		allWarnings = append(allWarnings, warnings...)

		app := engine.NewApplicator(rules.ModelSchema(), engine.Options{
			Mutator: env.db,
			UV:      env.db,
			DryRun:  dryRun,
			Logger:  logger,
		})
		result, err := app.Apply(ctx, set.Models, items)
		if err != nil {
			return nil, nil, err
		}
		merge(total, result)
	}

	if enabledTextures(set.Textures) > 0 {
		items, warnings, err := env.db.List(ctx, assets.Query{Kind: assets.KindTexture})
		if err != nil {
			return nil, nil, err
		}
		allWarnings = append(allWarnings, warnings...)

		app := engine.NewApplicator(rules.TextureSchema(), engine.Options{
			Mutator: env.db,
			DryRun:  dryRun,
			Logger:  logger,
		})
		result, err := app.Apply(ctx, set.Textures, items)
		if err != nil {
			return nil, nil, err
		}
		merge(total, result)
	}

	return total, allWarnings, nil
}

func enabledModels(list []rules.ModelRule) int {
	n := 0
	for _, r := range list {
		if r.Enabled {
			n++
		}
	}
	return n
}

func enabledTextures(list []rules.TextureRule) int {
	n := 0
	for _, r := range list {
		if r.Enabled {
			n++
		}
	}
	return n
}

func merge(total *engine.BatchResult, r engine.BatchResult) {
	total.Attempted += r.Attempted
	total.Modified += r.Modified
	total.Failed = append(total.Failed, r.Failed...)
}
