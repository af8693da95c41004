package app

import (
	"context"
	"fmt"
	"pig-logistics-sim/internal/adapters/environment"
	"pig-logistics-sim/internal/adapters/export"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/domain"
	"pig-logistics-sim/internal/ports"
	"pig-logistics-sim/internal/services"
)

// Outcome is a finished run in every form its consumers need.
type Outcome struct {
	Result   *services.Result
	Summary  services.Summary
	Document export.Document
	Record   *domain.RunRecord
}

// Runner composes one simulation end to end: environment, simulation,
// summary, export document and, when Repo is set, persistence.
type Runner struct {
	Repo ports.RunRepository
}

// Source picks the environment for params: the seed file when one is
// configured, otherwise the random generator.
func Source(params config.Params, model domain.GrowthModel) ports.EnvironmentSource {
	if params.World.SeedFile != "" {
		return environment.NewJSONSource(params.World.SeedFile, model, params.Seed)
	}
	return environment.NewRandomSource(params.World, model, params.Seed)
}

func (r *Runner) Run(ctx context.Context, params config.Params) (*Outcome, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	model, err := params.GrowthModel()
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	env, err := Source(params, model).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	res, err := services.NewSimulator(params, model).Run(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	summary := services.Summarize(res)
	doc := export.Build(res, summary)

	rec, err := export.Record(res, summary, doc)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	if r.Repo != nil {
		if err := r.Repo.SaveRun(ctx, rec); err != nil {
			return nil, fmt.Errorf("run: %w", err)
		}
	}

	return &Outcome{Result: res, Summary: summary, Document: doc, Record: rec}, nil
}
