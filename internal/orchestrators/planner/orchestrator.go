// Package planner runs the planning workflows over the stored roster,
// wishlist and amount history.
package planner

//go:generate mockgen -destination=mock/mock_service.go -package=plannermock github.com/KirkDiggler/dna-planner/internal/orchestrators/planner Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/dna-planner/internal/analysis"
	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/engine"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/metrics"
	"github.com/KirkDiggler/dna-planner/internal/pkg/clock"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
	"github.com/KirkDiggler/dna-planner/internal/repositories/roster"
)

// Service defines the planner workflows
type Service interface {
	// Analyze computes requirements, tags and reports for the wishlist
	Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error)

	// UpdateOrder returns the order to walk the roster when copying values from the game
	UpdateOrder(ctx context.Context, input *UpdateOrderInput) (*UpdateOrderOutput, error)

	// Roster maintenance
	Unlock(ctx context.Context, input *UnlockInput) (*UnlockOutput, error)
	UpdateCreature(ctx context.Context, input *UpdateCreatureInput) (*UpdateCreatureOutput, error)
	Wish(ctx context.Context, input *WishInput) (*WishOutput, error)

	// Amount history
	RecordHistory(ctx context.Context, input *RecordHistoryInput) (*RecordHistoryOutput, error)
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
	CopyHistory(ctx context.Context, input *CopyHistoryInput) (*CopyHistoryOutput, error)
}

// Config holds the dependencies for the planner orchestrator
type Config struct {
	RosterRepo  roster.Repository
	HistoryRepo history.Repository
	Clock       clock.Clock

	// Metrics is optional; nil keeps gauges in memory only
	Metrics metrics.Exporter

	ParentLevel engine.ParentLevel
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RosterRepo == nil {
		vb.RequiredField("RosterRepo")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	rosterRepo  roster.Repository
	historyRepo history.Repository
	clock       clock.Clock
	metrics     metrics.Exporter
	parentLevel engine.ParentLevel
}

// NewOrchestrator creates a new planner orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	exporter := cfg.Metrics
	if exporter == nil {
		exporter = metrics.New(nil)
	}

	return &orchestrator{
		rosterRepo:  cfg.RosterRepo,
		historyRepo: cfg.HistoryRepo,
		clock:       cfg.Clock,
		metrics:     exporter,
		parentLevel: cfg.ParentLevel,
	}, nil
}

func (o *orchestrator) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	loaded, idx, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	wishlist := loaded.Wishlist
	if len(input.Wishlist) > 0 {
		wishlist = entities.Wishlist(input.Wishlist)
	}

	result, err := o.compute(loaded.Roster, idx, wishlist)
	if err != nil {
		return nil, err
	}

	tags, err := analysis.ClassifyTags(loaded.Roster, idx, result.Total, wishlist)
	if err != nil {
		return nil, errors.Wrap(err, "failed to classify tags")
	}
	deficits, err := analysis.DeficitsByRarity(loaded.Roster, result.Total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to group deficits")
	}
	limiting, err := analysis.LimitingFactors(loaded.Roster, idx, result.Total, wishlist)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find limiting factors")
	}
	shared, err := analysis.SharedAncestors(idx, wishlist)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shared ancestors")
	}

	o.observe(loaded.Roster, result.Total, wishlist)

	slog.Info("Planning pass complete",
		"wishlist", len(wishlist),
		"roots_short", len(result.Total.Positive()),
		"total_deficit", result.Total.Total())

	return &AnalyzeOutput{
		Roster:   loaded.Roster,
		Result:   result,
		Tags:     tags,
		Deficits: deficits,
		Limiting: limiting,
		Shared:   shared,
	}, nil
}

func (o *orchestrator) UpdateOrder(ctx context.Context, input *UpdateOrderInput) (*UpdateOrderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	loaded, err := o.rosterRepo.Load(ctx, &roster.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}

	return &UpdateOrderOutput{
		Roster: loaded.Roster,
		Order:  analysis.UpdateOrder(loaded.Roster, loaded.Wishlist),
	}, nil
}

// load reads the roster and indexes its recipes
func (o *orchestrator) load(ctx context.Context) (*roster.LoadOutput, *ancestry.Index, error) {
	loaded, err := o.rosterRepo.Load(ctx, &roster.LoadInput{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load roster")
	}
	idx, err := ancestry.NewIndex(loaded.Roster)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to index recipes")
	}
	return loaded, idx, nil
}

// compute runs a fresh single-pass engine over the wishlist
func (o *orchestrator) compute(r *entities.Roster, idx *ancestry.Index, wishlist []string) (*engine.Result, error) {
	eng, err := engine.New(&engine.Config{
		Roster:      r,
		Index:       idx,
		ParentLevel: o.parentLevel,
	})
	if err != nil {
		return nil, err
	}
	return eng.Compute(wishlist)
}

// observe exports gauges. Metric failures never fail a workflow.
func (o *orchestrator) observe(r *entities.Roster, totals entities.Requirements, wishlist []string) {
	err := o.metrics.Observe(&metrics.Observation{
		Roster:   r,
		Totals:   totals,
		Wishlist: wishlist,
		At:       o.clock.Now(),
	})
	if err == nil {
		err = o.metrics.Flush()
	}
	if err != nil {
		slog.Warn("Failed to export metrics", "error", err)
	}
}
