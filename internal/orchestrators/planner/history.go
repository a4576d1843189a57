package planner

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/dna-planner/internal/analysis"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/pkg/clock"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
)

// RecordHistory stores today's deficit for every root the wishlist reaches.
// Roots that need nothing are stored as zero so a cleared deficit shows up.
func (o *orchestrator) RecordHistory(ctx context.Context, input *RecordHistoryInput) (*RecordHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	loaded, idx, err := o.load(ctx)
	if err != nil {
		return nil, err
	}
	result, err := o.compute(loaded.Roster, idx, loaded.Wishlist)
	if err != nil {
		return nil, err
	}

	amounts := make(map[string]int)
	for _, name := range loaded.Wishlist {
		roots, err := idx.Roots(name)
		if err != nil {
			return nil, err
		}
		for _, root := range roots {
			amounts[root] = result.Total.Get(root)
		}
	}

	snapshot := &entities.Snapshot{
		TakenAt: clock.Today(o.clock),
		Amounts: amounts,
	}
	out, err := o.historyRepo.Append(ctx, &history.AppendInput{Snapshot: snapshot})
	if err != nil {
		return nil, errors.Wrap(err, "failed to append history")
	}

	o.observe(loaded.Roster, result.Total, loaded.Wishlist)

	slog.Info("History recorded",
		"date", snapshot.TakenAt.Format("2006-01-02"),
		"roots", len(amounts),
		"recorded", out.Recorded)

	return &RecordHistoryOutput{
		Snapshot: snapshot,
		Recorded: out.Recorded,
	}, nil
}

func (o *orchestrator) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if (input.Name == "") == (input.Rarity == nil) {
		return nil, errors.InvalidArgument("set exactly one of name or rarity")
	}
	if input.Rarity != nil && !input.Rarity.Valid() {
		return nil, errors.InvalidArgumentf("unknown rarity rank %d", int(*input.Rarity))
	}

	loaded, idx, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	switch {
	case input.Rarity != nil:
		for _, c := range loaded.Roster.Creatures() {
			if !idx.IsHybrid(c.Name) && c.Rarity == *input.Rarity {
				names = append(names, c.Name)
			}
		}
	case input.Roots:
		if names, err = idx.Roots(input.Name); err != nil {
			return nil, err
		}
	default:
		if _, err := loaded.Roster.Get(input.Name); err != nil {
			return nil, err
		}
		names = []string{input.Name}
	}

	out := &HistoryOutput{
		Series: make(map[string][]entities.Point),
		Trends: make(map[string]*analysis.Trend),
	}
	if len(names) == 0 {
		return out, nil
	}

	listed, err := o.historyRepo.List(ctx, &history.ListInput{Names: names})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history")
	}
	series := entities.Series(listed.Snapshots)

	for _, name := range names {
		points, ok := series[name]
		if !ok {
			continue
		}
		out.Names = append(out.Names, name)
		out.Series[name] = points

		trend, err := analysis.ProjectTrend(name, points)
		if err != nil {
			if errors.IsFailedPrecondition(err) {
				continue
			}
			return nil, err
		}
		out.Trends[name] = trend
	}

	return out, nil
}

// CopyHistory replays every visible snapshot into an empty target store.
// Archived amounts are not copied.
func (o *orchestrator) CopyHistory(ctx context.Context, input *CopyHistoryInput) (*CopyHistoryOutput, error) {
	if input == nil || input.Target == nil {
		return nil, errors.InvalidArgument("target store is required")
	}

	existing, err := input.Target.List(ctx, &history.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read target history")
	}
	if n := len(existing.Snapshots); n > 0 {
		return nil, errors.FailedPreconditionf("target already holds %d snapshots", n)
	}

	source, err := o.historyRepo.List(ctx, &history.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history")
	}

	out := &CopyHistoryOutput{}
	for _, snap := range source.Snapshots {
		appended, err := input.Target.Append(ctx, &history.AppendInput{Snapshot: &entities.Snapshot{
			TakenAt: snap.TakenAt,
			Amounts: snap.Amounts,
		}})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to copy snapshot from %s", snap.TakenAt.Format("2006-01-02"))
		}
		out.Snapshots++
		out.Amounts += appended.Recorded
	}

	slog.Info("History copied",
		"snapshots", out.Snapshots,
		"amounts", out.Amounts)

	return out, nil
}
