package planner

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
	"github.com/KirkDiggler/dna-planner/internal/repositories/roster"
)

func (o *orchestrator) Unlock(ctx context.Context, input *UnlockInput) (*UnlockOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	loaded, err := o.rosterRepo.Load(ctx, &roster.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}
	if _, err := loaded.Roster.Get(input.Name); err != nil {
		return nil, err
	}

	wishlist, found := without(loaded.Wishlist, input.Name)
	if !found {
		return nil, errors.FailedPreconditionf("%s is not on the wishlist", input.Name)
	}

	idx, err := ancestry.NewIndex(loaded.Roster)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(wishlist))
	for _, name := range wishlist {
		wanted[name] = true
	}
	var removed []string
	if err := release(loaded.Roster, idx, input.Name, wanted, &removed); err != nil {
		return nil, err
	}

	if _, err := o.rosterRepo.Save(ctx, &roster.SaveInput{Roster: loaded.Roster, Wishlist: wishlist}); err != nil {
		return nil, errors.Wrap(err, "failed to save roster")
	}

	archived := 0
	for _, name := range removed {
		out, err := o.historyRepo.Archive(ctx, &history.ArchiveInput{Name: name})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to archive history for %s", name)
		}
		archived += out.Archived
	}

	slog.Info("Creature unlocked",
		"creature", input.Name,
		"removed", removed,
		"archived", archived)

	return &UnlockOutput{
		Removed:  removed,
		Archived: archived,
		Wishlist: wishlist,
	}, nil
}

// release drops name from the roster once no remaining hybrid is fused from
// it and it is not wanted, then does the same for its parents. idx is the
// graph from before any removal.
func release(r *entities.Roster, idx *ancestry.Index, name string, wanted map[string]bool, removed *[]string) error {
	if wanted[name] || !r.Has(name) {
		return nil
	}
	for _, child := range idx.Children(name) {
		if r.Has(child) {
			return nil
		}
	}

	if err := r.Remove(name); err != nil {
		return err
	}
	*removed = append(*removed, name)

	parents, hybrid := idx.Parents(name)
	if !hybrid {
		return nil
	}
	for _, parent := range parents.Names() {
		if err := release(r, idx, parent, wanted, removed); err != nil {
			return err
		}
	}
	return nil
}

func without(list []string, name string) ([]string, bool) {
	out := make([]string, 0, len(list))
	found := false
	for _, n := range list {
		if n == name {
			found = true
			continue
		}
		out = append(out, n)
	}
	return out, found
}

func (o *orchestrator) UpdateCreature(ctx context.Context, input *UpdateCreatureInput) (*UpdateCreatureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if input.Level == nil && input.Amount == nil {
		vb.Field("level", "level or amount is required")
	}
	if input.Level != nil {
		errors.ValidateNonNegative("level", *input.Level, vb)
	}
	if input.Amount != nil {
		errors.ValidateNonNegative("amount", *input.Amount, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	loaded, err := o.rosterRepo.Load(ctx, &roster.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}
	c, err := loaded.Roster.Get(input.Name)
	if err != nil {
		return nil, err
	}

	if input.Level != nil {
		c.Level = *input.Level
	}
	if input.Amount != nil {
		c.Amount = *input.Amount
	}

	if _, err := o.rosterRepo.Save(ctx, &roster.SaveInput{Roster: loaded.Roster, Wishlist: loaded.Wishlist}); err != nil {
		return nil, errors.Wrap(err, "failed to save roster")
	}

	slog.Info("Creature updated",
		"creature", c.Name,
		"level", c.Level,
		"amount", c.Amount)

	return &UpdateCreatureOutput{Creature: c.Clone()}, nil
}

func (o *orchestrator) Wish(ctx context.Context, input *WishInput) (*WishOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateNonNegative("level", input.Level, vb)
	errors.ValidateNonNegative("amount", input.Amount, vb)
	if !input.Rarity.Valid() {
		vb.Fieldf("rarity", "unknown rank %d", int(input.Rarity))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	loaded, err := o.rosterRepo.Load(ctx, &roster.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}
	r := loaded.Roster

	added := false
	c, err := r.Get(input.Name)
	if err != nil {
		if !errors.IsMissingCreature(err) {
			return nil, err
		}
		c = &entities.Creature{
			Name:   input.Name,
			Level:  input.Level,
			Amount: input.Amount,
			Rarity: input.Rarity,
		}
		// A locked creature sits at its activation level
		if c.Level == 0 {
			c.Level = c.ActivationLevel()
		}
		if err := r.Add(c); err != nil {
			return nil, err
		}
		added = true
	}

	if input.Parents != nil {
		switch {
		case c.Parents == nil:
			recipe := entities.Recipe{Child: c.Name, First: input.Parents.First, Second: input.Parents.Second}
			if err := r.ApplyRecipes([]entities.Recipe{recipe}); err != nil {
				return nil, err
			}
		case *c.Parents != *input.Parents:
			return nil, errors.FailedPreconditionf("%s is already fused from %s and %s",
				c.Name, c.Parents.First, c.Parents.Second)
		}
	}

	idx, err := ancestry.NewIndex(r)
	if err != nil {
		return nil, err
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	wishlist := entities.Wishlist(append(append([]string(nil), loaded.Wishlist...), c.Name))
	if _, err := o.rosterRepo.Save(ctx, &roster.SaveInput{Roster: r, Wishlist: wishlist}); err != nil {
		return nil, errors.Wrap(err, "failed to save roster")
	}

	slog.Info("Creature added to wishlist",
		"creature", c.Name,
		"new", added,
		"hybrid", c.IsHybrid(),
		"wishlist", len(wishlist))

	return &WishOutput{
		Creature: c.Clone(),
		Added:    added,
		Wishlist: wishlist,
	}, nil
}
