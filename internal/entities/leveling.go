package entities

import (
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

const (
	// DNAPerFuse is the child DNA produced by one fuse
	DNAPerFuse = 20

	// levelsPerRarity is how far apart consecutive tiers' activation levels are
	levelsPerRarity = 5
)

// ActivationLevel is the level a creature of this tier sits at while locked.
// Leveling once from here unlocks it.
func (r Rarity) ActivationLevel() int {
	return levelsPerRarity * r.Rank()
}

// ActivationAmount is the DNA needed to unlock a creature of this tier
func (r Rarity) ActivationAmount() int {
	return 50 * (r.Rank() + 1)
}

// DNAForOneLevel returns the DNA spent leveling from level to level+1.
//
// The curve is piecewise in the distance from the activation level and
// scales by ten every ten levels past the tabulated range.
func (r Rarity) DNAForOneLevel(level int) int {
	diff := level - r.ActivationLevel()
	switch {
	case diff == 0:
		return r.ActivationAmount()
	case diff < 8:
		return 50*diff + 50
	case diff < 9:
		return 100*diff - 300
	case diff < 13:
		return 250*diff - 1500
	case diff < 17:
		return 500*diff - 4500
	default:
		return 10 * r.DNAForOneLevel(level-10)
	}
}

// DNAToLevel sums DNAForOneLevel over [start, end).
// Levels below the activation level do not exist, so start is raised to it.
func (r Rarity) DNAToLevel(start, end int) int {
	if activation := r.ActivationLevel(); start < activation {
		start = activation
	}
	total := 0
	for level := start; level < end; level++ {
		total += r.DNAForOneLevel(level)
	}
	return total
}

// FuseCost returns the parent DNA spent on one fuse of a child.
// A parent may not be rarer than its child.
func FuseCost(child, parent Rarity) (int, error) {
	diff := child.Rank() - parent.Rank()
	if diff < 0 {
		return 0, errors.InvalidArgumentf("parent rarity %s exceeds child rarity %s", parent, child)
	}

	base := 2
	if diff%2 == 1 {
		base = 5
	}
	cost := 10 * base
	for i := 0; i < diff/2; i++ {
		cost *= 10
	}
	return cost, nil
}

// ParentAmount returns the parent DNA needed to produce childDeficit units of
// child DNA. Partial fuses cost a whole fuse.
func ParentAmount(child, parent Rarity, childDeficit int) (int, error) {
	cost, err := FuseCost(child, parent)
	if err != nil {
		return 0, err
	}
	if childDeficit <= 0 {
		return 0, nil
	}
	fuses := (childDeficit + DNAPerFuse - 1) / DNAPerFuse
	return cost * fuses, nil
}
