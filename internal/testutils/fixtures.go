package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/entities"
)

// Names used by SampleRoster
const (
	SampleCommonRoot   = "Anky"
	SampleCommonRoot2  = "Bary"
	SampleRareRoot     = "Coelo"
	SampleRareHybrid   = "Dracoceratops"
	SampleEpicHybrid   = "Erlidom"
	SampleUnlockedRoot = "Flyer"
)

// Root creates a non-hybrid creature
func Root(name string, rarity entities.Rarity, level, amount int) *entities.Creature {
	return &entities.Creature{
		Name:   name,
		Level:  level,
		Amount: amount,
		Rarity: rarity,
	}
}

// Hybrid creates a creature fused from first and second
func Hybrid(name string, rarity entities.Rarity, level, amount int, first, second string) *entities.Creature {
	c := Root(name, rarity, level, amount)
	c.Parents = &entities.Parents{First: first, Second: second}
	return c
}

// NewTestRoster builds a roster and fails the test on error
func NewTestRoster(t *testing.T, creatures ...*entities.Creature) *entities.Roster {
	t.Helper()
	roster, err := entities.NewRoster(creatures...)
	require.NoError(t, err, "failed to build roster")
	return roster
}

// NewTestIndex builds an ancestry index and fails the test on error
func NewTestIndex(t *testing.T, roster *entities.Roster) *ancestry.Index {
	t.Helper()
	idx, err := ancestry.NewIndex(roster)
	require.NoError(t, err, "failed to build ancestry index")
	return idx
}

// SampleCreatures returns a small two-generation roster:
//
//	Dracoceratops (R) = Anky (C) + Bary (C)
//	Erlidom (E)       = Dracoceratops (R) + Coelo (R)
//
// Flyer is an unrelated unlocked root.
func SampleCreatures() []*entities.Creature {
	return []*entities.Creature{
		Root(SampleCommonRoot, entities.RarityCommon, 8, 300),
		Root(SampleCommonRoot2, entities.RarityCommon, 3, 40),
		Root(SampleRareRoot, entities.RarityRare, 7, 120),
		Root(SampleUnlockedRoot, entities.RarityEpic, 14, 900),
		Hybrid(SampleRareHybrid, entities.RarityRare, 5, 20, SampleCommonRoot, SampleCommonRoot2),
		Hybrid(SampleEpicHybrid, entities.RarityEpic, 10, 0, SampleRareHybrid, SampleRareRoot),
	}
}

// SampleWishlist is the wishlist that goes with SampleCreatures
func SampleWishlist() []string {
	return []string{SampleEpicHybrid, SampleRareHybrid}
}

// SampleRoster builds SampleCreatures into a roster
func SampleRoster(t *testing.T) *entities.Roster {
	t.Helper()
	return NewTestRoster(t, SampleCreatures()...)
}
