package analysis

import (
	"sort"

	"github.com/KirkDiggler/dna-planner/internal/entities"
)

// UpdateOrder returns roster names in the order the game lists them, so
// values can be copied over in one pass:
//
//  1. unlocked creatures, highest level*10+rank first
//  2. locked (wishlist) creatures holding DNA, least DNA left to unlock first
//  3. locked creatures holding no DNA
//
// Ties go by name.
func UpdateOrder(roster *entities.Roster, wishlist []string) []string {
	locked := make(map[string]bool, len(wishlist))
	for _, name := range wishlist {
		locked[name] = true
	}

	type ranked struct {
		name  string
		group int
		key   int
	}

	creatures := roster.Creatures()
	items := make([]ranked, 0, len(creatures))
	for _, c := range creatures {
		switch {
		case !locked[c.Name]:
			items = append(items, ranked{name: c.Name, group: 0, key: -(c.Level*10 + c.Rarity.Rank())})
		case c.Amount > 0:
			items = append(items, ranked{name: c.Name, group: 1, key: c.ActivationAmount() - c.Amount})
		default:
			items = append(items, ranked{name: c.Name, group: 2})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.group != b.group {
			return a.group < b.group
		}
		if a.key != b.key {
			return a.key < b.key
		}
		return a.name < b.name
	})

	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.name
	}
	return out
}
