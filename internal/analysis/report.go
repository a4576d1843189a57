package analysis

import (
	"sort"

	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Deficit is DNA still needed from one root
type Deficit struct {
	Name   string
	Amount int
}

// TierDeficits groups the deficits of one rarity tier
type TierDeficits struct {
	Rarity   entities.Rarity
	Deficits []Deficit
}

// DeficitsByRarity lists positive root deficits per rarity tier in rank
// order, smallest amount first. Tiers with nothing outstanding are left out.
func DeficitsByRarity(roster *entities.Roster, totals entities.Requirements) ([]TierDeficits, error) {
	byTier := make(map[entities.Rarity][]Deficit)
	for _, name := range totals.Names() {
		amount := totals[name]
		if amount <= 0 {
			continue
		}
		c, err := roster.Get(name)
		if err != nil {
			return nil, err
		}
		byTier[c.Rarity] = append(byTier[c.Rarity], Deficit{Name: name, Amount: amount})
	}

	var out []TierDeficits
	for _, rarity := range entities.Rarities {
		deficits := byTier[rarity]
		if len(deficits) == 0 {
			continue
		}
		sort.SliceStable(deficits, func(i, j int) bool {
			return deficits[i].Amount < deficits[j].Amount
		})
		out = append(out, TierDeficits{Rarity: rarity, Deficits: deficits})
	}
	return out, nil
}

// LimitingFactor is the root holding back a wishlist creature the most
type LimitingFactor struct {
	Name   string
	Root   string
	Amount int
}

// TierLimitingFactors groups limiting factors by the wishlist creature's tier
type TierLimitingFactors struct {
	Rarity  entities.Rarity
	Factors []LimitingFactor
}

// LimitingFactors finds, for each wishlist creature, the root ancestor with
// the largest outstanding deficit. Equal deficits go to the first root by
// name. Creatures whose roots need nothing are left out. Results are grouped
// by the wishlist creature's tier and sorted by amount ascending.
func LimitingFactors(
	roster *entities.Roster,
	index *ancestry.Index,
	totals entities.Requirements,
	wishlist []string,
) ([]TierLimitingFactors, error) {
	byTier := make(map[entities.Rarity][]LimitingFactor)
	for _, name := range entities.Wishlist(wishlist) {
		c, err := roster.Get(name)
		if err != nil {
			return nil, errors.Wrap(err, "wishlist")
		}
		roots, err := index.Roots(name)
		if err != nil {
			return nil, err
		}

		factor := LimitingFactor{Name: name}
		for _, root := range roots {
			if amount := totals[root]; amount > factor.Amount {
				factor.Root = root
				factor.Amount = amount
			}
		}
		if factor.Amount == 0 {
			continue
		}
		byTier[c.Rarity] = append(byTier[c.Rarity], factor)
	}

	var out []TierLimitingFactors
	for _, rarity := range entities.Rarities {
		factors := byTier[rarity]
		if len(factors) == 0 {
			continue
		}
		sort.SliceStable(factors, func(i, j int) bool {
			return factors[i].Amount < factors[j].Amount
		})
		out = append(out, TierLimitingFactors{Rarity: rarity, Factors: factors})
	}
	return out, nil
}
