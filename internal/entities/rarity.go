package entities

import (
	"strings"

	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Rarity is the ordered rarity tier of a creature. Its integer value is the rank.
type Rarity int

// Rarity tiers, lowest first
const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
	RarityUnique
	RarityApex
)

// Rarities lists every tier in rank order
var Rarities = []Rarity{
	RarityCommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityUnique,
	RarityApex,
}

var rarityNames = [...]string{"Common", "Rare", "Epic", "Legendary", "Unique", "Apex"}

// ParseRarity converts the single-letter code used in roster files.
// Unknown letters are an error; there is no default tier.
func ParseRarity(letter string) (Rarity, error) {
	switch strings.TrimSpace(letter) {
	case "C":
		return RarityCommon, nil
	case "R":
		return RarityRare, nil
	case "E":
		return RarityEpic, nil
	case "L":
		return RarityLegendary, nil
	case "U":
		return RarityUnique, nil
	case "A":
		return RarityApex, nil
	default:
		return 0, errors.InvalidRarity(letter)
	}
}

// Rank returns the tier's position, 0 for Common through 5 for Apex
func (r Rarity) Rank() int {
	return int(r)
}

// Valid reports whether r is one of the defined tiers
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityApex
}

// Letter returns the roster file code for the tier
func (r Rarity) Letter() string {
	if !r.Valid() {
		return "?"
	}
	return rarityNames[r][:1]
}

func (r Rarity) String() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rarityNames[r]
}
