package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeCreature is the core.Entity type of every roster creature
const EntityTypeCreature = "creature"

// Parents names the two creatures fused to make a hybrid
type Parents struct {
	First  string
	Second string
}

// Names returns both parent names in recipe order
func (p Parents) Names() [2]string {
	return [2]string{p.First, p.Second}
}

// Creature is one roster entry: what the player owns of a creature
type Creature struct {
	Name   string
	Level  int
	Amount int
	Rarity Rarity

	// Parents is nil for root (non-hybrid) creatures
	Parents *Parents
}

var _ core.Entity = (*Creature)(nil)

// GetID returns the creature's name, which is unique within a roster
func (c *Creature) GetID() string {
	return c.Name
}

// GetType returns the entity type for rpg-toolkit
func (c *Creature) GetType() string {
	return EntityTypeCreature
}

// IsHybrid reports whether the creature is made by fusing two parents
func (c *Creature) IsHybrid() bool {
	return c.Parents != nil
}

// ActivationLevel is the level the creature sits at while locked
func (c *Creature) ActivationLevel() int {
	return c.Rarity.ActivationLevel()
}

// ActivationAmount is the DNA needed to unlock the creature
func (c *Creature) ActivationAmount() int {
	return c.Rarity.ActivationAmount()
}

// DNAForOneLevel returns the DNA spent leveling from level to level+1
func (c *Creature) DNAForOneLevel(level int) int {
	return c.Rarity.DNAForOneLevel(level)
}

// DNAToLevel sums the leveling cost over [start, end)
func (c *Creature) DNAToLevel(start, end int) int {
	return c.Rarity.DNAToLevel(start, end)
}

// Clone returns a deep copy
func (c *Creature) Clone() *Creature {
	out := *c
	if c.Parents != nil {
		p := *c.Parents
		out.Parents = &p
	}
	return &out
}

// Recipe is one parsed recipe line: child made from two parents
type Recipe struct {
	Child  string
	First  string
	Second string
}
