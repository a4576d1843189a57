// Package engine computes how much root DNA a wishlist still needs.
//
// An engine instance owns shadow copies of every creature's level and amount.
// Processing a wishlist entry reserves DNA in that shadow state, so a later
// entry sharing an ancestor does not claim the same owned DNA twice. The
// shadow state makes an engine single-pass: once Compute finishes, the engine
// refuses further work until Reset.
//
// Engines are not safe for concurrent use.
package engine

import (
	"github.com/KirkDiggler/dna-planner/internal/entities"
)

// Engine computes DNA requirements over a roster
type Engine interface {
	// RequirementFor walks name's ancestry and returns the DNA still needed
	// from each root to bring name to targetLevel with extra DNA on top.
	// It reserves the DNA it accounts for.
	RequirementFor(name string, targetLevel, extra int) (entities.Requirements, error)

	// Compute processes the wishlist in name order and finalizes the engine
	Compute(wishlist []string) (*Result, error)

	// DetermineAllNeededDNA returns the merged per-root totals of Compute
	DetermineAllNeededDNA(wishlist []string) (entities.Requirements, error)

	// Close finalizes the engine without computing
	Close()

	// Reset discards shadow state, re-reads the roster and reopens the engine
	Reset()

	// Closed reports whether the engine needs a Reset before more work
	Closed() bool
}

// Result is the outcome of one pass over a wishlist
type Result struct {
	// Wishlist is the de-duplicated wishlist in processing order
	Wishlist []string

	// Total is the merged root requirement across the wishlist
	Total entities.Requirements

	// ByEntry holds what each wishlist entry added to Total. Entries processed
	// later see DNA already reserved by earlier ones.
	ByEntry map[string]entities.Requirements
}

// ParentLevel selects the level a parent must reach before it is fused
type ParentLevel int

const (
	// ParentLevelOwn levels a parent only to its own activation level
	ParentLevelOwn ParentLevel = iota

	// ParentLevelChild levels a parent to the child's activation level, as
	// the game requires before a fuse is allowed
	ParentLevelChild
)

// ParseParentLevel maps the config value to a ParentLevel
func ParseParentLevel(s string) (ParentLevel, bool) {
	switch s {
	case "", "own":
		return ParentLevelOwn, true
	case "child":
		return ParentLevelChild, true
	default:
		return ParentLevelOwn, false
	}
}

func (p ParentLevel) String() string {
	if p == ParentLevelChild {
		return "child"
	}
	return "own"
}
