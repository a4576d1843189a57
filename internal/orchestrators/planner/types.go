package planner

import (
	"github.com/KirkDiggler/dna-planner/internal/analysis"
	"github.com/KirkDiggler/dna-planner/internal/engine"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
)

// AnalyzeInput defines the request for a full planning pass
type AnalyzeInput struct {
	// Wishlist replaces the stored wishlist when set
	Wishlist []string
}

// AnalyzeOutput defines the response for a full planning pass
type AnalyzeOutput struct {
	Roster   *entities.Roster
	Result   *engine.Result
	Tags     map[string]analysis.Tag
	Deficits []analysis.TierDeficits
	Limiting []analysis.TierLimitingFactors
	Shared   []analysis.SharedRoot
}

// UpdateOrderInput defines the request for the roster walk order
type UpdateOrderInput struct{}

// UpdateOrderOutput defines the response for the roster walk order
type UpdateOrderOutput struct {
	Roster *entities.Roster
	Order  []string
}

// UnlockInput defines the request for marking a wishlist creature unlocked
type UnlockInput struct {
	Name string
}

// UnlockOutput defines the response for marking a wishlist creature unlocked
type UnlockOutput struct {
	// Removed lists creatures dropped from the roster, in removal order
	Removed []string

	// Archived counts history amounts hidden for the removed creatures
	Archived int

	Wishlist []string
}

// UpdateCreatureInput defines the request for recording in-game values.
// Nil fields are left unchanged.
type UpdateCreatureInput struct {
	Name   string
	Level  *int
	Amount *int
}

// UpdateCreatureOutput defines the response for recording in-game values
type UpdateCreatureOutput struct {
	Creature *entities.Creature
}

// WishInput defines the request for adding a creature to the wishlist
type WishInput struct {
	Name string

	// Rarity, Level and Amount describe a creature not yet on the roster
	Rarity entities.Rarity
	Level  int
	Amount int

	// Parents records the recipe of a hybrid; both must already be on the roster
	Parents *entities.Parents
}

// WishOutput defines the response for adding a creature to the wishlist
type WishOutput struct {
	Creature *entities.Creature

	// Added is true when the creature was new to the roster
	Added bool

	Wishlist []string
}

// RecordHistoryInput defines the request for recording today's deficits
type RecordHistoryInput struct{}

// RecordHistoryOutput defines the response for recording today's deficits
type RecordHistoryOutput struct {
	Snapshot *entities.Snapshot

	// Recorded is the number of amounts the store wrote
	Recorded int
}

// HistoryInput selects whose history to return. Set exactly one of Name or
// Rarity.
type HistoryInput struct {
	Name string

	// Roots switches Name to the root ancestors of Name
	Roots bool

	// Rarity selects every root creature of the tier
	Rarity *entities.Rarity
}

// HistoryOutput defines the response for a history query
type HistoryOutput struct {
	// Names is the sorted selection that has recorded history
	Names  []string
	Series map[string][]entities.Point

	// Trends holds a projection for names with enough history
	Trends map[string]*analysis.Trend
}


// CopyHistoryInput defines the request for moving history to another store
type CopyHistoryInput struct {
	// Target must not hold any history yet
	Target history.Repository
}

// CopyHistoryOutput defines the response for moving history to another store
type CopyHistoryOutput struct {
	Snapshots int
	Amounts   int
}
