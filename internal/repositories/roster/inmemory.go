package roster

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	roster   *entities.Roster
	wishlist []string
}

// NewInMemory creates a repository seeded with a copy of roster and wishlist.
// A nil roster starts empty.
func NewInMemory(roster *entities.Roster, wishlist []string) *InMemoryRepository {
	if roster == nil {
		roster, _ = entities.NewRoster()
	}
	return &InMemoryRepository{
		roster:   roster.Clone(),
		wishlist: entities.Wishlist(wishlist),
	}
}

// Load returns a copy of the stored roster
func (r *InMemoryRepository) Load(_ context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return &LoadOutput{
		Roster:   r.roster.Clone(),
		Wishlist: append([]string(nil), r.wishlist...),
	}, nil
}

// Save stores a copy of the roster
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Roster == nil {
		return nil, errors.InvalidArgument("roster is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.roster = input.Roster.Clone()
	r.wishlist = entities.Wishlist(input.Wishlist)

	return &SaveOutput{}, nil
}
