// Package roster persists the player's creatures, recipes and wishlist.
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/dna-planner/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/dna-planner/internal/entities"
)

// Repository defines the storage interface for a roster and its wishlist
type Repository interface {
	// Load reads the roster with recipes applied, plus the wishlist
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Save replaces the stored roster, recipes and wishlist
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)
}

// LoadInput defines the request for loading the roster
type LoadInput struct{}

// LoadOutput defines the response for loading the roster
type LoadOutput struct {
	Roster *entities.Roster

	// Wishlist is de-duplicated and sorted
	Wishlist []string
}

// SaveInput defines the request for saving the roster
type SaveInput struct {
	Roster   *entities.Roster
	Wishlist []string
}

// SaveOutput defines the response for saving the roster
type SaveOutput struct{}
