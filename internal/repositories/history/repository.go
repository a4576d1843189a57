// Package history persists dated snapshots of outstanding root DNA.
package history

//go:generate mockgen -destination=mock/mock_repository.go -package=historymock github.com/KirkDiggler/dna-planner/internal/repositories/history Repository

import (
	"context"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Repository defines the storage interface for amount history
type Repository interface {
	// Append records a snapshot after the existing ones
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)

	// List returns snapshots oldest first. Amounts hold what was stored for
	// that day; use entities.Series to carry values forward.
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Archive hides a creature's history from List
	Archive(ctx context.Context, input *ArchiveInput) (*ArchiveOutput, error)
}

// AppendInput defines the request for recording a snapshot.
// Stores that key snapshots by ID fill in an empty ID.
type AppendInput struct {
	Snapshot *entities.Snapshot
}

// AppendOutput defines the response for recording a snapshot
type AppendOutput struct {
	// Recorded is the number of amounts written
	Recorded int
}

// ListInput defines the request for listing history
type ListInput struct {
	// Names limits amounts to these creatures; empty means all
	Names []string
}

// ListOutput defines the response for listing history
type ListOutput struct {
	Snapshots []*entities.Snapshot
}

// ArchiveInput defines the request for archiving a creature's history
type ArchiveInput struct {
	Name string
}

// ArchiveOutput defines the response for archiving a creature's history
type ArchiveOutput struct {
	// Archived is the number of stored amounts hidden
	Archived int
}

func validateAppend(input *AppendInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.InvalidArgument("snapshot is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Snapshot.TakenAt.IsZero() {
		vb.RequiredField("TakenAt")
	}
	for name, amount := range input.Snapshot.Amounts {
		errors.ValidateRequired("Amounts", name, vb)
		errors.ValidateNonNegative("Amounts["+name+"]", amount, vb)
	}
	return vb.Build()
}

func validateArchive(input *ArchiveInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", input.Name, vb)
	return vb.Build()
}

// filterNames drops amounts outside names. Empty names keeps everything.
func filterNames(snapshots []*entities.Snapshot, names []string) []*entities.Snapshot {
	if len(names) == 0 {
		return snapshots
	}
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}
	for _, snap := range snapshots {
		for name := range snap.Amounts {
			if !keep[name] {
				delete(snap.Amounts, name)
			}
		}
	}
	return snapshots
}
