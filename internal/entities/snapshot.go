package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeSnapshot is the core.Entity type of history snapshots
const EntityTypeSnapshot = "snapshot"

// Snapshot is the outstanding DNA per creature recorded on one day
type Snapshot struct {
	ID      string         `json:"id"`
	TakenAt time.Time      `json:"taken_at"`
	Amounts map[string]int `json:"amounts"`
}

var _ core.Entity = (*Snapshot)(nil)

// GetID returns the snapshot ID
func (s *Snapshot) GetID() string {
	return s.ID
}

// GetType returns the entity type for rpg-toolkit
func (s *Snapshot) GetType() string {
	return EntityTypeSnapshot
}

// Point is one value of a creature's history series
type Point struct {
	At     time.Time
	Amount int
}

// Series rebuilds per-creature history from snapshots ordered oldest first.
// A creature keeps its last recorded value on days it was not recorded,
// starting from the first snapshot that mentions it.
func Series(snapshots []*Snapshot) map[string][]Point {
	out := make(map[string][]Point)
	for _, snap := range snapshots {
		for name := range snap.Amounts {
			if _, seen := out[name]; !seen {
				out[name] = []Point{}
			}
		}
		for name, points := range out {
			amount, recorded := snap.Amounts[name]
			if !recorded {
				amount = points[len(points)-1].Amount
			}
			out[name] = append(points, Point{At: snap.TakenAt, Amount: amount})
		}
	}
	return out
}
