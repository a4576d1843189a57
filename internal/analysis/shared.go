package analysis

import (
	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/entities"
)

// SharedRoot is a root ancestor several wishlist creatures draw DNA from
type SharedRoot struct {
	Root   string
	Wanted []string
}

// SharedAncestors lists the roots used by two or more wishlist creatures,
// sorted by root name, each with its wishlist creatures sorted by name.
func SharedAncestors(index *ancestry.Index, wishlist []string) ([]SharedRoot, error) {
	users := entities.Requirements{}
	wanted := make(map[string][]string)
	for _, name := range entities.Wishlist(wishlist) {
		roots, err := index.Roots(name)
		if err != nil {
			return nil, err
		}
		for _, root := range roots {
			users.Add(root, 1)
			wanted[root] = append(wanted[root], name)
		}
	}

	var out []SharedRoot
	for _, root := range users.Names() {
		if users[root] < 2 {
			continue
		}
		out = append(out, SharedRoot{Root: root, Wanted: wanted[root]})
	}
	return out, nil
}
