// Package ancestry indexes the hybrid -> parents relation of a roster and
// answers ancestor queries over it.
package ancestry

import (
	"sort"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Index is a read-only view of who was fused from whom.
// Build a new Index after the roster's recipes change.
type Index struct {
	roster   *entities.Roster
	parents  map[string]entities.Parents
	children map[string][]string
}

// NewIndex builds the index from the parents recorded on each creature.
// Every parent must exist in the roster, the graph must be acyclic and no
// parent may be rarer than its child. A loop is reported as CyclicAncestry
// even when its members also break the rarity rule.
func NewIndex(roster *entities.Roster) (*Index, error) {
	if roster == nil {
		return nil, errors.InvalidArgument("roster is required")
	}

	idx := &Index{
		roster:   roster,
		parents:  make(map[string]entities.Parents),
		children: make(map[string][]string),
	}

	var hybrids []*entities.Creature
	for _, c := range roster.Creatures() {
		if !c.IsHybrid() {
			continue
		}
		if c.Parents.First == c.Parents.Second {
			return nil, errors.InvalidArgumentf("%s cannot be fused from %s twice", c.Name, c.Parents.First)
		}
		for _, parentName := range c.Parents.Names() {
			if _, err := roster.Get(parentName); err != nil {
				return nil, errors.Wrapf(err, "parent of %s", c.Name)
			}
			idx.children[parentName] = appendUnique(idx.children[parentName], c.Name)
		}
		idx.parents[c.Name] = *c.Parents
		hybrids = append(hybrids, c)
	}

	for name := range idx.children {
		sort.Strings(idx.children[name])
	}

	if err := idx.Validate(); err != nil {
		return nil, err
	}

	for _, c := range hybrids {
		for _, parentName := range c.Parents.Names() {
			parent, _ := roster.Get(parentName)
			if parent.Rarity > c.Rarity {
				return nil, errors.InvalidArgumentf("%s (%s) cannot be fused from rarer parent %s (%s)",
					c.Name, c.Rarity, parent.Name, parent.Rarity)
			}
		}
	}

	return idx, nil
}

// Parents returns the recipe parents of name and whether it is a hybrid
func (i *Index) Parents(name string) (entities.Parents, bool) {
	p, ok := i.parents[name]
	return p, ok
}

// IsHybrid reports whether name has recorded parents
func (i *Index) IsHybrid(name string) bool {
	_, ok := i.parents[name]
	return ok
}

// Children returns the hybrids that use name as a parent, sorted
func (i *Index) Children(name string) []string {
	return append([]string(nil), i.children[name]...)
}

// Hybrids returns every hybrid name, sorted
func (i *Index) Hybrids() []string {
	names := make([]string, 0, len(i.parents))
	for name := range i.parents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Roots returns the root (non-hybrid) ancestors of name, sorted.
// A root creature is its own single root.
func (i *Index) Roots(name string) ([]string, error) {
	var roots []string
	err := i.walk(name, func(n string, hybrid bool) {
		if !hybrid {
			roots = append(roots, n)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(roots)
	return roots, nil
}

// Validate checks the whole graph for cycles
func (i *Index) Validate() error {
	state := make(map[string]visit)
	for _, name := range i.Hybrids() {
		if err := i.dfs(name, state, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

type visit int

const (
	unvisited visit = iota
	inProgress
	done
)

// walk visits name and each distinct ancestor once, parents before children
func (i *Index) walk(name string, fn func(name string, hybrid bool)) error {
	if !i.roster.Has(name) {
		_, err := i.roster.Get(name)
		return err
	}
	return i.dfs(name, make(map[string]visit), nil, fn)
}

func (i *Index) dfs(name string, state map[string]visit, path []string, fn func(string, bool)) error {
	switch state[name] {
	case done:
		return nil
	case inProgress:
		return errors.CyclicAncestry(cyclePath(path, name))
	}

	state[name] = inProgress
	path = append(path, name)

	parents, hybrid := i.parents[name]
	if hybrid {
		for _, p := range parents.Names() {
			if err := i.dfs(p, state, path, fn); err != nil {
				return err
			}
		}
	}

	state[name] = done
	if fn != nil {
		fn(name, hybrid)
	}
	return nil
}

// cyclePath trims path to the loop that returns to name
func cyclePath(path []string, name string) []string {
	for idx, n := range path {
		if n == name {
			loop := append([]string(nil), path[idx:]...)
			return append(loop, name)
		}
	}
	return append(append([]string(nil), path...), name)
}

func appendUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
