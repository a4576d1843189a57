package entities

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// maxSuggestions caps the names offered for an unresolved lookup
const maxSuggestions = 3

// Roster maps creature names to the player's creatures.
// It is the single owner of creature records; nothing else holds global state.
type Roster struct {
	creatures map[string]*Creature
}

// NewRoster builds a roster, rejecting duplicate names and invalid records
func NewRoster(creatures ...*Creature) (*Roster, error) {
	r := &Roster{creatures: make(map[string]*Creature, len(creatures))}
	for _, c := range creatures {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add inserts a new creature
func (r *Roster) Add(c *Creature) error {
	if c == nil {
		return errors.InvalidArgument("creature cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", c.Name, vb)
	errors.ValidateNonNegative("level", c.Level, vb)
	errors.ValidateNonNegative("amount", c.Amount, vb)
	if !c.Rarity.Valid() {
		vb.Fieldf("rarity", "unknown rank %d", int(c.Rarity))
	}
	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "invalid creature %q", c.Name)
	}

	if _, exists := r.creatures[c.Name]; exists {
		return errors.AlreadyExistsf("creature %q already in roster", c.Name)
	}
	r.creatures[c.Name] = c
	return nil
}

// Remove deletes a creature by name
func (r *Roster) Remove(name string) error {
	if _, exists := r.creatures[name]; !exists {
		return r.missing(name)
	}
	delete(r.creatures, name)
	return nil
}

// Get resolves a name. Unknown names are a MissingCreature error carrying
// close matches under the "suggestions" metadata key.
func (r *Roster) Get(name string) (*Creature, error) {
	c, ok := r.creatures[name]
	if !ok {
		return nil, r.missing(name)
	}
	return c, nil
}

// Has reports whether name is in the roster
func (r *Roster) Has(name string) bool {
	_, ok := r.creatures[name]
	return ok
}

// Len returns the number of creatures
func (r *Roster) Len() int {
	return len(r.creatures)
}

// Names returns every creature name in sorted order
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.creatures))
	for name := range r.creatures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Creatures returns every creature ordered by name
func (r *Roster) Creatures() []*Creature {
	out := make([]*Creature, 0, len(r.creatures))
	for _, name := range r.Names() {
		out = append(out, r.creatures[name])
	}
	return out
}

// ApplyRecipes attaches parents to each recipe's child.
// Every name in a recipe must already be in the roster.
func (r *Roster) ApplyRecipes(recipes []Recipe) error {
	for _, recipe := range recipes {
		child, err := r.Get(recipe.Child)
		if err != nil {
			return errors.Wrapf(err, "recipe for %s", recipe.Child)
		}
		if recipe.First == recipe.Second {
			return errors.InvalidArgumentf("recipe for %s uses %s twice", recipe.Child, recipe.First)
		}
		for _, parent := range []string{recipe.First, recipe.Second} {
			if parent == recipe.Child {
				return errors.InvalidArgumentf("creature %q lists itself as a parent", recipe.Child)
			}
			if !r.Has(parent) {
				return errors.Wrapf(r.missing(parent), "recipe for %s", recipe.Child)
			}
		}
		child.Parents = &Parents{First: recipe.First, Second: recipe.Second}
	}
	return nil
}

// Recipes returns the recipe of every hybrid, ordered by child name
func (r *Roster) Recipes() []Recipe {
	var out []Recipe
	for _, c := range r.Creatures() {
		if !c.IsHybrid() {
			continue
		}
		out = append(out, Recipe{Child: c.Name, First: c.Parents.First, Second: c.Parents.Second})
	}
	return out
}

// Clone returns a deep copy so callers can mutate without touching the original
func (r *Roster) Clone() *Roster {
	out := &Roster{creatures: make(map[string]*Creature, len(r.creatures))}
	for name, c := range r.creatures {
		out.creatures[name] = c.Clone()
	}
	return out
}

// Suggest returns up to three roster names close to name, nearest first
func (r *Roster) Suggest(name string) []string {
	type candidate struct {
		name string
		dist int
	}

	query := strings.ToLower(name)
	var found []candidate
	for existing := range r.creatures {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(existing))
		if dist > suggestionLimit(len(existing)) {
			continue
		}
		found = append(found, candidate{name: existing, dist: dist})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist == found[j].dist {
			return found[i].name < found[j].name
		}
		return found[i].dist < found[j].dist
	})

	var out []string
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		out = append(out, found[i].name)
	}
	return out
}

func (r *Roster) missing(name string) *errors.Error {
	err := errors.MissingCreature(name)
	if suggestions := r.Suggest(name); len(suggestions) > 0 {
		err.WithMeta("suggestions", suggestions)
	}
	return err
}

func suggestionLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
