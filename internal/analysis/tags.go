package analysis

import (
	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Tag labels an owned creature by whether its DNA is secured
type Tag string

const (
	// TagSatisfied means the creature has enough DNA for all its hybrid children
	TagSatisfied Tag = "satisfied"

	// TagDeficient means at least one root in its lineage still needs DNA
	TagDeficient Tag = "deficient"
)

// ClassifyTags labels every creature not on the wishlist.
//
// A root is satisfied when totals holds no positive amount for it. A hybrid is
// satisfied when it needs nothing itself and both parents are satisfied.
func ClassifyTags(
	roster *entities.Roster,
	index *ancestry.Index,
	totals entities.Requirements,
	wishlist []string,
) (map[string]Tag, error) {
	wanted := make(map[string]bool, len(wishlist))
	for _, name := range wishlist {
		if !roster.Has(name) {
			_, err := roster.Get(name)
			return nil, errors.Wrap(err, "wishlist")
		}
		wanted[name] = true
	}

	c := &classifier{
		index:  index,
		totals: totals,
		tags:   make(map[string]Tag, roster.Len()),
		state:  make(map[string]int, roster.Len()),
	}

	out := make(map[string]Tag)
	for _, name := range roster.Names() {
		if wanted[name] {
			continue
		}
		tag, err := c.classify(name, nil)
		if err != nil {
			return nil, err
		}
		out[name] = tag
	}
	return out, nil
}

const (
	grey  = 1
	black = 2
)

type classifier struct {
	index  *ancestry.Index
	totals entities.Requirements
	tags   map[string]Tag
	state  map[string]int
}

func (c *classifier) classify(name string, path []string) (Tag, error) {
	switch c.state[name] {
	case black:
		return c.tags[name], nil
	case grey:
		return "", errors.CyclicAncestry(append(loopFrom(path, name), name))
	}
	c.state[name] = grey
	path = append(path, name)

	tag := TagSatisfied
	if c.totals[name] > 0 {
		tag = TagDeficient
	}

	if parents, hybrid := c.index.Parents(name); hybrid {
		for _, p := range parents.Names() {
			parentTag, err := c.classify(p, path)
			if err != nil {
				return "", err
			}
			if parentTag == TagDeficient {
				tag = TagDeficient
			}
		}
	}

	c.state[name] = black
	c.tags[name] = tag
	return tag, nil
}

func loopFrom(path []string, name string) []string {
	for i, n := range path {
		if n == name {
			return append([]string(nil), path[i:]...)
		}
	}
	return append([]string(nil), path...)
}
