package engine

import (
	"log/slog"

	"github.com/KirkDiggler/dna-planner/internal/ancestry"
	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Config holds what an engine computes over
type Config struct {
	Roster      *entities.Roster
	Index       *ancestry.Index
	ParentLevel ParentLevel
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Roster == nil {
		vb.RequiredField("Roster")
	}
	if cfg.Index == nil {
		vb.RequiredField("Index")
	}
	if cfg.ParentLevel != ParentLevelOwn && cfg.ParentLevel != ParentLevelChild {
		vb.Fieldf("ParentLevel", "unknown value %d", int(cfg.ParentLevel))
	}

	return vb.Build()
}

type engine struct {
	roster      *entities.Roster
	index       *ancestry.Index
	parentLevel ParentLevel

	reservedLevel  map[string]int
	reservedAmount map[string]int
	closed         bool
}

// New creates an engine over the roster. The ancestry graph must be acyclic.
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}
	if err := cfg.Index.Validate(); err != nil {
		return nil, err
	}

	e := &engine{
		roster:      cfg.Roster,
		index:       cfg.Index,
		parentLevel: cfg.ParentLevel,
	}
	e.Reset()
	return e, nil
}

func (e *engine) Reset() {
	e.reservedLevel = make(map[string]int, e.roster.Len())
	e.reservedAmount = make(map[string]int, e.roster.Len())
	for _, c := range e.roster.Creatures() {
		e.reservedLevel[c.Name] = c.Level
		e.reservedAmount[c.Name] = c.Amount
	}
	e.closed = false
}

func (e *engine) Close() {
	e.closed = true
}

func (e *engine) Closed() bool {
	return e.closed
}

func (e *engine) RequirementFor(name string, targetLevel, extra int) (entities.Requirements, error) {
	if e.closed {
		return nil, errors.ReusedEngineState()
	}
	if extra < 0 {
		return nil, errors.InvalidArgumentf("extra DNA must not be negative, got %d", extra)
	}
	return e.requirementFor(name, targetLevel, extra, 0)
}

func (e *engine) Compute(wishlist []string) (*Result, error) {
	if e.closed {
		return nil, errors.ReusedEngineState()
	}

	names := entities.Wishlist(wishlist)
	targets := make(map[string]int, len(names))
	// Resolve everything before reserving anything
	for _, name := range names {
		c, err := e.roster.Get(name)
		if err != nil {
			return nil, errors.Wrap(err, "wishlist")
		}
		targets[name] = c.ActivationLevel() + 1
	}

	result := &Result{
		Wishlist: names,
		Total:    entities.Requirements{},
		ByEntry:  make(map[string]entities.Requirements, len(names)),
	}
	for _, name := range names {
		req, err := e.requirementFor(name, targets[name], 0, 0)
		if err != nil {
			e.closed = true
			return nil, errors.Wrapf(err, "requirement for %s", name)
		}
		result.ByEntry[name] = req
		result.Total.Merge(req)
	}

	e.closed = true

	slog.Debug("dna requirements computed",
		"wishlist", len(names),
		"roots", len(result.Total),
		"total", result.Total.Total())

	return result, nil
}

func (e *engine) DetermineAllNeededDNA(wishlist []string) (entities.Requirements, error) {
	result, err := e.Compute(wishlist)
	if err != nil {
		return nil, err
	}
	return result.Total, nil
}

func (e *engine) requirementFor(name string, targetLevel, deficit, depth int) (entities.Requirements, error) {
	c, err := e.roster.Get(name)
	if err != nil {
		return nil, err
	}

	if level := e.reservedLevel[name]; level < targetLevel {
		deficit += c.DNAToLevel(level, targetLevel)
		e.reservedLevel[name] = targetLevel
	}

	owned := e.reservedAmount[name]
	if owned >= deficit {
		e.reservedAmount[name] = owned - deficit
		slog.Debug("dna covered by stock",
			"creature", name,
			"depth", depth,
			"used", deficit,
			"left", owned-deficit)
		return entities.Requirements{}, nil
	}
	deficit -= owned
	e.reservedAmount[name] = 0

	parents, hybrid := e.index.Parents(name)
	if !hybrid {
		slog.Debug("root dna needed", "creature", name, "depth", depth, "amount", deficit)
		return entities.Requirements{name: deficit}, nil
	}

	out := entities.Requirements{}
	for _, parentName := range parents.Names() {
		parent, err := e.roster.Get(parentName)
		if err != nil {
			return nil, errors.Wrapf(err, "parent of %s", name)
		}
		amount, err := entities.ParentAmount(c.Rarity, parent.Rarity, deficit)
		if err != nil {
			return nil, errors.Wrapf(err, "fusing %s", name)
		}

		target := parent.ActivationLevel()
		if e.parentLevel == ParentLevelChild && c.ActivationLevel() > target {
			target = c.ActivationLevel()
		}

		slog.Debug("propagating to parent",
			"creature", name,
			"parent", parentName,
			"depth", depth,
			"child_deficit", deficit,
			"parent_amount", amount,
			"parent_target_level", target)

		req, err := e.requirementFor(parentName, target, amount, depth+1)
		if err != nil {
			return nil, err
		}
		out.Merge(req)
	}
	return out, nil
}
