package roster

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Default file names inside the data directory
const (
	DefaultRosterFile   = "CurrentDinos.txt"
	DefaultRecipeFile   = "DinoRecipes.txt"
	DefaultWishlistFile = "DinosToGet.txt"
)

// creatureRow is one roster line: name level amount rarityLetter
type creatureRow struct {
	Name   string `csv:"name"`
	Level  int    `csv:"level"`
	Amount int    `csv:"amount"`
	Rarity string `csv:"rarity"`
}

// recipeRow is one recipe line: child: first second
type recipeRow struct {
	Child  string `csv:"child"`
	First  string `csv:"first"`
	Second string `csv:"second"`
}

type wishRow struct {
	Name string `csv:"name"`
}

// FileConfig contains configuration for the flat file repository
type FileConfig struct {
	Dir          string
	RosterFile   string
	RecipeFile   string
	WishlistFile string
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Dir", cfg.Dir, vb)
	return vb.Build()
}

type fileRepository struct {
	rosterPath   string
	recipePath   string
	wishlistPath string
}

// NewFile creates a repository over the three space-delimited text files
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fileRepository{
		rosterPath:   filepath.Join(cfg.Dir, orDefault(cfg.RosterFile, DefaultRosterFile)),
		recipePath:   filepath.Join(cfg.Dir, orDefault(cfg.RecipeFile, DefaultRecipeFile)),
		wishlistPath: filepath.Join(cfg.Dir, orDefault(cfg.WishlistFile, DefaultWishlistFile)),
	}, nil
}

func (r *fileRepository) Load(_ context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var creatures []creatureRow
	if err := readRows(r.rosterPath, 4, &creatures); err != nil {
		return nil, err
	}
	var recipes []recipeRow
	if err := readRows(r.recipePath, 3, &recipes); err != nil {
		return nil, err
	}
	var wishes []wishRow
	if err := readRows(r.wishlistPath, 1, &wishes); err != nil {
		return nil, err
	}

	roster, err := entities.NewRoster()
	if err != nil {
		return nil, err
	}
	for i, row := range creatures {
		rarity, err := entities.ParseRarity(row.Rarity)
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d", filepath.Base(r.rosterPath), i+1)
		}
		c := &entities.Creature{Name: row.Name, Level: row.Level, Amount: row.Amount, Rarity: rarity}
		if err := roster.Add(c); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", filepath.Base(r.rosterPath), i+1)
		}
	}

	parsed := make([]entities.Recipe, 0, len(recipes))
	for i, row := range recipes {
		child := strings.TrimSuffix(row.Child, ":")
		if child == row.Child {
			return nil, errors.DataLossf("%s line %d: expected \"child: first second\"", filepath.Base(r.recipePath), i+1)
		}
		parsed = append(parsed, entities.Recipe{Child: child, First: row.First, Second: row.Second})
	}
	if err := roster.ApplyRecipes(parsed); err != nil {
		return nil, errors.Wrap(err, filepath.Base(r.recipePath))
	}

	names := make([]string, 0, len(wishes))
	for _, row := range wishes {
		if !roster.Has(row.Name) {
			slog.Warn("wishlist names a creature missing from the roster", "creature", row.Name)
		}
		names = append(names, row.Name)
	}

	slog.Debug("roster loaded",
		"creatures", roster.Len(),
		"recipes", len(parsed),
		"wishlist", len(names))

	return &LoadOutput{Roster: roster, Wishlist: entities.Wishlist(names)}, nil
}

func (r *fileRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Roster == nil {
		return nil, errors.InvalidArgument("roster is required")
	}

	creatures := input.Roster.Creatures()
	creatureRows := make([]creatureRow, 0, len(creatures))
	for _, c := range creatures {
		creatureRows = append(creatureRows, creatureRow{
			Name:   c.Name,
			Level:  c.Level,
			Amount: c.Amount,
			Rarity: c.Rarity.Letter(),
		})
	}

	recipes := input.Roster.Recipes()
	recipeRows := make([]recipeRow, 0, len(recipes))
	for _, recipe := range recipes {
		recipeRows = append(recipeRows, recipeRow{
			Child:  recipe.Child + ":",
			First:  recipe.First,
			Second: recipe.Second,
		})
	}

	wishlist := entities.Wishlist(input.Wishlist)
	wishRows := make([]wishRow, 0, len(wishlist))
	for _, name := range wishlist {
		wishRows = append(wishRows, wishRow{Name: name})
	}

	if err := writeRows(r.rosterPath, creatureRows); err != nil {
		return nil, err
	}
	if err := writeRows(r.recipePath, recipeRows); err != nil {
		return nil, err
	}
	if err := writeRows(r.wishlistPath, wishRows); err != nil {
		return nil, err
	}

	slog.Info("roster saved", "creatures", len(creatureRows), "wishlist", len(wishRows))

	return &SaveOutput{}, nil
}

// readRows decodes a space-delimited file. A missing file reads as empty.
func readRows(path string, fields int, out interface{}) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		slog.Debug("data file not found, treating as empty", "path", path)
		return nil
	}
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	err = gocsv.UnmarshalCSVWithoutHeaders(newReader(f, fields), out)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil
	}
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataLoss, "parse %s", filepath.Base(path))
	}
	return nil
}

func newReader(in io.Reader, fields int) *csv.Reader {
	reader := csv.NewReader(in)
	reader.Comma = ' '
	reader.FieldsPerRecord = fields
	reader.LazyQuotes = true
	return reader
}

// writeRows replaces path with rows through a temporary file
func writeRows(path string, rows interface{}) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "create temp file for %s", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	writer := csv.NewWriter(tmp)
	writer.Comma = ' '
	if err := gocsv.MarshalCSVWithoutHeaders(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		_ = tmp.Close()
		return errors.WrapWithCodef(err, errors.CodeInternal, "encode %s", filepath.Base(path))
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "replace %s", path)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
