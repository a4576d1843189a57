package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/pkg/idgen"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       TEXT PRIMARY KEY,
	taken_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS amounts (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
	name        TEXT NOT NULL,
	amount      INTEGER NOT NULL,
	archived    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (snapshot_id, name)
);`

// SQLiteConfig contains configuration for the SQLite history store
type SQLiteConfig struct {
	Path        string
	IDGenerator idgen.Generator
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	idGen idgen.Generator
}

// SQLiteRepository is a history store that owns a database handle
type SQLiteRepository interface {
	Repository
	Close() error
}

// NewSQLite opens (and creates if needed) a SQLite history database
func NewSQLite(cfg *SQLiteConfig) (SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "create %s", dir)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "open sqlite")
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "create history tables")
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID(entities.EntityTypeSnapshot)
	}

	return &sqliteRepository{db: db, idGen: gen}, nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

func (r *sqliteRepository) Append(ctx context.Context, input *AppendInput) (_ *AppendOutput, retErr error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	id := input.Snapshot.ID
	if id == "" {
		id = r.idGen.Generate()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "begin transaction")
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, taken_at) VALUES (?, ?)`,
		id, input.Snapshot.TakenAt.UnixNano()); err != nil {
		return nil, errors.Wrapf(err, "insert snapshot %s", id)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO amounts (snapshot_id, name, amount) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare amount insert")
	}
	defer func() { _ = stmt.Close() }()

	for name, amount := range input.Snapshot.Amounts {
		if _, err := stmt.ExecContext(ctx, id, name, amount); err != nil {
			return nil, errors.Wrapf(err, "insert amount for %s", name)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit snapshot")
	}

	input.Snapshot.ID = id
	return &AppendOutput{Recorded: len(input.Snapshot.Amounts)}, nil
}

func (r *sqliteRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.taken_at, a.name, a.amount
		FROM snapshots s
		LEFT JOIN amounts a
			ON a.snapshot_id = s.id
			AND a.archived = 0
		ORDER BY s.taken_at, s.rowid, a.name`)
	if err != nil {
		return nil, errors.Wrap(err, "query history")
	}
	defer func() { _ = rows.Close() }()

	var (
		snapshots []*entities.Snapshot
		current   *entities.Snapshot
	)
	for rows.Next() {
		var (
			id      string
			takenAt int64
			name    sql.NullString
			amount  sql.NullInt64
		)
		if err := rows.Scan(&id, &takenAt, &name, &amount); err != nil {
			return nil, errors.Wrap(err, "scan history row")
		}
		if current == nil || current.ID != id {
			current = &entities.Snapshot{
				ID:      id,
				TakenAt: time.Unix(0, takenAt),
				Amounts: make(map[string]int),
			}
			snapshots = append(snapshots, current)
		}
		if name.Valid {
			current.Amounts[name.String] = int(amount.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read history rows")
	}

	return &ListOutput{Snapshots: filterNames(snapshots, input.Names)}, nil
}

func (r *sqliteRepository) Archive(ctx context.Context, input *ArchiveInput) (*ArchiveOutput, error) {
	if err := validateArchive(input); err != nil {
		return nil, err
	}

	// Only rows stored so far; a later Append under the same name stays visible
	res, err := r.db.ExecContext(ctx,
		`UPDATE amounts SET archived = 1 WHERE name = ? AND archived = 0`, input.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "archive %s", input.Name)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "count archived rows for %s", input.Name)
	}

	return &ArchiveOutput{Archived: int(count)}, nil
}
