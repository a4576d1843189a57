package history

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

const (
	// DefaultFile is the history file name inside the data directory
	DefaultFile = "AmountHistory.txt"

	dateLayout     = "01/02/2006"
	amountSep      = ": "
	archivedPrefix = "# "
)

// FileConfig contains configuration for the flat file history store
type FileConfig struct {
	Path string
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

// fileRepository keeps history in the day-block text format:
//
//	03/01/2024
//	Anky: 900
//	# Coelo: 280
//
// Blocks are separated by a blank line. Each block lists only amounts that
// changed since the creature was last recorded. Archived lines are commented.
type fileRepository struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a history store over a day-block text file
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &fileRepository{path: cfg.Path}, nil
}

func (r *fileRepository) Append(_ context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.readLocked()
	if err != nil {
		return nil, err
	}
	last := make(map[string]int)
	for name, points := range entities.Series(existing) {
		last[name] = points[len(points)-1].Amount
	}

	names := make([]string, 0, len(input.Snapshot.Amounts))
	for name := range input.Snapshot.Amounts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	if len(existing) > 0 {
		buf.WriteString("\n\n")
	}
	buf.WriteString(input.Snapshot.TakenAt.Format(dateLayout))
	recorded := 0
	for _, name := range names {
		amount := input.Snapshot.Amounts[name]
		if prev, seen := last[name]; seen && prev == amount {
			continue
		}
		fmt.Fprintf(&buf, "\n%s%s%d", name, amountSep, amount)
		recorded++
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "open %s", r.path)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "append to %s", r.path)
	}
	if err := f.Close(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "close %s", r.path)
	}

	return &AppendOutput{Recorded: recorded}, nil
}

func (r *fileRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshots, err := r.readLocked()
	if err != nil {
		return nil, err
	}
	return &ListOutput{Snapshots: filterNames(snapshots, input.Names)}, nil
}

func (r *fileRepository) Archive(_ context.Context, input *ArchiveInput) (*ArchiveOutput, error) {
	if err := validateArchive(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return &ArchiveOutput{}, nil
	}
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "read %s", r.path)
	}

	prefix := input.Name + amountSep
	lines := strings.Split(string(data), "\n")
	archived := 0
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = archivedPrefix + line
			archived++
		}
	}
	if archived == 0 {
		slog.Warn("no history to archive", "creature", input.Name)
		return &ArchiveOutput{}, nil
	}

	if err := os.WriteFile(r.path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "write %s", r.path)
	}
	return &ArchiveOutput{Archived: archived}, nil
}

// readLocked parses the whole file. A missing file is empty history.
func (r *fileRepository) readLocked() ([]*entities.Snapshot, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "open %s", r.path)
	}
	defer func() { _ = f.Close() }()

	var (
		snapshots []*entities.Snapshot
		current   *entities.Snapshot
		lineNo    int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r ")

		switch {
		case line == "":
			current = nil
		case current == nil:
			takenAt, err := time.ParseInLocation(dateLayout, line, time.Local)
			if err != nil {
				return nil, errors.DataLossf("%s line %d: expected a MM/DD/YYYY date, got %q", r.path, lineNo, line)
			}
			current = &entities.Snapshot{
				ID:      strconv.Itoa(len(snapshots) + 1),
				TakenAt: takenAt,
				Amounts: make(map[string]int),
			}
			snapshots = append(snapshots, current)
		case strings.HasPrefix(line, "#"):
			continue
		default:
			name, value, ok := strings.Cut(line, amountSep)
			if !ok {
				return nil, errors.DataLossf("%s line %d: expected \"name: amount\", got %q", r.path, lineNo, line)
			}
			amount, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.DataLossf("%s line %d: bad amount %q", r.path, lineNo, value)
			}
			current.Amounts[name] = amount
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "read %s", r.path)
	}
	return snapshots, nil
}
