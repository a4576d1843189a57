package history

import (
	"context"
	"strconv"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	goredis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/dna-planner/internal/redis"
)

const (
	// DefaultKeyPrefix namespaces every key the Redis store writes
	DefaultKeyPrefix = "dna:history"

	snapshotIndexKey = "snapshots"
	archivedKey      = "archived"
)

// RedisConfig contains configuration for the Redis history store
type RedisConfig struct {
	Client      redisclient.Client
	KeyPrefix   string
	IDGenerator idgen.Generator
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// redisRepository keeps a sorted set of snapshot IDs scored by time in
// milliseconds and one hash of amounts per snapshot. Archiving moves a field
// into the snapshot's archive hash.
type redisRepository struct {
	client redisclient.Client
	prefix string
	idGen  idgen.Generator
}

// NewRedis creates a Redis-backed history store
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID(entities.EntityTypeSnapshot)
	}

	return &redisRepository{client: cfg.Client, prefix: prefix, idGen: gen}, nil
}

func (r *redisRepository) key(parts ...string) string {
	out := r.prefix
	for _, p := range parts {
		out += ":" + p
	}
	return out
}

func (r *redisRepository) entityKey(e core.Entity) string {
	return r.key(e.GetType(), e.GetID())
}

func (r *redisRepository) Append(ctx context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	snap := input.Snapshot
	if snap.ID == "" {
		snap.ID = r.idGen.Generate()
	}

	fields := make(map[string]interface{}, len(snap.Amounts))
	for name, amount := range snap.Amounts {
		fields[name] = amount
	}

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, r.key(snapshotIndexKey), redisZ(snap))
	if len(fields) > 0 {
		pipe.HSet(ctx, r.entityKey(snap), fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to append snapshot %s", snap.ID)
	}

	return &AppendOutput{Recorded: len(fields)}, nil
}

func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	index, err := r.client.ZRangeWithScores(ctx, r.key(snapshotIndexKey), 0, -1).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list snapshots")
	}
	snapshots := make([]*entities.Snapshot, 0, len(index))
	for _, z := range index {
		id, ok := z.Member.(string)
		if !ok {
			return nil, errors.DataLossf("snapshot index member %v is not a string", z.Member)
		}
		snap := &entities.Snapshot{
			ID:      id,
			TakenAt: time.UnixMilli(int64(z.Score)),
			Amounts: make(map[string]int),
		}

		values, err := r.client.HGetAll(ctx, r.entityKey(snap)).Result()
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read snapshot %s", id)
		}
		for name, raw := range values {
			amount, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.DataLossf("snapshot %s: bad amount %q for %s", id, raw, name)
			}
			snap.Amounts[name] = amount
		}
		snapshots = append(snapshots, snap)
	}

	return &ListOutput{Snapshots: filterNames(snapshots, input.Names)}, nil
}

func (r *redisRepository) Archive(ctx context.Context, input *ArchiveInput) (*ArchiveOutput, error) {
	if err := validateArchive(input); err != nil {
		return nil, err
	}

	ids, err := r.client.ZRange(ctx, r.key(snapshotIndexKey), 0, -1).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list snapshots")
	}

	pipe := r.client.TxPipeline()
	count := 0
	for _, id := range ids {
		snapKey := r.entityKey(&entities.Snapshot{ID: id})
		raw, err := r.client.HGet(ctx, snapKey, input.Name).Result()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read snapshot %s", id)
		}
		pipe.HSet(ctx, r.key(archivedKey, id), input.Name, raw)
		pipe.HDel(ctx, snapKey, input.Name)
		count++
	}
	if count == 0 {
		return &ArchiveOutput{}, nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to archive %s", input.Name)
	}

	return &ArchiveOutput{Archived: count}, nil
}

func redisZ(s *entities.Snapshot) goredis.Z {
	return goredis.Z{Score: float64(s.TakenAt.UnixMilli()), Member: s.ID}
}
