package history

import (
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/dna-planner/internal/redis"
)

// Supported history backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Backends lists every supported backend name
var Backends = []string{BackendFile, BackendSQLite, BackendRedis}

// FactoryConfig selects and configures a history backend
type FactoryConfig struct {
	Backend string

	FilePath   string
	SQLitePath string

	RedisClient    redisclient.Client
	RedisKeyPrefix string

	IDGenerator idgen.Generator
}

// New builds the configured backend. An empty backend means the flat file.
func New(cfg *FactoryConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}

	switch cfg.Backend {
	case "", BackendFile:
		return NewFile(&FileConfig{Path: cfg.FilePath})
	case BackendSQLite:
		return NewSQLite(&SQLiteConfig{Path: cfg.SQLitePath, IDGenerator: cfg.IDGenerator})
	case BackendRedis:
		return NewRedis(&RedisConfig{
			Client:      cfg.RedisClient,
			KeyPrefix:   cfg.RedisKeyPrefix,
			IDGenerator: cfg.IDGenerator,
		})
	default:
		return nil, errors.InvalidArgumentf("unsupported history backend %q", cfg.Backend)
	}
}

// CloseIfSupported closes stores that hold resources
func CloseIfSupported(repo Repository) error {
	closer, ok := repo.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
