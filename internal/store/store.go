package store

import (
	"context"
	"fmt"
)

// Keys used by the game engine.
const (
	KeyAppState       = "app_state"
	KeyHistoricalData = "historical_data"
)

// Store is a string key/value store holding JSON-encoded blobs.
// A missing key is reported as ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Dir        string // file backend
	SQLitePath string
	RedisURL   string
}

// Open creates the configured store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile:
		return NewFileStore(opts.Dir)
	case BackendSQLite, "":
		return NewSQLiteStore(opts.SQLitePath)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
