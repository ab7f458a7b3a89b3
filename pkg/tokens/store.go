package tokens

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbodonnell/seafarer/pkg/config"
)

const (
	// AuthTokenKey is the key the client keeps its authentication token under.
	AuthTokenKey = "authKey"
)

// Store is a process-wide keyed persistence surface. Values persist until
// they are removed or the backing storage is reset; there is no eviction.
// Implementations must be thread-safe.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key, replacing any previous value.
	Set(key string, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Close releases the resources held by the store.
	Close() error
}

// New creates the store selected by the client configuration.
func New(cfg *config.ClientConfig) (Store, error) {
	switch cfg.TokenStore {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		path := cfg.TokenFile
		if path == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve user config dir: %v", err)
			}
			path = filepath.Join(dir, "seafarer", "tokens.json")
		}
		return NewFileStore(path)
	case "sqlite":
		return NewSQLiteStore(cfg.TokenDB)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	default:
		return nil, fmt.Errorf("unknown token store: %s", cfg.TokenStore)
	}
}
