// Package backend selects and builds the ledger store configured for
// this run.
package backend

import (
	"fmt"

	"finledger/internal/config"
	"finledger/internal/storage"
)

type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type         Type
	DataDir      string
	SQLiteDBPath string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		DataDir:      appConfig.DataDir,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Open builds the repository for the configured backend. The caller
// owns the returned store and must Close it.
func Open(cfg Config) (storage.Repository, error) {
	switch cfg.Type {
	case JSONBackend:
		repo, err := storage.NewJSONStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize json store: %w", err)
		}
		return repo, nil
	case SQLiteBackend:
		repo, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		return repo, nil
	case MemoryBackend:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
