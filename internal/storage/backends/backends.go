// Package backends opens the slot store named in the configuration.
package backends

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kpauljoseph/lingocards/internal/config"
	"github.com/kpauljoseph/lingocards/internal/storage"
	"github.com/kpauljoseph/lingocards/internal/storage/file"
	"github.com/kpauljoseph/lingocards/internal/storage/pebble"
	"github.com/kpauljoseph/lingocards/internal/storage/postgres"
	"github.com/kpauljoseph/lingocards/internal/storage/redis"
	"github.com/kpauljoseph/lingocards/internal/storage/valkey"
	"github.com/kpauljoseph/lingocards/pkg/logger"
)

// PebbleDirName is the pebble database directory inside the storage dir.
const PebbleDirName = "slots.pebble"

func Open(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (storage.SlotStore, error) {
	if log == nil {
		log = logger.Discard()
	}

	switch cfg.Backend {
	case config.BackendMemory:
		log.Debug("Using in-memory storage, nothing will outlive this process")
		return storage.NewMemory(), nil

	case config.BackendFile:
		log.Debug("Using file storage in %s", cfg.Dir)
		return opened(file.New(cfg.Dir))

	case config.BackendPebble:
		dir := filepath.Join(cfg.Dir, PebbleDirName)
		log.Debug("Using pebble storage in %s", dir)
		return opened(pebble.New(dir))

	case config.BackendRedis:
		log.Debug("Using redis storage at %s (db %d)", cfg.Redis.Addr, cfg.Redis.DB)
		return opened(redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))

	case config.BackendValkey:
		log.Debug("Using valkey storage")
		return opened(valkey.New(ctx, cfg.Valkey.URL))

	case config.BackendPostgres:
		if cfg.Postgres.Migrate {
			log.Info("Applying postgres migrations")
			if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
				return nil, err
			}
		}
		log.Debug("Using postgres storage")
		return opened(postgres.New(ctx, cfg.Postgres.DSN))

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// opened keeps a failed constructor's typed nil out of the interface.
func opened[S storage.SlotStore](store S, err error) (storage.SlotStore, error) {
	if err != nil {
		return nil, err
	}
	return store, nil
}
