package kvstore

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"folio/internal/config"
	"folio/internal/database"
)

// Open builds the configured backend, namespaced and instrumented.
// redisClient is only consulted for the redis driver.
func Open(cfg config.StoreConfig, dbCfg config.DatabaseConfig, redisClient redis.UniversalClient) (Store, error) {
	var backend Store
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := database.InitDatabase(dbCfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		backend = NewGormStore(db)
	case config.DriverSQLite:
		db, err := database.InitSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		backend = NewGormStore(db)
	case config.DriverRedis:
		if redisClient == nil {
			return nil, errors.New("redis driver selected but no redis client configured")
		}
		backend = NewRedisStore(redisClient)
	case config.DriverMemory:
		backend = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	return WithMetrics(WithNamespace(backend, cfg.Namespace), cfg.Driver), nil
}
