package database

import (
	"github.com/gdg-garage/eventflow-api/internal/config"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Auto Migrate
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		return nil, errors.Wrap(err, "failed to auto migrate")
	}

	return db, nil
}

// OpenKV opens the key-value backend selected by cfg.StoreBackend. The
// returned close function releases the backend's connections.
func OpenKV(cfg *config.Config) (store.KV, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn().Msg("Using in-memory store, state will not survive a restart")
		return store.NewMemoryKV(), func() error { return nil }, nil

	case config.BackendRedis:
		kv, err := store.NewRedisKV(store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis store")
		return kv, kv.Close, nil

	default:
		db, err := Connect(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get underlying DB connection")
		}
		log.Info().Str("path", cfg.DatabasePath).Msg("Opened SQLite store")
		return store.NewGormKV(db), sqlDB.Close, nil
	}
}
