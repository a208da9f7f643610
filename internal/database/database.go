package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fleetdesk/config"
	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/valkey-io/valkey-go"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type CacheClient valkey.Client

type Cache struct {
	Session CacheClient
	User    CacheClient
	Events  CacheClient
}

// DB owns the authoritative collections (an embedded in-memory SQLite
// database) and the valkey cache tier. WriteMu serializes mutations so every
// notification recompute observes a consistent snapshot.
type DB struct {
	SQL     *gorm.DB
	Cache   Cache
	WriteMu *sync.Mutex
	log     logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log, WriteMu: &sync.Mutex{}}

	if err := db.initializeDB(config); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

// NewWithGorm wraps an already-open gorm handle without a cache tier. Tests
// build their store this way.
func NewWithGorm(gdb *gorm.DB) DB {
	return DB{
		SQL:     gdb,
		WriteMu: &sync.Mutex{},
		log:     logger.New("database"),
	}
}

func TXDefer(tx *gorm.DB, log logger.Logger) {
	if tx.Error != nil {
		log.Er("failed to commit transaction", tx.Error)
		tx.Rollback()
	} else {
		if err := tx.Commit().Error; err != nil {
			log.Er("failed to commit transaction", err)
		}
	}
}

func (s *DB) initializeDB(config config.Config) error {
	log := s.log.Function("initializeDB")

	gormConfig := &gorm.Config{
		Logger: gormLogger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
			},
		),
		SkipDefaultTransaction: true,
	}

	log.Info("Opening embedded store", "path", config.DatabasePath)
	db, err := gorm.Open(sqlite.Open(config.DatabasePath), gormConfig)
	if err != nil {
		return log.Err("failed to open embedded SQLite store", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	// A single connection keeps the in-memory database alive and serialized
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		return log.Err("failed to migrate schema", err)
	}

	s.SQL = db
	log.Info("Embedded store ready")

	return nil
}

// Migrate creates the schema for all authoritative collections. The store is
// ephemeral, so the schema is rebuilt from the models on every start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.MaintenanceRecord{},
		&models.MaintenanceSchedule{},
		&models.MaintenanceRequest{},
		&models.Notification{},
	)
}

// Reset deletes every row from every collection. Used between tests; the
// process lifecycle otherwise constructs a fresh store.
func (s *DB) Reset(ctx context.Context) error {
	log := s.log.Function("Reset")

	tables := []string{
		"notifications",
		"maintenance_requests",
		"maintenance_schedules",
		"maintenance_records",
		"vehicles",
		"users",
	}

	for _, table := range tables {
		if err := s.SQL.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return log.Err("failed to reset table", err, "table", table)
		}
	}

	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				_ = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache.Session != nil {
		s.Cache.Session.Close()
	}

	if s.Cache.User != nil {
		s.Cache.User.Close()
	}

	if s.Cache.Events != nil {
		s.Cache.Events.Close()
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}
