package database

import (
	"context"
	"cyberlearn_backend/internal/config"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// DSN renders the MySQL data source name for cfg.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("database", cfg.DBName))
	return db, nil
}

// InitStore opens the record store selected by store.type and prepares its
// schema where one is needed.
func InitStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Type {
	case util.StoreMongo:
		s, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, connectTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		logger.Log.Info("MongoDB connection established", zap.String("database", cfg.Mongo.Database))
		return s, nil

	case util.StoreSQL:
		db, err := InitDB(&cfg.Database, cfg.Server.Mode == "debug")
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		s := store.NewSQLStore(db)
		if err := s.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate documents table: %w", err)
		}
		logger.Log.Info("Database migration completed")
		return s, nil

	default:
		logger.Log.Info("Using in-memory record store")
		return store.NewMemoryStore(), nil
	}
}
