// Package postgres provides PostgreSQL database connection management
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/pantrywizard/v2/internal/infrastructure/config"
)

// ConnectionManager manages the PostgreSQL connection with a tuned pool
// and optional read replicas
type ConnectionManager struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	logger *zap.Logger
}

// NewConnectionManager opens the primary connection, configures the
// connection pool and registers read replicas when any are configured
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	gormLogger := logger.New(
		&zapGormWriter{logger: log.Named("gorm")},
		logger.Config{
			SlowThreshold:             cfg.Database.SlowQueryThreshold,
			LogLevel:                  gormLogLevel(cfg.Database.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cm := &ConnectionManager{db: db, sqlDB: sqlDB, logger: log}

	if err := cm.registerReadReplicas(cfg); err != nil {
		log.Warn("Failed to register read replicas", zap.Error(err))
	}

	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Duration("slow_query_threshold", cfg.Database.SlowQueryThreshold),
	)

	return cm, nil
}

// registerReadReplicas routes read queries across the configured replica
// hosts, random pick per query
func (cm *ConnectionManager) registerReadReplicas(cfg *config.Config) error {
	dsns := cfg.GetReplicaDSNs()
	if len(dsns) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, len(dsns))
	for i, dsn := range dsns {
		replicas[i] = postgres.Open(dsn)
	}

	if err := cm.db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	})); err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	cm.logger.Info("Read replicas configured", zap.Int("replica_count", len(dsns)))
	return nil
}

// GetDB returns the database handle
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// HealthCheck pings the primary connection
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the database connection pool
func (cm *ConnectionManager) Close() error {
	return cm.sqlDB.Close()
}

// zapGormWriter adapts zap to the GORM logger writer interface
type zapGormWriter struct {
	logger *zap.Logger
}

func (w *zapGormWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "debug", "info":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
