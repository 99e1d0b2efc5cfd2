// Package container wires the application together using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/pantrywizard/v2/internal/application/ai"
	"github.com/pantrywizard/v2/internal/application/history"
	"github.com/pantrywizard/v2/internal/application/pantry"
	"github.com/pantrywizard/v2/internal/application/recipe"
	"github.com/pantrywizard/v2/internal/application/user"
	"github.com/pantrywizard/v2/internal/infrastructure/ai/image"
	"github.com/pantrywizard/v2/internal/infrastructure/config"
	"github.com/pantrywizard/v2/internal/infrastructure/http/apiserver"
	gormRepo "github.com/pantrywizard/v2/internal/infrastructure/persistence/gorm"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/memory"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/postgres"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/redis"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/sqlite"
	"github.com/pantrywizard/v2/internal/infrastructure/security"
	"github.com/pantrywizard/v2/internal/infrastructure/storage"
	"github.com/pantrywizard/v2/internal/ports/outbound"
	"github.com/pantrywizard/v2/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	SecurityModule,
	RepositoryModule,
	AIModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging with a runtime-adjustable level
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.NewWithLevel(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the gorm connection for the configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		var db *gorm.DB

		switch cfg.Database.Driver {
		case "postgres":
			cm, err := postgres.NewConnectionManager(cfg, log)
			if err != nil {
				return nil, fmt.Errorf("connect postgres: %w", err)
			}
			db = cm.GetDB()
		default:
			sqliteDB, err := sqlite.SetupDatabase(cfg.Database.SQLitePath, cfg.Database.LogLevel)
			if err != nil {
				return nil, fmt.Errorf("open sqlite: %w", err)
			}
			db = sqliteDB
			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.SQLitePath))
		}

		if cfg.Database.AutoMigrate {
			if err := gormRepo.Migrate(db); err != nil {
				return nil, fmt.Errorf("migrate schema: %w", err)
			}
		}

		return db, nil
	},
)

// CacheModule provides the cache repository: Redis when enabled, the
// in-process cache otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			return redis.NewCacheRepository(cfg.Redis, log)
		}
		log.Info("Redis disabled, using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// SecurityModule provides token issuance and verification
var SecurityModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config) *security.TokenService {
			return security.NewTokenService(cfg.Auth)
		},
		fx.As(new(outbound.TokenService)),
	),
)

// RepositoryModule provides the gorm-backed repositories
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewPantryRepository,
	gormRepo.NewHistoryRepository,
	gormRepo.NewSuggestionRepository,
)

// AIModule provides the generation backend, the orchestration service and
// the food image pipeline
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.RecipeGenerator {
		return ai.NewGenerator(cfg.AI, log)
	},
	ai.NewService,
	func(s *ai.Service) recipe.Generator {
		return s
	},
	func(cfg *config.Config, log *zap.Logger) (outbound.ImageStore, error) {
		return storage.NewStore(cfg.Storage, cfg.AWS, log)
	},
	fx.Annotate(
		func(cfg *config.Config, store outbound.ImageStore, log *zap.Logger) *image.Generator {
			return image.NewGenerator(
				cfg.Image.Mode,
				cfg.AI.OllamaBaseURL,
				cfg.Image.OllamaModel,
				cfg.Image.PlaceholderURL,
				cfg.Image.Timeout,
				store,
				log,
			)
		},
		fx.As(new(outbound.ImageGenerator)),
	),
)

// ServiceModule provides the application services
var ServiceModule = fx.Provide(
	user.NewUserService,
	pantry.NewPantryService,
	recipe.NewRecipeService,
	history.NewHistoryService,
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule starts and stops the application
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks ties server startup and shutdown to the FX
// lifecycle and keeps the log level in sync with the config file
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	level zap.AtomicLevel,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting PantryWizard",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			cfg.Watch(func(next *config.Config) {
				var parsed zapcore.Level
				if err := parsed.UnmarshalText([]byte(next.App.LogLevel)); err != nil {
					return
				}
				if level.Level() != parsed {
					log.Info("Log level changed", zap.String("level", next.App.LogLevel))
					level.SetLevel(parsed)
				}
			})

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down PantryWizard")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
