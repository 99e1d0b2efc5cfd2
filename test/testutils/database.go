// Package testutils provides shared test infrastructure and data factories
package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormRepo "github.com/pantrywizard/v2/internal/infrastructure/persistence/gorm"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/sqlite"
)

// SetupSQLite opens an in-memory database with the full schema applied.
// Each call returns an isolated database.
func SetupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(":memory:", "silent")
	require.NoError(t, err, "open in-memory sqlite")
	require.NoError(t, gormRepo.Migrate(db), "migrate schema")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// TestDatabase is a postgres instance running in a container
type TestDatabase struct {
	Container testcontainers.Container
	GormDB    *gorm.DB
	DSN       string
}

// SetupPostgres starts a postgres container, applies the schema and
// registers cleanup. Used by the repository integration tests.
func SetupPostgres(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	const (
		database = "pantrywizard_test"
		username = "test_user"
		password = "test_password"
	)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       database,
				"POSTGRES_USER":     username,
				"POSTGRES_PASSWORD": password,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
				wait.ForListeningPort(nat.Port("5432/tcp")),
			),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), username, password, database)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "connect to postgres container")
	require.NoError(t, gormRepo.Migrate(db), "migrate schema")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = container.Terminate(context.Background())
	})

	return &TestDatabase{
		Container: container,
		GormDB:    db,
		DSN:       dsn,
	}
}
