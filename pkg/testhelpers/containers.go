package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/auth"
	"github.com/SergeNasr/memoro/pkg/database"
)

// PostgresTestImage is the PostgreSQL image used for integration tests.
// pg_trgm ships with the contrib modules included in the official image.
const PostgresTestImage = "postgres:16-alpine"

// PlaceholderOwnerID is the owner seeded by the initial migration. All
// integration test data belongs to it.
var PlaceholderOwnerID = auth.PlaceholderOwnerID

// TestDB holds a shared test database container with migrations applied.
type TestDB struct {
	Container testcontainers.Container
	DB        *database.DB
	ConnStr   string
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared PostgreSQL container for integration tests.
// The container is created once, migrated, and reused across all tests in
// the run.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        PostgresTestImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "memoro_test",
			"POSTGRES_USER":     "memoro",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	connStr := fmt.Sprintf("postgres://memoro:test_password@%s:%s/memoro_test?sslmode=disable",
		host, port.Port())

	migrationsPath, err := findMigrationsDir()
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open sql connection: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, migrationsPath, zap.NewNop()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            connStr,
		MaxConnections: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDB{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

// findMigrationsDir walks up from this source file to the repository root.
func findMigrationsDir() (string, error) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to locate caller for migrations path")
	}

	dir := filepath.Dir(thisFile)
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found above %s", filepath.Dir(thisFile))
		}
		dir = parent
	}
}

// ScopedContext returns a context carrying a database scope from the shared
// pool, released when the test finishes.
func ScopedContext(t *testing.T, db *database.DB) context.Context {
	t.Helper()

	scope, err := db.AcquireScope(context.Background())
	if err != nil {
		t.Fatalf("Failed to acquire database scope: %v", err)
	}
	t.Cleanup(scope.Close)

	return database.SetScope(context.Background(), scope)
}

// ResetData truncates all owner data between tests, keeping the seeded
// placeholder owner.
func ResetData(t *testing.T, db *database.DB) {
	t.Helper()

	_, err := db.Exec(context.Background(), `TRUNCATE family_member, interaction, contact CASCADE`)
	if err != nil {
		t.Fatalf("Failed to reset test data: %v", err)
	}
}
