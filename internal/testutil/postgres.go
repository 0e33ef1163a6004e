// Package testutil provides test helpers including container management.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/config"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected pool,
// or fails the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// ApplyMigrations runs the schema creation SQL directly for tests.
// This avoids requiring the migrate tool in the test environment.
//
// Precondition: Pool must be connected.
// Postcondition: The engine tables exist in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	schema := `
		CREATE TABLE IF NOT EXISTS character_sheets (
			id           TEXT         PRIMARY KEY,
			name         VARCHAR(64)  NOT NULL UNIQUE,
			class        VARCHAR(32)  NOT NULL,
			level        INTEGER      NOT NULL DEFAULT 1,
			alignment    VARCHAR(16)  NOT NULL DEFAULT 'neutral',
			strength     INTEGER      NOT NULL,
			dexterity    INTEGER      NOT NULL,
			constitution INTEGER      NOT NULL,
			intelligence INTEGER      NOT NULL,
			wisdom       INTEGER      NOT NULL,
			charisma     INTEGER      NOT NULL,
			gold         INTEGER      NOT NULL DEFAULT 0,
			max_hp       INTEGER      NOT NULL,
			current_hp   INTEGER      NOT NULL,
			max_mana     INTEGER      NOT NULL,
			current_mana INTEGER      NOT NULL,
			created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS item_instances (
			instance_id   TEXT    PRIMARY KEY,
			template_id   TEXT    NOT NULL,
			location_kind TEXT    NOT NULL
				CHECK (location_kind IN ('pack', 'equipped', 'container', 'room')),
			character_id  TEXT,
			slot          TEXT,
			container_id  TEXT,
			room_id       TEXT,
			gold          INTEGER NOT NULL DEFAULT 0,
			closed        BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX IF NOT EXISTS idx_item_instances_character ON item_instances (character_id);
		CREATE INDEX IF NOT EXISTS idx_item_instances_container ON item_instances (container_id);

		CREATE TABLE IF NOT EXISTS ledger_totals (
			character_id TEXT    NOT NULL,
			kind         TEXT    NOT NULL,
			value        INTEGER NOT NULL,
			PRIMARY KEY (character_id, kind)
		);
	`

	_, err := pc.RawPool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
