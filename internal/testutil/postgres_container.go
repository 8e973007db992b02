//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "chembl"
	postgresPassword = "chembl"
	postgresDB       = "chembl_test"
)

// StartPostgres launches a disposable PostgreSQL container and returns the
// connection settings for it. The container is terminated on test cleanup.
// Tests are skipped in -short mode.
func StartPostgres(t *testing.T) postgres.PostgresConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return postgres.PostgresConfig{
		Host:     host,
		Port:     port.Int(),
		Database: postgresDB,
		Username: postgresUser,
		Password: postgresPassword,
		SSLMode:  "disable",
		PoolSize: 2,
	}
}

//Personal.AI order the ending
