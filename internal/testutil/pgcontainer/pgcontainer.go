// Package pgcontainer поднимает PostgreSQL в testcontainers для интеграционных тестов
// и накатывает встроенные миграции.
package pgcontainer

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-VenueBookingService/migrations"
)

const image = "postgres:16-alpine"

// Start запускает контейнер, применяет миграции и возвращает подключение.
// Контейнер и подключение закрываются через t.Cleanup.
func Start(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("venue_booking"),
		postgres.WithUsername("venue"),
		postgres.WithPassword("venue"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "connection string")

	require.NoError(t, migrations.Up(connStr), "apply migrations")

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err, "open database")
	t.Cleanup(func() { _ = db.Close() })

	db.SetMaxOpenConns(20)
	require.NoError(t, db.PingContext(ctx), "ping database")

	return db
}
