package repo_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/cart-tracker/internal/db"
	"github.com/rogerio-castellano/cart-tracker/internal/repo"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	database, err := db.Connect(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.Migrate(ctx, database))
	return database
}

func TestPostgresProductRepository(t *testing.T) {
	database := openTestDB(t)
	r := repo.NewPostgresProductRepository(database)

	require.NoError(t, r.Seed(repo.DefaultCatalog()))
	require.NoError(t, r.Seed(repo.DefaultCatalog()))

	p, err := r.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Product 1", p.Name)
	assert.Equal(t, 10.0, p.Price)

	all, err := r.GetAll()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 3)

	_, err = r.GetByID(-1)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestPostgresActionLogRepository(t *testing.T) {
	database := openTestDB(t)
	r := repo.NewPostgresActionLogRepository(database)
	sessionID := uuid.NewString()
	base := time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	seedLogs(t, r, sessionID, base, 4)

	all, total, err := r.GetBySession(sessionID, repo.ActionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, all, 4)
	assert.Equal(t, 10.0, all[0].Total)
	assert.Equal(t, base.Format(time.RFC3339), all[0].CreatedAt)

	page, total, err := r.GetBySession(sessionID, repo.ActionFilter{Since: ptr(base.Add(time.Hour)), Limit: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	_, total, err = r.GetBySession(sessionID, repo.ActionFilter{Offset: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestPostgresActionLogRepository_PageSizeIsCapped(t *testing.T) {
	database := openTestDB(t)
	r := repo.NewPostgresActionLogRepository(database)
	sessionID := uuid.NewString()
	seedLogs(t, r, sessionID, time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC), repo.MaxLimit+50)

	for _, limit := range []*int{nil, ptr(500)} {
		got, total, err := r.GetBySession(sessionID, repo.ActionFilter{Limit: limit})
		require.NoError(t, err)
		assert.Len(t, got, repo.MaxLimit)
		assert.Equal(t, repo.MaxLimit+50, total)
	}

	rest, _, err := r.GetBySession(sessionID, repo.ActionFilter{Offset: ptr(repo.MaxLimit)})
	require.NoError(t, err)
	assert.Len(t, rest, 50)
}
