package repo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
	"github.com/rogerio-castellano/cart-tracker/internal/repo"
)

func ptr[T any](v T) *T { return &v }

func seedLogs(t *testing.T, r repo.ActionLogRepository, sessionID string, base time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, r.Log(models.ActionLog{
			SessionID: sessionID,
			Kind:      "ADD_ITEM",
			ProductID: 1,
			Total:     float64(10 * (i + 1)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		}))
	}
}

func TestInMemoryActionLogRepository_GetBySession(t *testing.T) {
	r := repo.NewInMemoryActionLogRepository()
	base := time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	seedLogs(t, r, "a", base, 5)
	seedLogs(t, r, "b", base, 2)

	all, total, err := r.GetBySession("a", repo.ActionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, all, 5)
	assert.Equal(t, 10.0, all[0].Total)
	assert.Equal(t, 50.0, all[4].Total)
	for _, e := range all {
		assert.Equal(t, "a", e.SessionID)
	}

	tests := []struct {
		name      string
		filter    repo.ActionFilter
		wantLen   int
		wantTotal int
	}{
		{"since", repo.ActionFilter{Since: ptr(base.Add(2 * time.Hour))}, 3, 3},
		{"until", repo.ActionFilter{Until: ptr(base.Add(time.Hour))}, 2, 2},
		{"range", repo.ActionFilter{Since: ptr(base.Add(time.Hour)), Until: ptr(base.Add(3 * time.Hour))}, 3, 3},
		{"limit", repo.ActionFilter{Limit: ptr(2)}, 2, 5},
		{"offset", repo.ActionFilter{Offset: ptr(3)}, 2, 5},
		{"offset and limit", repo.ActionFilter{Offset: ptr(1), Limit: ptr(2)}, 2, 5},
		{"offset past end", repo.ActionFilter{Offset: ptr(10)}, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := r.GetBySession("a", tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestInMemoryActionLogRepository_PageSizeIsCapped(t *testing.T) {
	r := repo.NewInMemoryActionLogRepository()
	seedLogs(t, r, "a", time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC), repo.MaxLimit+50)

	for _, limit := range []*int{nil, ptr(500)} {
		got, total, err := r.GetBySession("a", repo.ActionFilter{Limit: limit})
		require.NoError(t, err)
		assert.Len(t, got, repo.MaxLimit)
		assert.Equal(t, repo.MaxLimit+50, total)
	}

	rest, _, err := r.GetBySession("a", repo.ActionFilter{Offset: ptr(repo.MaxLimit)})
	require.NoError(t, err)
	assert.Len(t, rest, 50)
}

func TestInMemoryActionLogRepository_AssignsIDsAndTimestamps(t *testing.T) {
	r := repo.NewInMemoryActionLogRepository()
	require.NoError(t, r.Log(models.ActionLog{SessionID: "s", Kind: "CLEAR_CART"}))
	require.NoError(t, r.Log(models.ActionLog{SessionID: "s", Kind: "CLEAR_CART"}))

	got, _, err := r.GetBySession("s", repo.ActionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	_, err = time.Parse(time.RFC3339, got[0].CreatedAt)
	assert.NoError(t, err)

	r.Clear()
	got, total, err := r.GetBySession("s", repo.ActionFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
