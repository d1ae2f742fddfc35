package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/db"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalGormStore {
	t.Helper()
	gormDB, err := db.ConnectAndMigrate(filepath.Join(t.TempDir(), "nested", "local.db"))
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewLocalGormStore(gormDB)
}

func TestLocalGormStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, s.Put(ctx, "k", "v1"))
	require.NoError(t, s.Put(ctx, "k", "v2"))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestLocalCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	r := NewLocalCartRepository(s)

	_, err := r.LoadItems(ctx)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	items := []model.CartItem{
		{Book: model.BookRef{ID: 1, Title: "Go", Price: decimal.RequireFromString("12.50"), Image: "go.png"}, Quantity: 2},
		{Book: model.BookRef{ID: 2, Title: "Rust", Price: decimal.NewFromInt(30)}, Quantity: 1},
	}
	require.NoError(t, r.SaveItems(ctx, items))

	got, err := r.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range items {
		assert.Equal(t, items[i].Book.ID, got[i].Book.ID)
		assert.Equal(t, items[i].Book.Title, got[i].Book.Title)
		assert.Equal(t, items[i].Book.Image, got[i].Book.Image)
		assert.Equal(t, items[i].Quantity, got[i].Quantity)
		assert.True(t, items[i].Book.Price.Equal(got[i].Book.Price))
	}

	require.NoError(t, r.SaveItems(ctx, nil))
	got, err = r.LoadItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, r.ClearItems(ctx))
	_, err = r.LoadItems(ctx)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestLocalCartRepository_CorruptValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	r := NewLocalCartRepository(s)

	require.NoError(t, s.Put(ctx, CartItemsKey, `[{"book":`))

	_, err := r.LoadItems(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repo.ErrNotFound)
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepository(newTestStore(t))

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	exp := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	require.NoError(t, r.Save(ctx, model.Session{Token: "tok", Subject: "alice", Roles: []string{"user"}, ExpiresAt: exp}))

	s, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "alice", s.Subject)
	assert.Equal(t, []string{"user"}, s.Roles)
	assert.True(t, exp.Equal(s.ExpiresAt))

	require.NoError(t, r.Delete(ctx))
	_, err = r.Load(ctx)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
