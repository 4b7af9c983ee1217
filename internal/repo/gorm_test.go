package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: gives every connection its own database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}))
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestGormRepoCreateAssignsID(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	first := models.Product{Name: "Widget", Price: 9.99}
	require.NoError(t, r.Create(ctx, &first))
	require.NotZero(t, first.ID)
	require.Equal(t, int64(1), first.Version)

	second := models.Product{Name: "Gadget", Price: 19.99}
	require.NoError(t, r.Create(ctx, &second))
	require.NotZero(t, second.ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestGormRepoGetByID(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	created := models.Product{Name: "Widget", Price: 9.99}
	require.NoError(t, r.Create(ctx, &created))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Widget", got.Name)
	require.Equal(t, 9.99, got.Price)

	_, err = r.GetByID(ctx, created.ID+100)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepoList(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	empty, err := r.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Len(t, empty, 0)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, r.Create(ctx, &models.Product{Name: name, Price: 1}))
	}

	products, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, "a", products[0].Name)
	require.Equal(t, "b", products[1].Name)
	require.Equal(t, "c", products[2].Name)
	require.Less(t, products[0].ID, products[1].ID)
	require.Less(t, products[1].ID, products[2].ID)
}

func TestGormRepoUpdate(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	product := models.Product{Name: "Widget", Price: 9.99}
	require.NoError(t, r.Create(ctx, &product))

	product.Name = "Widget v2"
	product.Price = 14.99
	require.NoError(t, r.Update(ctx, &product))
	require.Equal(t, int64(2), product.Version)

	got, err := r.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget v2", got.Name)
	require.Equal(t, 14.99, got.Price)
}

func TestGormRepoUpdateStaleVersion(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	product := models.Product{Name: "Widget", Price: 9.99}
	require.NoError(t, r.Create(ctx, &product))

	// two clients read the same state
	first, err := r.GetByID(ctx, product.ID)
	require.NoError(t, err)
	second, err := r.GetByID(ctx, product.ID)
	require.NoError(t, err)

	first.Price = 11
	require.NoError(t, r.Update(ctx, first))

	second.Price = 12
	require.ErrorIs(t, r.Update(ctx, second), ErrConflict)

	// the first write won
	got, err := r.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, float64(11), got.Price)
}

func TestGormRepoUpdateMissing(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	ghost := models.Product{ID: 42, Name: "Ghost", Price: 1, Version: 1}
	require.ErrorIs(t, r.Update(ctx, &ghost), ErrNotFound)
}

func TestGormRepoDelete(t *testing.T) {
	r := NewGormRepo(newTestDB(t))
	ctx := context.Background()

	product := models.Product{Name: "Widget", Price: 9.99}
	require.NoError(t, r.Create(ctx, &product))

	require.NoError(t, r.Delete(ctx, product.ID))

	_, err := r.GetByID(ctx, product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, r.Delete(ctx, product.ID), ErrNotFound)
}
