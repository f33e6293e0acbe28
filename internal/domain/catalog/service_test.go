package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}))
	return NewService(db, &config.Config{})
}

func TestCreateAndGetProduct(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &CreateProductRequest{
		Name:     "Classic Tee",
		Price:    2999,
		Image:    "https://img/tee.jpg",
		Category: "shirts",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "id is assigned on create")
	assert.True(t, created.IsActive)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", got.Name)
	assert.Equal(t, int64(2999), got.Price)
}

func TestGetUnknownProduct(t *testing.T) {
	s := newTestService(t)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersInactiveAndByCategory(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	shirt, err := s.Create(ctx, &CreateProductRequest{Name: "Tee", Price: 1000, Category: "shirts"})
	require.NoError(t, err)
	_, err = s.Create(ctx, &CreateProductRequest{Name: "Mug", Price: 500, Category: "mugs"})
	require.NoError(t, err)

	hidden := false
	_, err = s.Update(ctx, shirt.ID, &UpdateProductRequest{IsActive: &hidden})
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Mug", all[0].Name)

	shirts, err := s.List(ctx, "shirts")
	require.NoError(t, err)
	assert.Empty(t, shirts, "deactivated products are not listed")
}

func TestUpdatePartialFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	p, err := s.Create(ctx, &CreateProductRequest{Name: "Tee", Price: 1000, Category: "shirts"})
	require.NoError(t, err)

	newPrice := int64(1500)
	updated, err := s.Update(ctx, p.ID, &UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), updated.Price)
	assert.Equal(t, "Tee", updated.Name, "unsupplied fields keep their value")

	bad := int64(-1)
	_, err = s.Update(ctx, p.ID, &UpdateProductRequest{Price: &bad})
	assert.Error(t, err)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	p, err := s.Create(ctx, &CreateProductRequest{Name: "Tee", Price: 1000})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)
}
