package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGORMRepository(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	// A named in-memory database per test keeps tests isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repositories.NewGORMProductRepository(db)
}

// repositoryContract runs the same behaviour checks against every implementation.
func repositoryContract(t *testing.T, newRepo func(t *testing.T) repositories.ProductRepository) {
	ctx := context.Background()

	t.Run("CreateAssignsIDAndGetByIDFindsIt", func(t *testing.T) {
		repo := newRepo(t)
		product := &models.Product{Name: "Iphone999", Category: "smartphone", Price: 99.12, Stock: 10}

		require.NoError(t, repo.Create(ctx, product))
		assert.NotEmpty(t, product.ID)

		found, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		assert.Equal(t, "Iphone999", found.Name)
		assert.Equal(t, "smartphone", found.Category)
		assert.Equal(t, 99.12, found.Price)
		assert.Equal(t, 10.0, found.Stock)
	})

	t.Run("GetAllKeepsInsertionOrder", func(t *testing.T) {
		repo := newRepo(t)
		empty, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		names := []string{"first", "second", "third"}
		for _, name := range names {
			require.NoError(t, repo.Create(ctx, &models.Product{Name: name, Category: "misc", Price: 1, Stock: 1}))
		}

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		for i, name := range names {
			assert.Equal(t, name, products[i].Name)
		}
	})

	t.Run("GetByIDUnknown", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, "999999999999999999999")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})

	t.Run("UpdateMergesChanges", func(t *testing.T) {
		repo := newRepo(t)
		product := &models.Product{Name: "Iphone999", Category: "smartphone", Price: 99.12, Stock: 10}
		require.NoError(t, repo.Create(ctx, product))

		name := "Iphone1000"
		stock := 0.0
		updated, err := repo.Update(ctx, product.ID, models.ProductChanges{Name: &name, Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, product.ID, updated.ID)
		assert.Equal(t, "Iphone1000", updated.Name)
		assert.Equal(t, "smartphone", updated.Category)
		assert.Equal(t, 99.12, updated.Price)
		assert.Equal(t, 0.0, updated.Stock)

		stored, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Iphone1000", stored.Name)
		assert.Equal(t, 0.0, stored.Stock)
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		repo := newRepo(t)
		name := "ghost"
		_, err := repo.Update(ctx, "missing", models.ProductChanges{Name: &name})
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})

	t.Run("DeleteReturnsSnapshotOnce", func(t *testing.T) {
		repo := newRepo(t)
		product := &models.Product{Name: "Iphone999", Category: "smartphone", Price: 99.12, Stock: 10}
		require.NoError(t, repo.Create(ctx, product))

		deleted, err := repo.Delete(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, deleted.ID)
		assert.Equal(t, "Iphone999", deleted.Name)

		_, err = repo.GetByID(ctx, product.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)

		_, err = repo.Delete(ctx, product.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}

func TestGORMProductRepository(t *testing.T) {
	repositoryContract(t, func(t *testing.T) repositories.ProductRepository {
		return newGORMRepository(t)
	})
}

func TestMockProductRepository(t *testing.T) {
	repositoryContract(t, func(t *testing.T) repositories.ProductRepository {
		return repositories.NewMockProductRepository()
	})
}
