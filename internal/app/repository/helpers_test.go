package repository

import (
	"strconv"
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createTestCategory(t *testing.T, testDB *gorm.DB, name, slug string) *model.Category {
	category := &model.Category{Name: name, Slug: slug}
	require.NoError(t, testDB.Omit("Products").Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, testDB *gorm.DB, name, slug string, categoryID *uint) *model.Product {
	product := &model.Product{Name: name, Slug: slug, CategoryID: categoryID}
	require.NoError(t, testDB.Omit("Category").Create(product).Error)
	return product
}

func uintPtr(v uint) *uint {
	return &v
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
