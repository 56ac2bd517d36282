package repository

import (
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestProductRepository_CreateWithSpecs(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewProductRepository(testDB)
	category := createTestCategory(t, testDB, "Gates", "gates")

	product := &model.Product{
		Name:       "RSD01",
		Slug:       "rsd01",
		CategoryID: &category.ID,
		Specs: datatypes.NewJSONSlice([]model.ProductSpec{
			{Name: "Width", Value: "5000", Unit: "mm"},
			{Name: "Drive", Value: "Shaft"},
		}),
	}
	require.NoError(t, repo.Create(product))
	assert.NotZero(t, product.ID)

	found, err := repo.FindBySlugOrID("rsd01")
	require.NoError(t, err)
	require.Len(t, found.Specs, 2)
	assert.Equal(t, "mm", found.Specs[0].Unit)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Gates", found.Category.Name)
	assert.Equal(t, category.ID, found.Category.ID)
}

func TestProductRepository_FindAllFilters(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewProductRepository(testDB)

	gates := createTestCategory(t, testDB, "Gates", "gates")
	createTestProduct(t, testDB, "Sectional gate", "sectional-gate", &gates.ID)
	createTestProduct(t, testDB, "Barrier", "barrier", nil)
	require.NoError(t, testDB.Model(&model.Product{}).Where("slug = ?", "barrier").
		Update("content", "<p>works with 100% of gates</p>").Error)

	all, err := repo.FindAll(ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := repo.FindAll(ProductFilter{CategoryID: &gates.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "sectional-gate", byCategory[0].Slug)

	bySearch, err := repo.FindAll(ProductFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "barrier", bySearch[0].Slug)

	wildcard, err := repo.FindAll(ProductFilter{Search: "%"})
	require.NoError(t, err)
	assert.Len(t, wildcard, 1, "percent is matched literally")
}

func TestProductRepository_SearchLimit(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewProductRepository(testDB)

	for i := 0; i < 12; i++ {
		createTestProduct(t, testDB, "Gate "+uintToString(uint(i)), "gate-"+uintToString(uint(i)), nil)
	}

	results, err := repo.Search("gate", 10)
	require.NoError(t, err)
	assert.Len(t, results, 10)

	none, err := repo.Search("zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepository_UpdateClearsCategory(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewProductRepository(testDB)
	category := createTestCategory(t, testDB, "Gates", "gates")
	product := createTestProduct(t, testDB, "Sectional", "sectional", &category.ID)

	require.NoError(t, repo.Update(product.ID, map[string]interface{}{"category_id": nil}))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)
	assert.Nil(t, found.Category)
}

func TestProductRepository_DeleteCascades(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewProductRepository(testDB)
	product := createTestProduct(t, testDB, "Sectional", "sectional", nil)

	color := &model.Color{Name: "RAL 9016"}
	require.NoError(t, testDB.Create(color).Error)
	advantage := &model.Advantage{Text: "Warm"}
	require.NoError(t, testDB.Omit("Attachments").Create(advantage).Error)

	require.NoError(t, testDB.Omit("Color", "Product").Create(&model.ColorAttachment{ColorID: color.ID, ProductID: product.ID}).Error)
	require.NoError(t, testDB.Omit("Product").Create(&model.SliderPhoto{Image: "/img/upload/a.jpg", ProductID: product.ID}).Error)
	require.NoError(t, testDB.Omit("Product").Create(&model.PdfAttachment{Title: "Manual", FileURL: "/pdf/a.pdf", ProductID: product.ID}).Error)
	require.NoError(t, testDB.Omit("Product").Create(&model.AdvantageAttachment{AdvantageID: advantage.ID, ProductID: product.ID}).Error)

	require.NoError(t, repo.Delete(product.ID))

	for _, m := range []interface{}{&model.ColorAttachment{}, &model.SliderPhoto{}, &model.PdfAttachment{}, &model.AdvantageAttachment{}} {
		var count int64
		testDB.Model(m).Count(&count)
		assert.Zero(t, count)
	}

	var colors int64
	testDB.Model(&model.Color{}).Count(&colors)
	assert.Equal(t, int64(1), colors)

	assert.ErrorIs(t, repo.Delete(product.ID), gorm.ErrRecordNotFound)
}
