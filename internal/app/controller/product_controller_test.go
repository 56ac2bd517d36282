package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	router, testDB := setupControllerTest(t)

	productService := service.NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewPdfAttachmentRepository(testDB),
		nil,
		nil,
	)
	ctrl := NewProductController(productService)
	router.GET("/api/products", ctrl.GetProducts)
	router.POST("/api/products", ctrl.CreateProduct)
	router.PATCH("/api/products", ctrl.UpdateProduct)
	router.DELETE("/api/products", ctrl.DeleteProduct)

	return router, testDB
}

func TestProductController_CreateWithStringCategoryID(t *testing.T) {
	router, testDB := setupProductControllerTest(t)
	category := seedCategory(t, testDB, "Ворота", "vorota")

	w := performJSON(t, router, http.MethodPost, "/api/products",
		fmt.Sprintf(`{"name":"Секционные ворота RSD01","categoryId":"%d","specs":[{"name":"Ширина","value":"5000","unit":"мм"}]}`, category.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product model.Product
	decodeBody(t, w, &product)
	assert.Equal(t, "sektsionnye-vorota-rsd01", product.Slug)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)
	require.Len(t, product.Specs, 1)
	assert.Equal(t, "мм", product.Specs[0].Unit)
}

func TestProductController_PatchCategoryTriState(t *testing.T) {
	router, testDB := setupProductControllerTest(t)
	category := seedCategory(t, testDB, "Ворота", "vorota")
	product := seedProduct(t, testDB, "Sectional", "sectional", &category.ID)

	// absent categoryId leaves the category alone
	w := performJSON(t, router, http.MethodPatch, "/api/products",
		fmt.Sprintf(`{"id":%d,"description":"Тёплые"}`, product.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Product
	decodeBody(t, w, &updated)
	require.NotNil(t, updated.CategoryID)

	w = performJSON(t, router, http.MethodPatch, "/api/products",
		fmt.Sprintf(`{"id":%d,"categoryId":null}`, product.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated = model.Product{}
	decodeBody(t, w, &updated)
	assert.Nil(t, updated.CategoryID)
	assert.Equal(t, "Тёплые", updated.Description)
}

func TestProductController_ListFilters(t *testing.T) {
	router, testDB := setupProductControllerTest(t)
	gates := seedCategory(t, testDB, "Ворота", "vorota")
	seedProduct(t, testDB, "Sectional gate", "sectional-gate", &gates.ID)
	seedProduct(t, testDB, "Barrier", "barrier", nil)

	w := performJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products?categoryId=%d", gates.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byCategory []model.Product
	decodeBody(t, w, &byCategory)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "sectional-gate", byCategory[0].Slug)
	require.NotNil(t, byCategory[0].Category)
	assert.Equal(t, "Ворота", byCategory[0].Category.Name)

	w = performJSON(t, router, http.MethodGet, "/api/products?q=barr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bySearch []model.Product
	decodeBody(t, w, &bySearch)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "barrier", bySearch[0].Slug)

	w = performJSON(t, router, http.MethodGet, "/api/products?slug=barrier", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodGet, "/api/products?categoryId=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_Delete(t *testing.T) {
	router, testDB := setupProductControllerTest(t)
	product := seedProduct(t, testDB, "Barrier", "barrier", nil)
	require.NoError(t, testDB.Create(&model.SliderPhoto{Image: "/img/upload/a.jpg", ProductID: product.ID}).Error)

	w := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products?id=%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var photos int64
	testDB.Model(&model.SliderPhoto{}).Count(&photos)
	assert.Zero(t, photos)

	w = performJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products?id=%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourceNotFound, decodeErrorBody(t, w).Error)
}
