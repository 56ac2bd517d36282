package controller

import (
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

func setupCategoryControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	router, testDB := setupControllerTest(t)

	ctrl := NewCategoryController(service.NewCategoryService(repository.NewCategoryRepository(testDB), nil))
	router.GET("/api/categories", ctrl.GetCategories)
	router.POST("/api/categories", ctrl.CreateCategory)
	router.PATCH("/api/categories", ctrl.UpdateCategory)
	router.DELETE("/api/categories", ctrl.DeleteCategory)

	return router, testDB
}

func TestCategoryController_CreateAndFetch(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	w := performJSON(t, router, http.MethodPost, "/api/categories", map[string]string{
		"name":     "Ворота",
		"category": "gates",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Category
	decodeBody(t, w, &created)
	assert.Equal(t, "vorota", created.Slug)
	assert.Equal(t, "gates", created.Label)

	w = performJSON(t, router, http.MethodGet, "/api/categories?slug=vorota", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bySlug model.Category
	decodeBody(t, w, &bySlug)
	assert.Equal(t, created.ID, bySlug.ID)

	w = performJSON(t, router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Category
	decodeBody(t, w, &list)
	assert.Len(t, list, 1)
}

func TestCategoryController_Errors(t *testing.T) {
	router, testDB := setupCategoryControllerTest(t)
	seedCategory(t, testDB, "Ворота", "vorota")

	tests := []struct {
		name       string
		method     string
		target     string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate slug",
			method:     http.MethodPost,
			target:     "/api/categories",
			body:       map[string]string{"name": "Ворота"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ResourceDuplicateSlug,
		},
		{
			name:       "missing name",
			method:     http.MethodPost,
			target:     "/api/categories",
			body:       map[string]string{"description": "без имени"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ValidationRequired,
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			target:     "/api/categories",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ValidationInvalidInput,
		},
		{
			name:       "malformed id",
			method:     http.MethodGet,
			target:     "/api/categories?id=abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ValidationInvalidID,
		},
		{
			name:       "unknown id",
			method:     http.MethodGet,
			target:     "/api/categories?id=999",
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.ResourceNotFound,
		},
		{
			name:       "patch without id",
			method:     http.MethodPatch,
			target:     "/api/categories",
			body:       map[string]string{"name": "Новое имя"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ValidationRequired,
		},
		{
			name:       "delete without id",
			method:     http.MethodDelete,
			target:     "/api/categories",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.ValidationRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decodeErrorBody(t, w).Error)
		})
	}
}

func TestCategoryController_UpdateAndDelete(t *testing.T) {
	router, testDB := setupCategoryControllerTest(t)
	category := seedCategory(t, testDB, "Ворота", "vorota")
	product := seedProduct(t, testDB, "Sectional", "sectional", &category.ID)

	w := performJSON(t, router, http.MethodPatch, "/api/categories", map[string]interface{}{
		"id":          category.ID,
		"description": "Секционные и откатные",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Category
	decodeBody(t, w, &updated)
	assert.Equal(t, "Секционные и откатные", updated.Description)
	assert.Equal(t, "vorota", updated.Slug)

	w = performJSON(t, router, http.MethodDelete, "/api/categories", map[string]uint{"id": category.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["detachedProducts"])

	var reloaded model.Product
	require.NoError(t, testDB.First(&reloaded, product.ID).Error)
	assert.Nil(t, reloaded.CategoryID)
}

func TestCategoryController_ValidationNamesField(t *testing.T) {
	router, _ := setupCategoryControllerTest(t)

	w := performJSON(t, router, http.MethodPost, "/api/categories", map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apperrors.ValidationError
	decodeBody(t, w, &resp)
	assert.Equal(t, apperrors.ValidationRequired, resp.Error)
	assert.Equal(t, map[string]string{"name": "is required"}, resp.Fields)
}
