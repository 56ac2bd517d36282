package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type updateCategoryRequest struct {
	ID uint `json:"id"`
	service.CategoryPatch
}

// GetCategories lists categories, or returns one by ?id= (with its products) or ?slug=
// GET /api/categories
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, present, ok := optionalQueryID(c, "id")
	if !ok {
		return
	}
	if present {
		category, err := ctrl.categoryService.GetCategory(id)
		if err != nil {
			respondServiceError(c, err, "category")
			return
		}
		c.JSON(http.StatusOK, category)
		return
	}

	if slug := c.Query("slug"); slug != "" {
		category, err := ctrl.categoryService.GetCategoryBySlugOrID(slug)
		if err != nil {
			respondServiceError(c, err, "category")
			return
		}
		c.JSON(http.StatusOK, category)
		return
	}

	categories, err := ctrl.categoryService.ListCategories(c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	log.Debug("Categories fetched", map[string]interface{}{
		"count": len(categories),
	})
	c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a category; the slug is derived from the name when blank
// POST /api/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req service.CategoryInput
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory applies the fields present in the body
// PATCH /api/categories
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(req.ID, req.CategoryPatch)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes the category and leaves its products uncategorized
// DELETE /api/categories?id=
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	detached, err := ctrl.categoryService.DeleteCategory(id)
	if err != nil {
		respondServiceError(c, err, "category")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Category deleted", map[string]interface{}{
		"category_id":       id,
		"detached_products": detached,
	})
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"detachedProducts": detached,
	})
}
