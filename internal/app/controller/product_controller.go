package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type updateProductRequest struct {
	ID uint `json:"id"`
	service.ProductPatch
}

// GetProducts lists products or returns one by ?id= or ?slug=
// GET /api/products
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, present, ok := optionalQueryID(c, "id")
	if !ok {
		return
	}
	if present {
		product, err := ctrl.productService.GetProduct(id)
		if err != nil {
			respondServiceError(c, err, "product")
			return
		}
		c.JSON(http.StatusOK, product)
		return
	}

	if slug := c.Query("slug"); slug != "" {
		product, err := ctrl.productService.GetProductBySlugOrID(slug)
		if err != nil {
			respondServiceError(c, err, "product")
			return
		}
		c.JSON(http.StatusOK, product)
		return
	}

	opts := service.ProductListOptions{Search: c.Query("q")}
	categoryID, hasCategory, ok := optionalQueryID(c, "categoryId")
	if !ok {
		return
	}
	if hasCategory {
		opts.CategoryID = &categoryID
	}

	products, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	log.Debug("Products fetched", map[string]interface{}{
		"count":       len(products),
		"category_id": opts.CategoryID,
	})
	c.JSON(http.StatusOK, products)
}

// CreateProduct creates a product
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.CreateProduct(req)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies the fields present in the body. categoryId null or "" clears the category.
// PATCH /api/products
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}

	product, err := ctrl.productService.UpdateProduct(req.ID, req.ProductPatch)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes the product with its photos, documents and attachments
// DELETE /api/products?id=
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
