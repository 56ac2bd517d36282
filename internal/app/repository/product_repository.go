package repository

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductFilter struct {
	CategoryID *uint
	Search     string
	Limit      int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlugOrID(token string) (*model.Product, error)
	Search(term string, limit int) ([]model.Product, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"category_id": product.CategoryID,
	})

	if err := r.db.Omit("Category").Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"slug":        product.Slug,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).Preload("Category")
}

// FindAll returns products newest first with their category reference
func (r *productRepository) FindAll(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id": filter.CategoryID,
		"search":      filter.Search,
		"limit":       filter.Limit,
	})

	query := r.baseQuery()
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		cond, args := containsAny(filter.Search, "products.name", "products.description", "products.content")
		query = query.Where(cond, args...)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []model.Product
	if err := query.Order("products.created_at DESC").Order("products.id DESC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products", err)
		return nil, err
	}

	logger.Debug("Products found", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find product by ID", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlugOrID(token string) (*model.Product, error) {
	var product model.Product
	err := r.baseQuery().Where("products.slug = ?", token).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, ok := parseNumericID(token); ok {
			err = r.baseQuery().First(&product, id).Error
		}
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find product by slug", err, map[string]interface{}{
				"token": token,
			})
		}
		return nil, err
	}
	return &product, nil
}

// Search matches name and description only, as the storefront search box does
func (r *productRepository) Search(term string, limit int) ([]model.Product, error) {
	logger.Debug("Searching products", map[string]interface{}{
		"term":  term,
		"limit": limit,
	})

	cond, args := containsAny(term, "products.name", "products.description")
	var products []model.Product
	err := r.baseQuery().
		Where(cond, args...).
		Order("products.name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to search products", err, map[string]interface{}{
			"term": term,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(id uint, updates map[string]interface{}) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": id,
		"fields":     len(updates),
	})

	result := r.db.Model(&model.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update product in database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the product and every row that hangs off it in one transaction
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&model.SliderPhoto{},
			&model.PdfAttachment{},
			&model.ColorAttachment{},
			&model.AdvantageAttachment{},
		}
		for _, dep := range dependents {
			if err := tx.Where("product_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to delete product from database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
