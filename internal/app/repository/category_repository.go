package repository

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryFilter struct {
	Search string
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(filter CategoryFilter) ([]model.Category, error)
	FindByID(id uint, withProducts bool) (*model.Category, error)
	FindBySlugOrID(token string) (*model.Category, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	if err := r.db.Omit("Products").Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
			"slug": category.Slug,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
	})
	return nil
}

// FindAll returns categories newest first, each with its product count
func (r *categoryRepository) FindAll(filter CategoryFilter) ([]model.Category, error) {
	logger.Debug("Finding categories", map[string]interface{}{
		"search": filter.Search,
	})

	productCount := r.db.Model(&model.Product{}).
		Select("COUNT(*)").
		Where("products.category_id = categories.id")

	query := r.db.Model(&model.Category{}).
		Select("categories.*, (?) AS product_count", productCount)

	if filter.Search != "" {
		cond, args := containsAny(filter.Search, "categories.name", "categories.description", "categories.label")
		query = query.Where(cond, args...)
	}

	var categories []model.Category
	if err := query.Order("categories.created_at DESC").Order("categories.id DESC").Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories", err)
		return nil, err
	}

	logger.Debug("Categories found", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint, withProducts bool) (*model.Category, error) {
	query := r.db.Model(&model.Category{})
	if withProducts {
		query = query.Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.created_at DESC")
		})
	}

	var category model.Category
	if err := query.First(&category, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find category by ID", err, map[string]interface{}{
				"category_id": id,
			})
		}
		return nil, err
	}
	return &category, nil
}

// FindBySlugOrID tries the slug first and falls back to the numeric id
func (r *categoryRepository) FindBySlugOrID(token string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("slug = ?", token).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, ok := parseNumericID(token); ok {
			err = r.db.First(&category, id).Error
		}
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find category by slug", err, map[string]interface{}{
				"token": token,
			})
		}
		return nil, err
	}
	return &category, nil
}

// Update applies a partial column map. Zero affected rows means the id does not exist.
func (r *categoryRepository) Update(id uint, updates map[string]interface{}) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": id,
		"fields":      len(updates),
	})

	result := r.db.Model(&model.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update category in database", result.Error, map[string]interface{}{
			"category_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete detaches the category's products and removes the category in one
// transaction. It returns how many products were detached.
func (r *categoryRepository) Delete(id uint) (int64, error) {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	var detached int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).Where("category_id = ?", id).Update("category_id", nil)
		if res.Error != nil {
			return res.Error
		}
		detached = res.RowsAffected

		res = tx.Delete(&model.Category{}, id)
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
			logger.Error("Failed to delete category from database", err, map[string]interface{}{
				"category_id": id,
			})
		}
		return 0, err
	}

	logger.Debug("Category deleted from database", map[string]interface{}{
		"category_id":       id,
		"detached_products": detached,
	})
	return detached, nil
}
