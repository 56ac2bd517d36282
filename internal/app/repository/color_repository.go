package repository

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type ColorRepository interface {
	Create(color *model.Color) error
	FindAll(search string) ([]model.Color, error)
	FindByID(id uint) (*model.Color, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) (int64, error)
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(color *model.Color) error {
	if err := r.db.Create(color).Error; err != nil {
		logger.Error("Failed to create color in database", err, map[string]interface{}{
			"name": color.Name,
		})
		return err
	}
	logger.Debug("Color created in database", map[string]interface{}{
		"color_id": color.ID,
	})
	return nil
}

func (r *colorRepository) FindAll(search string) ([]model.Color, error) {
	query := r.db.Model(&model.Color{})
	if search != "" {
		cond, args := containsAny(search, "name", "label", "description")
		query = query.Where(cond, args...)
	}

	var colors []model.Color
	if err := query.Order("created_at DESC").Order("id DESC").Find(&colors).Error; err != nil {
		logger.Error("Failed to find colors", err)
		return nil, err
	}
	return colors, nil
}

func (r *colorRepository) FindByID(id uint) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find color by ID", err, map[string]interface{}{
				"color_id": id,
			})
		}
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) Update(id uint, updates map[string]interface{}) error {
	result := r.db.Model(&model.Color{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update color in database", result.Error, map[string]interface{}{
			"color_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the color together with its product attachments and
// returns how many attachments went with it.
func (r *colorRepository) Delete(id uint) (int64, error) {
	var detached int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("color_id = ?", id).Delete(&model.ColorAttachment{})
		if res.Error != nil {
			return res.Error
		}
		detached = res.RowsAffected

		res = tx.Delete(&model.Color{}, id)
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
			logger.Error("Failed to delete color from database", err, map[string]interface{}{
				"color_id": id,
			})
		}
		return 0, err
	}

	logger.Debug("Color deleted from database", map[string]interface{}{
		"color_id":             id,
		"detached_attachments": detached,
	})
	return detached, nil
}
