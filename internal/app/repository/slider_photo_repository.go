package repository

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrOrderMismatch is returned by Reorder when the ids are not a permutation
// of the product's photos.
var ErrOrderMismatch = errors.New("photo ids do not match the product's photos")

type SliderPhotoRepository interface {
	CreateBatch(photos []model.SliderPhoto) error
	FindByProduct(productID *uint) ([]model.SliderPhoto, error)
	FindByID(id uint) (*model.SliderPhoto, error)
	UpdateOrder(id uint, order int) error
	Reorder(productID uint, photoIDs []uint) error
	Delete(id uint) (*model.SliderPhoto, error)
}

type sliderPhotoRepository struct {
	db *gorm.DB
}

func NewSliderPhotoRepository(db *gorm.DB) SliderPhotoRepository {
	return &sliderPhotoRepository{db: db}
}

// CreateBatch inserts all photos or none
func (r *sliderPhotoRepository) CreateBatch(photos []model.SliderPhoto) error {
	logger.Debug("Creating slider photos", map[string]interface{}{
		"count": len(photos),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range photos {
			if err := tx.Omit("Product").Create(&photos[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create slider photos", err, map[string]interface{}{
			"count": len(photos),
		})
		return err
	}
	return nil
}

// FindByProduct lists photos in display order; nil productID lists every photo
func (r *sliderPhotoRepository) FindByProduct(productID *uint) ([]model.SliderPhoto, error) {
	query := r.db.Model(&model.SliderPhoto{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}

	var photos []model.SliderPhoto
	if err := query.Clauses(byDisplayOrder()).Find(&photos).Error; err != nil {
		logger.Error("Failed to find slider photos", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return photos, nil
}

func (r *sliderPhotoRepository) FindByID(id uint) (*model.SliderPhoto, error) {
	var photo model.SliderPhoto
	if err := r.db.First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *sliderPhotoRepository) UpdateOrder(id uint, order int) error {
	result := r.db.Model(&model.SliderPhoto{}).Where("id = ?", id).Update("order", order)
	if result.Error != nil {
		logger.Error("Failed to update slider photo order", result.Error, map[string]interface{}{
			"photo_id": id,
			"order":    order,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reorder rewrites every photo's order to its index in photoIDs inside one
// transaction, so orders end up exactly 0..N-1.
func (r *sliderPhotoRepository) Reorder(productID uint, photoIDs []uint) error {
	logger.Debug("Reordering slider photos", map[string]interface{}{
		"product_id": productID,
		"count":      len(photoIDs),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current []uint
		if err := tx.Model(&model.SliderPhoto{}).Where("product_id = ?", productID).Pluck("id", &current).Error; err != nil {
			return err
		}
		if !samePhotoSet(current, photoIDs) {
			return ErrOrderMismatch
		}

		for idx, id := range photoIDs {
			if err := tx.Model(&model.SliderPhoto{}).Where("id = ?", id).Update("order", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrOrderMismatch) {
		logger.Error("Failed to reorder slider photos", err, map[string]interface{}{
			"product_id": productID,
		})
	}
	return err
}

// Delete removes one photo and closes the gap it leaves in its product's order.
// The deleted row is returned so the caller can drop the image file.
func (r *sliderPhotoRepository) Delete(id uint) (*model.SliderPhoto, error) {
	var photo model.SliderPhoto
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&photo, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.SliderPhoto{}, id).Error; err != nil {
			return err
		}

		var remaining []model.SliderPhoto
		if err := tx.Where("product_id = ?", photo.ProductID).Clauses(byDisplayOrder()).Find(&remaining).Error; err != nil {
			return err
		}
		for idx, p := range remaining {
			if p.Order == idx {
				continue
			}
			if err := tx.Model(&model.SliderPhoto{}).Where("id = ?", p.ID).Update("order", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to delete slider photo", err, map[string]interface{}{
				"photo_id": id,
			})
		}
		return nil, err
	}
	return &photo, nil
}

func samePhotoSet(current, requested []uint) bool {
	if len(current) != len(requested) {
		return false
	}
	seen := make(map[uint]bool, len(current))
	for _, id := range current {
		seen[id] = false
	}
	for _, id := range requested {
		used, ok := seen[id]
		if !ok || used {
			return false
		}
		seen[id] = true
	}
	return true
}
