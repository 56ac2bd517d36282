package repository

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type ColorAttachmentRepository interface {
	Create(attachment *model.ColorAttachment) error
	FindByProduct(productID uint) ([]model.ColorAttachment, error)
	FindByID(id uint) (*model.ColorAttachment, error)
	FindPair(colorID, productID uint) (*model.ColorAttachment, error)
	Update(id, colorID, productID uint) error
	DeletePair(colorID, productID uint) error
	DeleteAllByProduct(productID uint) (int64, error)
	ParentsExist(colorID, productID uint) (colorExists, productExists bool, err error)
}

type colorAttachmentRepository struct {
	db *gorm.DB
}

func NewColorAttachmentRepository(db *gorm.DB) ColorAttachmentRepository {
	return &colorAttachmentRepository{db: db}
}

func (r *colorAttachmentRepository) Create(attachment *model.ColorAttachment) error {
	logger.Debug("Attaching color to product", map[string]interface{}{
		"color_id":   attachment.ColorID,
		"product_id": attachment.ProductID,
	})

	if err := r.db.Omit("Color", "Product").Create(attachment).Error; err != nil {
		logger.Error("Failed to attach color to product", err, map[string]interface{}{
			"color_id":   attachment.ColorID,
			"product_id": attachment.ProductID,
		})
		return err
	}
	return nil
}

func (r *colorAttachmentRepository) FindByProduct(productID uint) ([]model.ColorAttachment, error) {
	var attachments []model.ColorAttachment
	err := r.db.Preload("Color").
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&attachments).Error
	if err != nil {
		logger.Error("Failed to find color attachments", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return attachments, nil
}

func (r *colorAttachmentRepository) FindByID(id uint) (*model.ColorAttachment, error) {
	var attachment model.ColorAttachment
	if err := r.db.Preload("Color").First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *colorAttachmentRepository) FindPair(colorID, productID uint) (*model.ColorAttachment, error) {
	var attachment model.ColorAttachment
	err := r.db.Preload("Color").
		Where("color_id = ? AND product_id = ?", colorID, productID).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *colorAttachmentRepository) Update(id, colorID, productID uint) error {
	result := r.db.Model(&model.ColorAttachment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"color_id": colorID, "product_id": productID})
	if result.Error != nil {
		logger.Error("Failed to update color attachment", result.Error, map[string]interface{}{
			"attachment_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePair removes exactly one attachment, or reports not found
func (r *colorAttachmentRepository) DeletePair(colorID, productID uint) error {
	result := r.db.Where("color_id = ? AND product_id = ?", colorID, productID).Delete(&model.ColorAttachment{})
	if result.Error != nil {
		logger.Error("Failed to detach color from product", result.Error, map[string]interface{}{
			"color_id":   colorID,
			"product_id": productID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllByProduct detaches every color of the product and returns the count
func (r *colorAttachmentRepository) DeleteAllByProduct(productID uint) (int64, error) {
	result := r.db.Where("product_id = ?", productID).Delete(&model.ColorAttachment{})
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Error("Failed to detach all colors from product", result.Error, map[string]interface{}{
				"product_id": productID,
			})
		}
		return 0, result.Error
	}

	logger.Debug("Detached all colors from product", map[string]interface{}{
		"product_id": productID,
		"count":      result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// ParentsExist tells which side of a pair is missing after a foreign key failure
func (r *colorAttachmentRepository) ParentsExist(colorID, productID uint) (bool, bool, error) {
	var colors, products int64
	if err := r.db.Model(&model.Color{}).Where("id = ?", colorID).Count(&colors).Error; err != nil {
		return false, false, err
	}
	if err := r.db.Model(&model.Product{}).Where("id = ?", productID).Count(&products).Error; err != nil {
		return false, false, err
	}
	return colors > 0, products > 0, nil
}
