package repository

import (
	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type PdfAttachmentRepository interface {
	Create(pdf *model.PdfAttachment) error
	FindByProduct(productID uint) ([]model.PdfAttachment, error)
	FindByID(id uint) (*model.PdfAttachment, error)
	Delete(id uint) error
}

type pdfAttachmentRepository struct {
	db *gorm.DB
}

func NewPdfAttachmentRepository(db *gorm.DB) PdfAttachmentRepository {
	return &pdfAttachmentRepository{db: db}
}

func (r *pdfAttachmentRepository) Create(pdf *model.PdfAttachment) error {
	if err := r.db.Omit("Product").Create(pdf).Error; err != nil {
		logger.Error("Failed to create pdf attachment", err, map[string]interface{}{
			"product_id": pdf.ProductID,
			"file_url":   pdf.FileURL,
		})
		return err
	}
	return nil
}

func (r *pdfAttachmentRepository) FindByProduct(productID uint) ([]model.PdfAttachment, error) {
	var pdfs []model.PdfAttachment
	if err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Order("id DESC").Find(&pdfs).Error; err != nil {
		logger.Error("Failed to find pdf attachments", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return pdfs, nil
}

func (r *pdfAttachmentRepository) FindByID(id uint) (*model.PdfAttachment, error) {
	var pdf model.PdfAttachment
	if err := r.db.First(&pdf, id).Error; err != nil {
		return nil, err
	}
	return &pdf, nil
}

func (r *pdfAttachmentRepository) Delete(id uint) error {
	result := r.db.Delete(&model.PdfAttachment{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete pdf attachment", result.Error, map[string]interface{}{
			"pdf_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
