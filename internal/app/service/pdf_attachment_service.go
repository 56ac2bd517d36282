package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

type PdfAttachmentService interface {
	ListAttachments(productID uint) ([]model.PdfAttachment, error)
	// UploadAttachment stores the file and records it; the file is removed
	// again when the record cannot be created.
	UploadAttachment(ctx context.Context, file *multipart.FileHeader, title string, productID uint) (*model.PdfAttachment, error)
	// DeleteAttachment removes the backing file, then the record
	DeleteAttachment(ctx context.Context, id uint) error
}

type pdfAttachmentService struct {
	pdfRepo repository.PdfAttachmentRepository
	uploads UploadService
	events  EventPublisher
}

func NewPdfAttachmentService(pdfRepo repository.PdfAttachmentRepository, uploads UploadService, events EventPublisher) PdfAttachmentService {
	return &pdfAttachmentService{
		pdfRepo: pdfRepo,
		uploads: uploads,
		events:  publisherOrNoop(events),
	}
}

func (s *pdfAttachmentService) ListAttachments(productID uint) ([]model.PdfAttachment, error) {
	if productID == 0 {
		return nil, requiredError("productId")
	}
	return s.pdfRepo.FindByProduct(productID)
}

func (s *pdfAttachmentService) UploadAttachment(ctx context.Context, file *multipart.FileHeader, title string, productID uint) (*model.PdfAttachment, error) {
	if file == nil {
		return nil, ErrNoFile
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, requiredError("title")
	}
	if productID == 0 {
		return nil, requiredError("productId")
	}

	fileURL, err := s.uploads.UploadPDF(ctx, file)
	if err != nil {
		return nil, err
	}

	pdf := &model.PdfAttachment{
		Title:     title,
		FileURL:   fileURL,
		ProductID: productID,
	}
	if err := s.pdfRepo.Create(pdf); err != nil {
		if rmErr := s.uploads.DeleteFile(ctx, fileURL); rmErr != nil {
			logger.Error("Failed to roll back PDF upload", rmErr, map[string]interface{}{
				"file_url": fileURL,
			})
		}
		return nil, translateStoreError(err, ErrPdfAttachmentNotFound, "productId")
	}

	logger.Info("PDF attachment created", map[string]interface{}{
		"pdf_id":     pdf.ID,
		"product_id": productID,
		"file_url":   fileURL,
	})
	s.events.Publish("pdf_attachment.created", entityEvent{ID: pdf.ID})
	return pdf, nil
}

func (s *pdfAttachmentService) DeleteAttachment(ctx context.Context, id uint) error {
	pdf, err := s.pdfRepo.FindByID(id)
	if err != nil {
		return translateStoreError(err, ErrPdfAttachmentNotFound, "")
	}

	if pdf.FileURL != "" {
		// rows pointing outside the upload directories only lose the record
		if err := s.uploads.DeleteFile(ctx, pdf.FileURL); err != nil && !errors.Is(err, ErrInvalidPath) {
			return err
		}
	}
	if err := s.pdfRepo.Delete(id); err != nil {
		return translateStoreError(err, ErrPdfAttachmentNotFound, "")
	}

	logger.Info("PDF attachment deleted", map[string]interface{}{
		"pdf_id":   id,
		"file_url": pdf.FileURL,
	})
	s.events.Publish("pdf_attachment.deleted", entityEvent{ID: id})
	return nil
}
