package service

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type ColorAttachmentService interface {
	ListAttachments(productID uint) ([]model.ColorAttachment, error)
	// Attach is idempotent: an existing pair is returned with created=false
	Attach(colorID, productID uint) (attachment *model.ColorAttachment, created bool, err error)
	UpdateAttachment(id, colorID, productID uint) (*model.ColorAttachment, error)
	Detach(colorID, productID uint) error
	DetachAll(productID uint) (int64, error)
}

type colorAttachmentService struct {
	attachmentRepo repository.ColorAttachmentRepository
	events         EventPublisher
}

func NewColorAttachmentService(attachmentRepo repository.ColorAttachmentRepository, events EventPublisher) ColorAttachmentService {
	return &colorAttachmentService{
		attachmentRepo: attachmentRepo,
		events:         publisherOrNoop(events),
	}
}

type attachmentEvent struct {
	ColorID   uint  `json:"colorId,omitempty"`
	ProductID uint  `json:"productId"`
	Count     int64 `json:"count,omitempty"`
}

func validatePair(colorID, productID uint) error {
	if colorID == 0 {
		return requiredError("colorId")
	}
	if productID == 0 {
		return requiredError("productId")
	}
	return nil
}

// storeError names the pair field whose parent row is missing
func (s *colorAttachmentService) storeError(err error, colorID, productID uint) error {
	if !apperrors.IsForeignKeyViolation(err) {
		return translateStoreError(err, ErrColorAttachmentNotFound, "")
	}
	colorExists, productExists, checkErr := s.attachmentRepo.ParentsExist(colorID, productID)
	switch {
	case checkErr != nil:
		return checkErr
	case !colorExists:
		return invalidError("colorId", "references a missing record")
	case !productExists:
		return invalidError("productId", "references a missing record")
	default:
		return err
	}
}

func (s *colorAttachmentService) ListAttachments(productID uint) ([]model.ColorAttachment, error) {
	if productID == 0 {
		return nil, requiredError("productId")
	}
	return s.attachmentRepo.FindByProduct(productID)
}

func (s *colorAttachmentService) Attach(colorID, productID uint) (*model.ColorAttachment, bool, error) {
	if err := validatePair(colorID, productID); err != nil {
		return nil, false, err
	}

	existing, err := s.attachmentRepo.FindPair(colorID, productID)
	if err == nil {
		logger.Debug("Color already attached", map[string]interface{}{
			"color_id":   colorID,
			"product_id": productID,
		})
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	attachment := &model.ColorAttachment{ColorID: colorID, ProductID: productID}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		// a concurrent attach won the unique index
		if apperrors.IsDuplicateKey(err) {
			existing, findErr := s.attachmentRepo.FindPair(colorID, productID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, s.storeError(err, colorID, productID)
	}

	logger.Info("Color attached to product", map[string]interface{}{
		"attachment_id": attachment.ID,
		"color_id":      colorID,
		"product_id":    productID,
	})
	s.events.Publish("color_attachment.created", attachmentEvent{ColorID: colorID, ProductID: productID})

	created, err := s.attachmentRepo.FindByID(attachment.ID)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *colorAttachmentService) UpdateAttachment(id, colorID, productID uint) (*model.ColorAttachment, error) {
	if id == 0 {
		return nil, requiredError("id")
	}
	if err := validatePair(colorID, productID); err != nil {
		return nil, err
	}

	if err := s.attachmentRepo.Update(id, colorID, productID); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateAttachment
		}
		return nil, s.storeError(err, colorID, productID)
	}
	s.events.Publish("color_attachment.updated", attachmentEvent{ColorID: colorID, ProductID: productID})

	attachment, err := s.attachmentRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrColorAttachmentNotFound, "")
	}
	return attachment, nil
}

func (s *colorAttachmentService) Detach(colorID, productID uint) error {
	if err := validatePair(colorID, productID); err != nil {
		return err
	}
	if err := s.attachmentRepo.DeletePair(colorID, productID); err != nil {
		return translateStoreError(err, ErrColorAttachmentNotFound, "")
	}

	logger.Info("Color detached from product", map[string]interface{}{
		"color_id":   colorID,
		"product_id": productID,
	})
	s.events.Publish("color_attachment.deleted", attachmentEvent{ColorID: colorID, ProductID: productID})
	return nil
}

// DetachAll removes every color from the product and reports how many rows went
func (s *colorAttachmentService) DetachAll(productID uint) (int64, error) {
	if productID == 0 {
		return 0, requiredError("productId")
	}
	count, err := s.attachmentRepo.DeleteAllByProduct(productID)
	if err != nil {
		return 0, err
	}

	logger.Info("All colors detached from product", map[string]interface{}{
		"product_id": productID,
		"count":      count,
	})
	if count > 0 {
		s.events.Publish("color_attachment.deleted", attachmentEvent{ProductID: productID, Count: count})
	}
	return count, nil
}
