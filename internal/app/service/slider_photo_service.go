package service

import (
	"errors"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

type SliderPhotoInput struct {
	Image     string `json:"image"`
	Name      string `json:"name"`
	Order     *int   `json:"order"`
	ProductID uint   `json:"productId"`
}

type SliderPhotoService interface {
	ListPhotos(productID *uint) ([]model.SliderPhoto, error)
	// CreatePhotos stores the batch in one transaction. A photo without an
	// explicit order gets its index in the batch.
	CreatePhotos(inputs []SliderPhotoInput) ([]model.SliderPhoto, error)
	UpdateOrder(id uint, order int) (*model.SliderPhoto, error)
	Reorder(productID uint, photoIDs []uint) ([]model.SliderPhoto, error)
	DeletePhoto(id uint) (*model.SliderPhoto, error)
}

type sliderPhotoService struct {
	photoRepo repository.SliderPhotoRepository
	events    EventPublisher
}

func NewSliderPhotoService(photoRepo repository.SliderPhotoRepository, events EventPublisher) SliderPhotoService {
	return &sliderPhotoService{
		photoRepo: photoRepo,
		events:    publisherOrNoop(events),
	}
}

type photoEvent struct {
	ID        uint `json:"id,omitempty"`
	ProductID uint `json:"productId"`
	Count     int  `json:"count,omitempty"`
}

func (s *sliderPhotoService) ListPhotos(productID *uint) ([]model.SliderPhoto, error) {
	return s.photoRepo.FindByProduct(productID)
}

func (s *sliderPhotoService) CreatePhotos(inputs []SliderPhotoInput) ([]model.SliderPhoto, error) {
	if len(inputs) == 0 {
		return nil, requiredError("photos")
	}

	photos := make([]model.SliderPhoto, 0, len(inputs))
	for i, in := range inputs {
		image := strings.TrimSpace(in.Image)
		if image == "" {
			return nil, requiredError("image")
		}
		if in.ProductID == 0 {
			return nil, requiredError("productId")
		}
		order := i
		if in.Order != nil {
			if *in.Order < 0 {
				return nil, invalidError("order", "must not be negative")
			}
			order = *in.Order
		}
		photos = append(photos, model.SliderPhoto{
			Image:     image,
			Name:      strings.TrimSpace(in.Name),
			Order:     order,
			ProductID: in.ProductID,
		})
	}

	if err := s.photoRepo.CreateBatch(photos); err != nil {
		return nil, translateStoreError(err, ErrSliderPhotoNotFound, "productId")
	}

	logger.Info("Slider photos created", map[string]interface{}{
		"count": len(photos),
	})
	s.events.Publish("slider_photo.created", photoEvent{ProductID: photos[0].ProductID, Count: len(photos)})
	return photos, nil
}

func (s *sliderPhotoService) UpdateOrder(id uint, order int) (*model.SliderPhoto, error) {
	if order < 0 {
		return nil, invalidError("order", "must not be negative")
	}
	if err := s.photoRepo.UpdateOrder(id, order); err != nil {
		return nil, translateStoreError(err, ErrSliderPhotoNotFound, "")
	}

	photo, err := s.photoRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrSliderPhotoNotFound, "")
	}
	s.events.Publish("slider_photo.updated", photoEvent{ID: id, ProductID: photo.ProductID})
	return photo, nil
}

// Reorder rewrites every photo's order to its index in photoIDs atomically
func (s *sliderPhotoService) Reorder(productID uint, photoIDs []uint) ([]model.SliderPhoto, error) {
	if productID == 0 {
		return nil, requiredError("productId")
	}
	if len(photoIDs) == 0 {
		return nil, requiredError("photoIds")
	}

	if err := s.photoRepo.Reorder(productID, photoIDs); err != nil {
		if errors.Is(err, repository.ErrOrderMismatch) {
			return nil, invalidError("photoIds", "must list every photo of the product exactly once")
		}
		return nil, err
	}

	logger.Info("Slider photos reordered", map[string]interface{}{
		"product_id": productID,
		"count":      len(photoIDs),
	})
	s.events.Publish("slider_photo.reordered", photoEvent{ProductID: productID, Count: len(photoIDs)})
	return s.photoRepo.FindByProduct(&productID)
}

// DeletePhoto removes the row; the image file is left to the upload API
func (s *sliderPhotoService) DeletePhoto(id uint) (*model.SliderPhoto, error) {
	photo, err := s.photoRepo.Delete(id)
	if err != nil {
		return nil, translateStoreError(err, ErrSliderPhotoNotFound, "")
	}

	logger.Info("Slider photo deleted", map[string]interface{}{
		"photo_id":   id,
		"product_id": photo.ProductID,
	})
	s.events.Publish("slider_photo.deleted", photoEvent{ID: id, ProductID: photo.ProductID})
	return photo, nil
}
