package service

import (
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

type ColorInput struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Label       string `json:"category"`
	Description string `json:"description"`
}

type ColorPatch struct {
	Name        *string `json:"name"`
	Image       *string `json:"image"`
	Label       *string `json:"category"`
	Description *string `json:"description"`
}

type ColorService interface {
	ListColors(search string) ([]model.Color, error)
	GetColor(id uint) (*model.Color, error)
	CreateColor(input ColorInput) (*model.Color, error)
	UpdateColor(id uint, patch ColorPatch) (*model.Color, error)
	DeleteColor(id uint) (int64, error)
}

type colorService struct {
	colorRepo repository.ColorRepository
	events    EventPublisher
}

func NewColorService(colorRepo repository.ColorRepository, events EventPublisher) ColorService {
	return &colorService{
		colorRepo: colorRepo,
		events:    publisherOrNoop(events),
	}
}

func (s *colorService) ListColors(search string) ([]model.Color, error) {
	return s.colorRepo.FindAll(search)
}

func (s *colorService) GetColor(id uint) (*model.Color, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrColorNotFound, "")
	}
	return color, nil
}

func (s *colorService) CreateColor(input ColorInput) (*model.Color, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, requiredError("name")
	}

	color := &model.Color{
		Name:        name,
		Image:       input.Image,
		Label:       input.Label,
		Description: input.Description,
	}
	if err := s.colorRepo.Create(color); err != nil {
		return nil, translateStoreError(err, ErrColorNotFound, "")
	}

	logger.Info("Color created", map[string]interface{}{
		"color_id": color.ID,
	})
	s.events.Publish("color.created", entityEvent{ID: color.ID})
	return color, nil
}

func (s *colorService) UpdateColor(id uint, patch ColorPatch) (*model.Color, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, requiredError("name")
		}
		updates["name"] = name
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Label != nil {
		updates["label"] = *patch.Label
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.colorRepo.Update(id, updates); err != nil {
			return nil, translateStoreError(err, ErrColorNotFound, "")
		}
		s.events.Publish("color.updated", entityEvent{ID: id})
	}
	return s.GetColor(id)
}

// DeleteColor removes the color and every attachment referencing it
func (s *colorService) DeleteColor(id uint) (int64, error) {
	detached, err := s.colorRepo.Delete(id)
	if err != nil {
		return 0, translateStoreError(err, ErrColorNotFound, "")
	}

	logger.Info("Color deleted", map[string]interface{}{
		"color_id":             id,
		"detached_attachments": detached,
	})
	s.events.Publish("color.deleted", entityEvent{ID: id})
	return detached, nil
}
