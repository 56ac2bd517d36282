package service

import (
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

type AdvantageInput struct {
	Image      string `json:"image"`
	Text       string `json:"text"`
	Order      *int   `json:"order"`
	ProductIDs []uint `json:"productIds"`
}

// AdvantagePatch replaces the attachment set only when ProductIDs is present
type AdvantagePatch struct {
	Image      *string `json:"image"`
	Text       *string `json:"text"`
	Order      *int    `json:"order"`
	ProductIDs *[]uint `json:"productIds"`
}

type AdvantageService interface {
	ListAdvantages(productID *uint) ([]model.Advantage, error)
	CreateAdvantages(inputs []AdvantageInput) ([]model.Advantage, error)
	UpdateAdvantage(id uint, patch AdvantagePatch) (*model.Advantage, error)
	DeleteAdvantage(id uint) error
}

type advantageService struct {
	advantageRepo repository.AdvantageRepository
	events        EventPublisher
}

func NewAdvantageService(advantageRepo repository.AdvantageRepository, events EventPublisher) AdvantageService {
	return &advantageService{
		advantageRepo: advantageRepo,
		events:        publisherOrNoop(events),
	}
}

func (s *advantageService) ListAdvantages(productID *uint) ([]model.Advantage, error) {
	return s.advantageRepo.FindAll(productID)
}

func (s *advantageService) CreateAdvantages(inputs []AdvantageInput) ([]model.Advantage, error) {
	if len(inputs) == 0 {
		return nil, requiredError("advantages")
	}

	advantages := make([]model.Advantage, 0, len(inputs))
	for i, in := range inputs {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return nil, requiredError("text")
		}
		order := i
		if in.Order != nil {
			order = *in.Order
		}
		advantages = append(advantages, model.Advantage{
			Image:      strings.TrimSpace(in.Image),
			Text:       text,
			Order:      order,
			ProductIDs: in.ProductIDs,
		})
	}

	if err := s.advantageRepo.CreateBatch(advantages); err != nil {
		return nil, translateStoreError(err, ErrAdvantageNotFound, "productIds")
	}

	logger.Info("Advantages created", map[string]interface{}{
		"count": len(advantages),
	})
	for _, adv := range advantages {
		s.events.Publish("advantage.created", entityEvent{ID: adv.ID})
	}
	return advantages, nil
}

func (s *advantageService) UpdateAdvantage(id uint, patch AdvantagePatch) (*model.Advantage, error) {
	updates := map[string]interface{}{}
	if patch.Image != nil {
		updates["image"] = strings.TrimSpace(*patch.Image)
	}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, requiredError("text")
		}
		updates["text"] = text
	}
	if patch.Order != nil {
		updates["order"] = *patch.Order
	}

	var productIDs []uint
	if patch.ProductIDs != nil {
		productIDs = *patch.ProductIDs
	}

	if err := s.advantageRepo.Update(id, updates, productIDs, patch.ProductIDs != nil); err != nil {
		return nil, translateStoreError(err, ErrAdvantageNotFound, "productIds")
	}

	logger.Info("Advantage updated", map[string]interface{}{
		"advantage_id":     id,
		"fields":           len(updates),
		"replace_products": patch.ProductIDs != nil,
	})
	s.events.Publish("advantage.updated", entityEvent{ID: id})

	advantage, err := s.advantageRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrAdvantageNotFound, "")
	}
	return advantage, nil
}

// DeleteAdvantage removes the advantage together with its product attachments
func (s *advantageService) DeleteAdvantage(id uint) error {
	if err := s.advantageRepo.Delete(id); err != nil {
		return translateStoreError(err, ErrAdvantageNotFound, "")
	}

	logger.Info("Advantage deleted", map[string]interface{}{
		"advantage_id": id,
	})
	s.events.Publish("advantage.deleted", entityEvent{ID: id})
	return nil
}
