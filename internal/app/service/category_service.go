package service

import (
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
)

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Label       string `json:"category"`
}

// CategoryPatch carries only the fields the client sent
type CategoryPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Label       *string `json:"category"`
}

type CategoryService interface {
	ListCategories(search string) ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	GetCategoryBySlugOrID(token string) (*model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, patch CategoryPatch) (*model.Category, error)
	DeleteCategory(id uint) (int64, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	events       EventPublisher
}

func NewCategoryService(categoryRepo repository.CategoryRepository, events EventPublisher) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		events:       publisherOrNoop(events),
	}
}

func (s *categoryService) ListCategories(search string) ([]model.Category, error) {
	return s.categoryRepo.FindAll(repository.CategoryFilter{Search: search})
}

// GetCategory returns the category with its {id, name} product list
func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id, true)
	if err != nil {
		return nil, translateStoreError(err, ErrCategoryNotFound, "")
	}
	return category, nil
}

func (s *categoryService) GetCategoryBySlugOrID(token string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlugOrID(strings.TrimSpace(token))
	if err != nil {
		return nil, translateStoreError(err, ErrCategoryNotFound, "")
	}
	return category, nil
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, requiredError("name")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = util.Slugify(name)
	}

	category := &model.Category{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		Label:       input.Label,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Warn("Category creation failed", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil, translateStoreError(err, ErrCategoryNotFound, "")
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	s.events.Publish("category.created", entityEvent{ID: category.ID})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, patch CategoryPatch) (*model.Category, error) {
	current, err := s.categoryRepo.FindByID(id, false)
	if err != nil {
		return nil, translateStoreError(err, ErrCategoryNotFound, "")
	}

	updates := map[string]interface{}{}
	name := current.Name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, requiredError("name")
		}
		updates["name"] = name
	}
	if patch.Slug != nil {
		slug := strings.TrimSpace(*patch.Slug)
		if slug == "" {
			slug = util.Slugify(name)
		}
		updates["slug"] = slug
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Label != nil {
		updates["label"] = *patch.Label
	}

	if len(updates) > 0 {
		if err := s.categoryRepo.Update(id, updates); err != nil {
			return nil, translateStoreError(err, ErrCategoryNotFound, "")
		}
		logger.Info("Category updated", map[string]interface{}{
			"category_id": id,
			"fields":      len(updates),
		})
		s.events.Publish("category.updated", entityEvent{ID: id})
	}

	return s.GetCategory(id)
}

// DeleteCategory removes the category; its products stay, uncategorized.
// Returns how many products were detached.
func (s *categoryService) DeleteCategory(id uint) (int64, error) {
	detached, err := s.categoryRepo.Delete(id)
	if err != nil {
		return 0, translateStoreError(err, ErrCategoryNotFound, "")
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id":       id,
		"detached_products": detached,
	})
	s.events.Publish("category.deleted", entityEvent{ID: id})
	return detached, nil
}
