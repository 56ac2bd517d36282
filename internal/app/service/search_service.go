package service

import (
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
)

const searchLimit = 10

type SearchService interface {
	// Search matches products by name or description. A blank query returns
	// an empty list without querying the store.
	Search(query string) ([]model.Product, error)
}

type searchService struct {
	productRepo repository.ProductRepository
}

func NewSearchService(productRepo repository.ProductRepository) SearchService {
	return &searchService{productRepo: productRepo}
}

func (s *searchService) Search(query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Product{}, nil
	}

	products, err := s.productRepo.Search(query, searchLimit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
