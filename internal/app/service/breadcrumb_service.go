package service

import (
	"strconv"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

const (
	catalogSection    = "posts"
	productSubsection = "posts2"
)

type Crumb struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

type BreadcrumbService interface {
	// Trail builds the crumbs for a site path such as /posts/vorota/otkatnye.
	// Failed lookups drop their crumb instead of failing the trail.
	Trail(path string) []Crumb
}

type breadcrumbService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewBreadcrumbService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) BreadcrumbService {
	return &breadcrumbService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func splitSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func (s *breadcrumbService) Trail(path string) []Crumb {
	segments := splitSegments(path)
	crumbs := []Crumb{{Label: "Главная", Link: "/"}}

	if len(segments) == 0 {
		return crumbs
	}

	if segments[0] != catalogSection {
		for i, seg := range segments {
			crumbs = append(crumbs, Crumb{
				Label: seg,
				Link:  "/" + strings.Join(segments[:i+1], "/"),
			})
		}
		return crumbs
	}

	crumbs = append(crumbs, Crumb{Label: "Продукция", Link: "/" + catalogSection})

	switch {
	case len(segments) == 2:
		if c, ok := s.categoryCrumb(segments[1], false); ok {
			crumbs = append(crumbs, c)
		}
	case len(segments) == 3:
		if c, ok := s.categoryCrumb(segments[1], true); ok {
			crumbs = append(crumbs, c)
		}
		if c, ok := s.productCrumb(segments[2], "/"+catalogSection+"/"+segments[1]+"/"); ok {
			crumbs = append(crumbs, c)
		}
	case len(segments) >= 4 && segments[2] == productSubsection:
		if c, ok := s.categoryCrumb(segments[1], true); ok {
			crumbs = append(crumbs, c)
		}
		if c, ok := s.productCrumb(segments[3], "/"+catalogSection+"/"+segments[1]+"/"+productSubsection+"/"); ok {
			crumbs = append(crumbs, c)
		}
	}
	return crumbs
}

// categoryCrumb resolves a category token. On product pages the crumb prefers
// the category's classification label and links back to the raw segment.
func (s *breadcrumbService) categoryCrumb(token string, onProductPage bool) (Crumb, bool) {
	category, err := s.categoryRepo.FindBySlugOrID(token)
	if err != nil {
		logger.Debug("Breadcrumb category lookup failed", map[string]interface{}{
			"token": token,
			"error": err.Error(),
		})
		return Crumb{}, false
	}

	if onProductPage {
		label := category.Label
		if strings.TrimSpace(label) == "" {
			label = category.Name
		}
		return Crumb{Label: label, Link: "/" + catalogSection + "/" + token}, true
	}
	return Crumb{Label: category.Name, Link: "/" + catalogSection + "/" + slugOrID(category.Slug, category.ID)}, true
}

func (s *breadcrumbService) productCrumb(token, linkPrefix string) (Crumb, bool) {
	product, err := s.productRepo.FindBySlugOrID(token)
	if err != nil {
		logger.Debug("Breadcrumb product lookup failed", map[string]interface{}{
			"token": token,
			"error": err.Error(),
		})
		return Crumb{}, false
	}
	return Crumb{Label: product.Name, Link: linkPrefix + slugOrID(product.Slug, product.ID)}, true
}

func slugOrID(slug string, id uint) string {
	if slug != "" {
		return slug
	}
	return strconv.FormatUint(uint64(id), 10)
}
