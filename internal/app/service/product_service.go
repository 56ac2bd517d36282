package service

import (
	"context"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"gorm.io/datatypes"
)

type ProductInput struct {
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Content     string              `json:"content"`
	Metadata    string              `json:"metadata"`
	Specs       []model.ProductSpec `json:"specs"`
	Image       string              `json:"image"`
	CategoryID  util.OptionalID     `json:"categoryId"`
}

// ProductPatch carries only the fields the client sent. CategoryID tells
// an absent field apart from an explicit null.
type ProductPatch struct {
	Name        *string              `json:"name"`
	Slug        *string              `json:"slug"`
	Description *string              `json:"description"`
	Content     *string              `json:"content"`
	Metadata    *string              `json:"metadata"`
	Specs       *[]model.ProductSpec `json:"specs"`
	Image       *string              `json:"image"`
	CategoryID  util.OptionalID      `json:"categoryId"`
}

type ProductListOptions struct {
	CategoryID *uint
	Search     string
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetProductBySlugOrID(token string) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, patch ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// FileRemover deletes a stored upload by its public path
type FileRemover interface {
	Delete(ctx context.Context, publicPath string) error
}

type productService struct {
	productRepo repository.ProductRepository
	pdfRepo     repository.PdfAttachmentRepository
	files       FileRemover
	events      EventPublisher
}

func NewProductService(
	productRepo repository.ProductRepository,
	pdfRepo repository.PdfAttachmentRepository,
	files FileRemover,
	events EventPublisher,
) ProductService {
	return &productService{
		productRepo: productRepo,
		pdfRepo:     pdfRepo,
		files:       files,
		events:      publisherOrNoop(events),
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	return s.productRepo.FindAll(repository.ProductFilter{
		CategoryID: opts.CategoryID,
		Search:     opts.Search,
	})
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrProductNotFound, "")
	}
	return product, nil
}

func (s *productService) GetProductBySlugOrID(token string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlugOrID(strings.TrimSpace(token))
	if err != nil {
		return nil, translateStoreError(err, ErrProductNotFound, "")
	}
	return product, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, requiredError("name")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = util.Slugify(name)
	}

	product := &model.Product{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Content:     input.Content,
		Metadata:    input.Metadata,
		Specs:       datatypes.NewJSONSlice(normalizeSpecs(input.Specs)),
		Image:       input.Image,
		CategoryID:  input.CategoryID.Ptr(),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, translateStoreError(err, ErrProductNotFound, "categoryId")
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":  product.ID,
		"slug":        product.Slug,
		"category_id": product.CategoryID,
	})
	s.events.Publish("product.created", entityEvent{ID: product.ID})

	return s.GetProduct(product.ID)
}

func (s *productService) UpdateProduct(id uint, patch ProductPatch) (*model.Product, error) {
	current, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrProductNotFound, "")
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
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Metadata != nil {
		updates["metadata"] = *patch.Metadata
	}
	if patch.Specs != nil {
		updates["specs"] = datatypes.NewJSONSlice(normalizeSpecs(*patch.Specs))
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.CategoryID.Set {
		updates["category_id"] = patch.CategoryID.Ptr()
	}

	if len(updates) > 0 {
		if err := s.productRepo.Update(id, updates); err != nil {
			return nil, translateStoreError(err, ErrProductNotFound, "categoryId")
		}
		logger.Info("Product updated", map[string]interface{}{
			"product_id": id,
			"fields":     len(updates),
		})
		s.events.Publish("product.updated", entityEvent{ID: id})
	}

	return s.GetProduct(id)
}

// DeleteProduct removes the product with its photos and attachments, then
// the PDF files that belonged to it. File removal failures are only logged.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	pdfs, err := s.pdfRepo.FindByProduct(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return translateStoreError(err, ErrProductNotFound, "")
	}

	if s.files != nil {
		for _, pdf := range pdfs {
			if err := s.files.Delete(ctx, pdf.FileURL); err != nil {
				logger.Warn("Failed to remove PDF of deleted product", map[string]interface{}{
					"product_id": id,
					"file_url":   pdf.FileURL,
					"error":      err.Error(),
				})
			}
		}
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"pdf_files":  len(pdfs),
	})
	s.events.Publish("product.deleted", entityEvent{ID: id})
	return nil
}

// normalizeSpecs trims the triples and drops rows without a name
func normalizeSpecs(specs []model.ProductSpec) []model.ProductSpec {
	out := make([]model.ProductSpec, 0, len(specs))
	for _, spec := range specs {
		spec.Name = strings.TrimSpace(spec.Name)
		spec.Value = strings.TrimSpace(spec.Value)
		spec.Unit = strings.TrimSpace(spec.Unit)
		if spec.Name == "" {
			continue
		}
		out = append(out, spec)
	}
	return out
}
