package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"gorm.io/gorm"
)

type Options struct {
	// Replace clears every category and product (with their attachments) first
	Replace bool
}

type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	ProductsCreated   int
	ProductsSkipped   int
}

// productMetadata holds the workbook columns that have no column of their own
type productMetadata struct {
	SKU              string `json:"sku,omitempty"`
	Price            string `json:"price,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Title            string `json:"title,omitempty"`
}

// Import writes the catalog in a single transaction. Rows whose slug is
// already taken are skipped, as are products pointing at an unknown category.
func Import(db *gorm.DB, catalog *Catalog, opts Options) (*Result, error) {
	result := &Result{}

	err := db.Transaction(func(tx *gorm.DB) error {
		if opts.Replace {
			if err := clearCatalog(tx); err != nil {
				return fmt.Errorf("failed to clear catalog: %w", err)
			}
		}

		categoryIDs := make(map[int]uint, len(catalog.Categories))
		for _, row := range catalog.Categories {
			category := model.Category{
				Name:        row.Name,
				Slug:        slugOrName(row.Slug, row.Name),
				Description: row.Description,
				Image:       rootedPath(row.Image),
				Label:       row.Label,
			}

			existing, err := slugTaken(tx, &model.Category{}, category.Slug)
			if err != nil {
				return err
			}
			if existing != 0 {
				logger.Warn("Category slug already exists, reusing", map[string]interface{}{
					"slug": category.Slug,
				})
				categoryIDs[row.ID] = existing
				result.CategoriesSkipped++
				continue
			}

			if err := tx.Omit("Products").Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %q: %w", row.Name, err)
			}
			categoryIDs[row.ID] = category.ID
			result.CategoriesCreated++
		}

		for _, row := range catalog.Products {
			categoryID, ok := categoryIDs[row.CategoryID]
			if !ok {
				logger.Warn("Skipping product with unknown category", map[string]interface{}{
					"product":     row.Name,
					"category_id": row.CategoryID,
				})
				result.ProductsSkipped++
				continue
			}

			product, err := buildProduct(row, categoryID)
			if err != nil {
				return err
			}

			existing, err := slugTaken(tx, &model.Product{}, product.Slug)
			if err != nil {
				return err
			}
			if existing != 0 {
				logger.Warn("Product slug already exists, skipping", map[string]interface{}{
					"slug": product.Slug,
				})
				result.ProductsSkipped++
				continue
			}

			if err := tx.Omit("Category").Create(product).Error; err != nil {
				return fmt.Errorf("failed to create product %q: %w", row.Name, err)
			}
			result.ProductsCreated++
			if result.ProductsCreated%50 == 0 {
				logger.Info("Import progress", map[string]interface{}{
					"products": result.ProductsCreated,
				})
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Catalog import failed", err)
		return nil, err
	}

	logger.Info("Catalog import completed", map[string]interface{}{
		"categories_created": result.CategoriesCreated,
		"categories_skipped": result.CategoriesSkipped,
		"products_created":   result.ProductsCreated,
		"products_skipped":   result.ProductsSkipped,
	})
	return result, nil
}

func buildProduct(row ProductRow, categoryID uint) (*model.Product, error) {
	meta := productMetadata{
		SKU:              row.SKU,
		Price:            row.Price,
		ShortDescription: row.ShortDescription,
	}
	if row.Title != "" && row.Title != row.Name {
		meta.Title = row.Title
	}

	var metadata string
	if meta != (productMetadata{}) {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		metadata = string(raw)
	}

	description := row.Description
	if description == "" {
		description = row.ShortDescription
	}
	content := row.Content
	if content == "" {
		content = row.Description
	}

	specs := make([]model.ProductSpec, 0, len(row.Specs))
	for _, s := range row.Specs {
		specs = append(specs, model.ProductSpec{Name: s.Name, Value: s.Value, Unit: s.Unit})
	}

	cid := categoryID
	return &model.Product{
		Name:        row.Name,
		Slug:        slugOrName(row.Slug, row.Name),
		Description: description,
		Content:     content,
		Metadata:    metadata,
		Specs:       specs,
		Image:       rootedPath(row.Image),
		CategoryID:  &cid,
	}, nil
}

func clearCatalog(tx *gorm.DB) error {
	tables := []interface{}{
		&model.AdvantageAttachment{},
		&model.ColorAttachment{},
		&model.SliderPhoto{},
		&model.PdfAttachment{},
		&model.Product{},
		&model.Category{},
	}
	for _, table := range tables {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// slugTaken returns the id of the row holding slug, or 0
func slugTaken(tx *gorm.DB, table interface{}, slug string) (uint, error) {
	var id uint
	err := tx.Model(table).Select("id").Where("slug = ?", slug).Limit(1).Scan(&id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return id, nil
}

func slugOrName(slug, name string) string {
	if slug != "" {
		return slug
	}
	return util.Slugify(name)
}

// rootedPath makes stored image paths site-absolute
func rootedPath(p string) string {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") {
		return p
	}
	return "/" + p
}
