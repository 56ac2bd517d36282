package db

import (
	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Color{},
		&model.ColorAttachment{},
		&model.SliderPhoto{},
		&model.PdfAttachment{},
		&model.Advantage{},
		&model.AdvantageAttachment{},
		&model.BlogPost{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed fills an empty catalog with starter content. Tables that already hold rows are skipped.
func Seed() error {
	return seedInitialData(DB)
}

func seedInitialData(tx *gorm.DB) error {
	logger.Info("Seeding initial data...")

	if err := seedCategories(tx); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}
	if err := seedAdvantages(tx); err != nil {
		logger.Error("Failed to seed advantages", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCategories(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := []model.Category{
		{Name: "Автоматические ворота", Slug: "avtomaticheskie-vorota", Label: "Ворота",
			Description: "Современные автоматические ворота для частных и коммерческих объектов"},
		{Name: "Автоматические двери", Slug: "avtomaticheskie-dveri", Label: "Двери",
			Description: "Автоматические двери для магазинов, офисов и общественных зданий"},
		{Name: "Шлагбаумы", Slug: "shlagbaumy", Label: "Шлагбаумы",
			Description: "Автоматические шлагбаумы для парковок и КПП"},
	}
	if err := tx.Create(&categories).Error; err != nil {
		return err
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_records": len(categories),
	})
	return nil
}

func seedAdvantages(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Advantage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Advantages already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	advantages := []model.Advantage{
		{Text: "Высокое качество материалов", Order: 0},
		{Text: "Долгий срок службы", Order: 1},
		{Text: "Гарантия и сервисное обслуживание", Order: 2},
	}
	if err := tx.Omit("Attachments").Create(&advantages).Error; err != nil {
		return err
	}

	logger.Info("Advantages seeded successfully", map[string]interface{}{
		"total_records": len(advantages),
	})
	return nil
}
