package repository

import (
	"errors"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdvantageRepository interface {
	CreateBatch(advantages []model.Advantage) error
	FindAll(productID *uint) ([]model.Advantage, error)
	FindByID(id uint) (*model.Advantage, error)
	Update(id uint, updates map[string]interface{}, productIDs []uint, replaceProducts bool) error
	Delete(id uint) error
}

type advantageRepository struct {
	db *gorm.DB
}

func NewAdvantageRepository(db *gorm.DB) AdvantageRepository {
	return &advantageRepository{db: db}
}

// CreateBatch inserts the advantages and their product attachments atomically.
// Each advantage's ProductIDs drives its attachments.
func (r *advantageRepository) CreateBatch(advantages []model.Advantage) error {
	logger.Debug("Creating advantages", map[string]interface{}{
		"count": len(advantages),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range advantages {
			adv := &advantages[i]
			if err := tx.Omit("Attachments").Create(adv).Error; err != nil {
				return err
			}
			if err := attachProducts(tx, adv.ID, adv.ProductIDs); err != nil {
				return err
			}
			adv.ProductIDs = dedupeIDs(adv.ProductIDs)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create advantages", err, map[string]interface{}{
			"count": len(advantages),
		})
		return err
	}
	return nil
}

// FindAll lists advantages by display order. A non-nil productID keeps only
// advantages attached to that product.
func (r *advantageRepository) FindAll(productID *uint) ([]model.Advantage, error) {
	query := r.db.Model(&model.Advantage{}).Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_id ASC")
	})
	if productID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&model.AdvantageAttachment{}).Select("advantage_id").Where("product_id = ?", *productID))
	}

	var advantages []model.Advantage
	if err := query.Clauses(byDisplayOrder()).Find(&advantages).Error; err != nil {
		logger.Error("Failed to find advantages", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	for i := range advantages {
		advantages[i].FillProductIDs()
	}
	return advantages, nil
}

func (r *advantageRepository) FindByID(id uint) (*model.Advantage, error) {
	var advantage model.Advantage
	err := r.db.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_id ASC")
	}).First(&advantage, id).Error
	if err != nil {
		return nil, err
	}
	advantage.FillProductIDs()
	return &advantage, nil
}

// Update changes the given columns and, when replaceProducts is set, swaps the
// whole attachment set, all in one transaction.
func (r *advantageRepository) Update(id uint, updates map[string]interface{}, productIDs []uint, replaceProducts bool) error {
	logger.Debug("Updating advantage", map[string]interface{}{
		"advantage_id":     id,
		"fields":           len(updates),
		"replace_products": replaceProducts,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Advantage{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		if len(updates) > 0 {
			if err := tx.Model(&model.Advantage{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if replaceProducts {
			if err := tx.Where("advantage_id = ?", id).Delete(&model.AdvantageAttachment{}).Error; err != nil {
				return err
			}
			if err := attachProducts(tx, id, productIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to update advantage", err, map[string]interface{}{
			"advantage_id": id,
		})
	}
	return err
}

// Delete removes the attachments first, then the advantage
func (r *advantageRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("advantage_id = ?", id).Delete(&model.AdvantageAttachment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Advantage{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to delete advantage", err, map[string]interface{}{
			"advantage_id": id,
		})
	}
	return err
}

func attachProducts(tx *gorm.DB, advantageID uint, productIDs []uint) error {
	ids := dedupeIDs(productIDs)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]model.AdvantageAttachment, 0, len(ids))
	for _, pid := range ids {
		rows = append(rows, model.AdvantageAttachment{AdvantageID: advantageID, ProductID: pid})
	}
	return tx.Omit("Product").Create(&rows).Error
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
