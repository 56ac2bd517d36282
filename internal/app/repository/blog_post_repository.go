package repository

import (
	"errors"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"gorm.io/gorm"
)

type BlogPostRepository interface {
	Create(post *model.BlogPost) error
	FindAll(limit int) ([]model.BlogPost, error)
	FindByID(id uint) (*model.BlogPost, error)
	FindBySlugOrID(token string) (*model.BlogPost, error)
	FindNext(after time.Time, excludeID uint) (*model.BlogPost, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

type blogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

func (r *blogPostRepository) Create(post *model.BlogPost) error {
	if err := r.db.Create(post).Error; err != nil {
		logger.Error("Failed to create blog post", err, map[string]interface{}{
			"slug": post.Slug,
		})
		return err
	}
	return nil
}

// FindAll lists posts newest publication first
func (r *blogPostRepository) FindAll(limit int) ([]model.BlogPost, error) {
	query := r.db.Order("published_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var posts []model.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		logger.Error("Failed to find blog posts", err)
		return nil, err
	}
	return posts, nil
}

func (r *blogPostRepository) FindByID(id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) FindBySlugOrID(token string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.Where("slug = ?", token).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, ok := parseNumericID(token); ok {
			err = r.db.First(&post, id).Error
		}
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindNext returns the earliest post published strictly after the given time
func (r *blogPostRepository) FindNext(after time.Time, excludeID uint) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.Where("published_at > ? AND id <> ?", after, excludeID).
		Order("published_at ASC").
		Order("id ASC").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogPostRepository) Update(id uint, updates map[string]interface{}) error {
	result := r.db.Model(&model.BlogPost{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update blog post", result.Error, map[string]interface{}{
			"post_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *blogPostRepository) Delete(id uint) error {
	result := r.db.Delete(&model.BlogPost{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete blog post", result.Error, map[string]interface{}{
			"post_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
