package service

import (
	"errors"
	"strings"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"gorm.io/gorm"
)

type BlogPostInput struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Image       string     `json:"image"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type BlogPostPatch struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Excerpt     *string    `json:"excerpt"`
	Image       *string    `json:"image"`
	Content     *string    `json:"content"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type BlogService interface {
	ListPosts(limit int) ([]model.BlogPost, error)
	GetPost(id uint) (*model.BlogPost, error)
	// GetPostWithNext returns the post and the earliest one published after it, if any
	GetPostWithNext(token string) (*model.BlogPost, *model.BlogPost, error)
	CreatePost(input BlogPostInput) (*model.BlogPost, error)
	UpdatePost(id uint, patch BlogPostPatch) (*model.BlogPost, error)
	DeletePost(id uint) error
}

type blogService struct {
	blogRepo repository.BlogPostRepository
	events   EventPublisher
}

func NewBlogService(blogRepo repository.BlogPostRepository, events EventPublisher) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		events:   publisherOrNoop(events),
	}
}

func (s *blogService) ListPosts(limit int) ([]model.BlogPost, error) {
	return s.blogRepo.FindAll(limit)
}

func (s *blogService) GetPost(id uint) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrBlogPostNotFound, "")
	}
	return post, nil
}

func (s *blogService) GetPostWithNext(token string) (*model.BlogPost, *model.BlogPost, error) {
	post, err := s.blogRepo.FindBySlugOrID(strings.TrimSpace(token))
	if err != nil {
		return nil, nil, translateStoreError(err, ErrBlogPostNotFound, "")
	}

	next, err := s.blogRepo.FindNext(post.PublishedAt, post.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, nil, nil
		}
		return nil, nil, err
	}
	return post, next, nil
}

func (s *blogService) CreatePost(input BlogPostInput) (*model.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, requiredError("title")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = util.Slugify(title)
	}
	publishedAt := time.Now().UTC()
	if input.PublishedAt != nil {
		publishedAt = input.PublishedAt.UTC()
	}

	post := &model.BlogPost{
		Title:       title,
		Slug:        slug,
		Excerpt:     input.Excerpt,
		Image:       input.Image,
		Content:     input.Content,
		PublishedAt: publishedAt,
	}
	if err := s.blogRepo.Create(post); err != nil {
		return nil, translateStoreError(err, ErrBlogPostNotFound, "")
	}

	logger.Info("Blog post created", map[string]interface{}{
		"post_id": post.ID,
		"slug":    post.Slug,
	})
	s.events.Publish("blog_post.created", entityEvent{ID: post.ID})
	return post, nil
}

func (s *blogService) UpdatePost(id uint, patch BlogPostPatch) (*model.BlogPost, error) {
	current, err := s.blogRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrBlogPostNotFound, "")
	}

	updates := map[string]interface{}{}
	title := current.Title
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, requiredError("title")
		}
		updates["title"] = title
	}
	if patch.Slug != nil {
		slug := strings.TrimSpace(*patch.Slug)
		if slug == "" {
			slug = util.Slugify(title)
		}
		updates["slug"] = slug
	}
	if patch.Excerpt != nil {
		updates["excerpt"] = *patch.Excerpt
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.PublishedAt != nil {
		updates["published_at"] = patch.PublishedAt.UTC()
	}

	if len(updates) > 0 {
		if err := s.blogRepo.Update(id, updates); err != nil {
			return nil, translateStoreError(err, ErrBlogPostNotFound, "")
		}
		s.events.Publish("blog_post.updated", entityEvent{ID: id})
	}
	return s.GetPost(id)
}

func (s *blogService) DeletePost(id uint) error {
	if err := s.blogRepo.Delete(id); err != nil {
		return translateStoreError(err, ErrBlogPostNotFound, "")
	}

	logger.Info("Blog post deleted", map[string]interface{}{
		"post_id": id,
	})
	s.events.Publish("blog_post.deleted", entityEvent{ID: id})
	return nil
}
