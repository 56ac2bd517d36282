package controller

import (
	"net/http"
	"strconv"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type BlogController struct {
	blogService service.BlogService
}

func NewBlogController(blogService service.BlogService) *BlogController {
	return &BlogController{
		blogService: blogService,
	}
}

type updateBlogPostRequest struct {
	ID uint `json:"id"`
	service.BlogPostPatch
}

// GetPosts lists posts newest first. ?slug= returns {post, next}; ?id= returns the post.
// GET /api/blogs
func (ctrl *BlogController) GetPosts(c *gin.Context) {
	id, present, ok := optionalQueryID(c, "id")
	if !ok {
		return
	}
	if present {
		post, err := ctrl.blogService.GetPost(id)
		if err != nil {
			respondServiceError(c, err, "blog_post")
			return
		}
		c.JSON(http.StatusOK, post)
		return
	}

	if slug := c.Query("slug"); slug != "" {
		post, next, err := ctrl.blogService.GetPostWithNext(slug)
		if err != nil {
			respondServiceError(c, err, "blog_post")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"post": post,
			"next": next,
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректный параметр limit")
			return
		}
		limit = n
	}

	posts, err := ctrl.blogService.ListPosts(limit)
	if err != nil {
		respondServiceError(c, err, "blog_post")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// POST /api/blogs
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	var req service.BlogPostInput
	if !bindJSON(c, &req) {
		return
	}

	post, err := ctrl.blogService.CreatePost(req)
	if err != nil {
		respondServiceError(c, err, "blog_post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// PATCH /api/blogs
func (ctrl *BlogController) UpdatePost(c *gin.Context) {
	var req updateBlogPostRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}

	post, err := ctrl.blogService.UpdatePost(req.ID, req.BlogPostPatch)
	if err != nil {
		respondServiceError(c, err, "blog_post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// DELETE /api/blogs?id=
func (ctrl *BlogController) DeletePost(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	if err := ctrl.blogService.DeletePost(id); err != nil {
		respondServiceError(c, err, "blog_post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
