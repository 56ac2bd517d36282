package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

type deleteUploadRequest struct {
	URL string `json:"url"`
}

// UploadImage stores the multipart field "file" and returns its public URL
// POST /api/upload
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("Upload without file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadNoFile, "Файл не передан")
		return
	}

	url, err := ctrl.uploadService.UploadImage(c.Request.Context(), file)
	if err != nil {
		respondServiceError(c, err, "upload")
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"url":  url,
		"size": file.Size,
	})
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteImage removes a previously uploaded file; a missing file is not an error
// DELETE /api/upload
func (ctrl *UploadController) DeleteImage(c *gin.Context) {
	var req deleteUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.URL == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "url обязателен")
		return
	}

	if err := ctrl.uploadService.DeleteFile(c.Request.Context(), req.URL); err != nil {
		respondServiceError(c, err, "upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
