package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PdfAttachmentController struct {
	pdfService service.PdfAttachmentService
}

func NewPdfAttachmentController(pdfService service.PdfAttachmentService) *PdfAttachmentController {
	return &PdfAttachmentController{
		pdfService: pdfService,
	}
}

// GET /api/pdf-attachments?productId=
func (ctrl *PdfAttachmentController) GetAttachments(c *gin.Context) {
	productID, ok := requiredQueryID(c, "productId")
	if !ok {
		return
	}

	attachments, err := ctrl.pdfService.ListAttachments(productID)
	if err != nil {
		respondServiceError(c, err, "pdf_attachment")
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// UploadAttachment takes multipart fields file, title and productId
// POST /api/pdf-attachments
func (ctrl *PdfAttachmentController) UploadAttachment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("PDF upload without file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadNoFile, "Файл не передан")
		return
	}

	var productID uint
	if raw := c.PostForm("productId"); raw != "" {
		id, valid := parseID(raw)
		if !valid {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Некорректный параметр productId")
			return
		}
		productID = id
	}

	attachment, err := ctrl.pdfService.UploadAttachment(c.Request.Context(), file, c.PostForm("title"), productID)
	if err != nil {
		respondServiceError(c, err, "pdf_attachment")
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// DeleteAttachment removes the stored file, then the record
// DELETE /api/pdf-attachments?id=
func (ctrl *PdfAttachmentController) DeleteAttachment(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	if err := ctrl.pdfService.DeleteAttachment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "pdf_attachment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
