package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ColorAttachmentController struct {
	attachmentService service.ColorAttachmentService
}

func NewColorAttachmentController(attachmentService service.ColorAttachmentService) *ColorAttachmentController {
	return &ColorAttachmentController{
		attachmentService: attachmentService,
	}
}

type colorAttachmentRequest struct {
	ID        uint `json:"id"`
	ColorID   uint `json:"colorId"`
	ProductID uint `json:"productId"`
}

// GET /api/color-attachments?productId=
func (ctrl *ColorAttachmentController) GetAttachments(c *gin.Context) {
	productID, ok := requiredQueryID(c, "productId")
	if !ok {
		return
	}

	attachments, err := ctrl.attachmentService.ListAttachments(productID)
	if err != nil {
		respondServiceError(c, err, "color_attachment")
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// AttachColor links a color to a product. Attaching an existing pair returns it with 200.
// POST /api/color-attachments
func (ctrl *ColorAttachmentController) AttachColor(c *gin.Context) {
	var req colorAttachmentRequest
	if !bindJSON(c, &req) {
		return
	}

	attachment, created, err := ctrl.attachmentService.Attach(req.ColorID, req.ProductID)
	if err != nil {
		respondServiceError(c, err, "color_attachment")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, attachment)
}

// PUT /api/color-attachments
func (ctrl *ColorAttachmentController) UpdateAttachment(c *gin.Context) {
	var req colorAttachmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}

	attachment, err := ctrl.attachmentService.UpdateAttachment(req.ID, req.ColorID, req.ProductID)
	if err != nil {
		respondServiceError(c, err, "color_attachment")
		return
	}
	c.JSON(http.StatusOK, attachment)
}

// DetachColor removes one pair, or every color of the product with detachAll=true
// DELETE /api/color-attachments?colorId=&productId=
// DELETE /api/color-attachments?productId=&detachAll=true
func (ctrl *ColorAttachmentController) DetachColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := requiredQueryID(c, "productId")
	if !ok {
		return
	}

	if c.Query("detachAll") == "true" {
		count, err := ctrl.attachmentService.DetachAll(productID)
		if err != nil {
			respondServiceError(c, err, "color_attachment")
			return
		}
		log.Info("Detached all colors", map[string]interface{}{
			"product_id": productID,
			"count":      count,
		})
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   count,
		})
		return
	}

	colorID, ok := requiredQueryID(c, "colorId")
	if !ok {
		return
	}
	if err := ctrl.attachmentService.Detach(colorID, productID); err != nil {
		respondServiceError(c, err, "color_attachment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
