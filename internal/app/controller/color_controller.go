package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type ColorController struct {
	colorService service.ColorService
}

func NewColorController(colorService service.ColorService) *ColorController {
	return &ColorController{
		colorService: colorService,
	}
}

type updateColorRequest struct {
	ID uint `json:"id"`
	service.ColorPatch
}

// GetColors lists colors (?q= filters) or returns one by ?id=
// GET /api/colors
func (ctrl *ColorController) GetColors(c *gin.Context) {
	id, present, ok := optionalQueryID(c, "id")
	if !ok {
		return
	}
	if present {
		color, err := ctrl.colorService.GetColor(id)
		if err != nil {
			respondServiceError(c, err, "color")
			return
		}
		c.JSON(http.StatusOK, color)
		return
	}

	colors, err := ctrl.colorService.ListColors(c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "color")
		return
	}
	c.JSON(http.StatusOK, colors)
}

// POST /api/colors
func (ctrl *ColorController) CreateColor(c *gin.Context) {
	var req service.ColorInput
	if !bindJSON(c, &req) {
		return
	}

	color, err := ctrl.colorService.CreateColor(req)
	if err != nil {
		respondServiceError(c, err, "color")
		return
	}
	c.JSON(http.StatusCreated, color)
}

// PATCH /api/colors
func (ctrl *ColorController) UpdateColor(c *gin.Context) {
	var req updateColorRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}

	color, err := ctrl.colorService.UpdateColor(req.ID, req.ColorPatch)
	if err != nil {
		respondServiceError(c, err, "color")
		return
	}
	c.JSON(http.StatusOK, color)
}

// DeleteColor removes the color together with its product attachments
// DELETE /api/colors?id=
func (ctrl *ColorController) DeleteColor(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	detached, err := ctrl.colorService.DeleteColor(id)
	if err != nil {
		respondServiceError(c, err, "color")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"detachedAttachments": detached,
	})
}
