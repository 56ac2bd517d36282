package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type AdvantageController struct {
	advantageService service.AdvantageService
}

func NewAdvantageController(advantageService service.AdvantageService) *AdvantageController {
	return &AdvantageController{
		advantageService: advantageService,
	}
}

type updateAdvantageRequest struct {
	ID uint `json:"id"`
	service.AdvantagePatch
}

// GET /api/advantages?productId=
func (ctrl *AdvantageController) GetAdvantages(c *gin.Context) {
	productID, present, ok := optionalQueryID(c, "productId")
	if !ok {
		return
	}
	var filter *uint
	if present {
		filter = &productID
	}

	advantages, err := ctrl.advantageService.ListAdvantages(filter)
	if err != nil {
		respondServiceError(c, err, "advantage")
		return
	}
	c.JSON(http.StatusOK, advantages)
}

// POST /api/advantages
func (ctrl *AdvantageController) CreateAdvantages(c *gin.Context) {
	var req []service.AdvantageInput
	if !bindJSON(c, &req) {
		return
	}

	advantages, err := ctrl.advantageService.CreateAdvantages(req)
	if err != nil {
		respondServiceError(c, err, "advantage")
		return
	}
	c.JSON(http.StatusCreated, advantages)
}

// UpdateAdvantage replaces the product set only when productIds is sent
// PATCH /api/advantages
func (ctrl *AdvantageController) UpdateAdvantage(c *gin.Context) {
	var req updateAdvantageRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}

	advantage, err := ctrl.advantageService.UpdateAdvantage(req.ID, req.AdvantagePatch)
	if err != nil {
		respondServiceError(c, err, "advantage")
		return
	}
	c.JSON(http.StatusOK, advantage)
}

// DELETE /api/advantages?id=
func (ctrl *AdvantageController) DeleteAdvantage(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	if err := ctrl.advantageService.DeleteAdvantage(id); err != nil {
		respondServiceError(c, err, "advantage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
