package controller

import (
	"net/http"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type SliderPhotoController struct {
	photoService service.SliderPhotoService
}

func NewSliderPhotoController(photoService service.SliderPhotoService) *SliderPhotoController {
	return &SliderPhotoController{
		photoService: photoService,
	}
}

type updatePhotoOrderRequest struct {
	ID    uint `json:"id"`
	Order *int `json:"order"`
}

type reorderPhotosRequest struct {
	ProductID uint   `json:"productId"`
	PhotoIDs  []uint `json:"photoIds"`
}

// GetPhotos lists photos in display order, optionally for one product
// GET /api/slider-photos?productId=
func (ctrl *SliderPhotoController) GetPhotos(c *gin.Context) {
	productID, present, ok := optionalQueryID(c, "productId")
	if !ok {
		return
	}
	var filter *uint
	if present {
		filter = &productID
	}

	photos, err := ctrl.photoService.ListPhotos(filter)
	if err != nil {
		respondServiceError(c, err, "slider_photo")
		return
	}
	c.JSON(http.StatusOK, photos)
}

// CreatePhotos stores a batch of photos in one transaction
// POST /api/slider-photos
func (ctrl *SliderPhotoController) CreatePhotos(c *gin.Context) {
	var req []service.SliderPhotoInput
	if !bindJSON(c, &req) {
		return
	}

	photos, err := ctrl.photoService.CreatePhotos(req)
	if err != nil {
		respondServiceError(c, err, "slider_photo")
		return
	}
	c.JSON(http.StatusCreated, photos)
}

// PATCH /api/slider-photos
func (ctrl *SliderPhotoController) UpdateOrder(c *gin.Context) {
	var req updatePhotoOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return
	}
	if req.Order == nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "order обязателен")
		return
	}

	photo, err := ctrl.photoService.UpdateOrder(req.ID, *req.Order)
	if err != nil {
		respondServiceError(c, err, "slider_photo")
		return
	}
	c.JSON(http.StatusOK, photo)
}

// Reorder assigns orders 0..N-1 following photoIds
// PUT /api/slider-photos/reorder
func (ctrl *SliderPhotoController) Reorder(c *gin.Context) {
	var req reorderPhotosRequest
	if !bindJSON(c, &req) {
		return
	}

	photos, err := ctrl.photoService.Reorder(req.ProductID, req.PhotoIDs)
	if err != nil {
		respondServiceError(c, err, "slider_photo")
		return
	}
	c.JSON(http.StatusOK, photos)
}

// DELETE /api/slider-photos?id=
func (ctrl *SliderPhotoController) DeletePhoto(c *gin.Context) {
	id, ok := deleteID(c)
	if !ok {
		return
	}

	if _, err := ctrl.photoService.DeletePhoto(id); err != nil {
		respondServiceError(c, err, "slider_photo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
