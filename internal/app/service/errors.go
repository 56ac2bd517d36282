package service

import (
	"errors"
	"fmt"

	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every per-entity not-found error
var ErrNotFound = errors.New("not found")

var (
	ErrCategoryNotFound        = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound         = fmt.Errorf("product %w", ErrNotFound)
	ErrColorNotFound           = fmt.Errorf("color %w", ErrNotFound)
	ErrColorAttachmentNotFound = fmt.Errorf("color attachment %w", ErrNotFound)
	ErrSliderPhotoNotFound     = fmt.Errorf("slider photo %w", ErrNotFound)
	ErrPdfAttachmentNotFound   = fmt.Errorf("pdf attachment %w", ErrNotFound)
	ErrAdvantageNotFound       = fmt.Errorf("advantage %w", ErrNotFound)
	ErrBlogPostNotFound        = fmt.Errorf("blog post %w", ErrNotFound)

	ErrDuplicateSlug       = errors.New("slug already exists")
	ErrDuplicateAttachment = errors.New("color is already attached to the product")
)

// ValidationError names the request field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func requiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

func invalidError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// translateStoreError maps record-layer failures to service errors. notFound is
// returned for gorm.ErrRecordNotFound; refField names the foreign key reported
// when a referenced row is missing.
func translateStoreError(err, notFound error, refField string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case apperrors.IsDuplicateKey(err):
		return ErrDuplicateSlug
	case apperrors.IsForeignKeyViolation(err) && refField != "":
		return invalidError(refField, "references a missing record")
	default:
		return err
	}
}
