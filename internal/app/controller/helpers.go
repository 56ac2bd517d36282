package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// idBody is the JSON shape of PATCH and DELETE requests addressed by body
type idBody struct {
	ID uint `json:"id"`
}

// parseID parses a positive decimal id
func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// optionalQueryID reads an id query parameter. present is false when the
// parameter is missing or blank; a malformed value is answered with 400.
func optionalQueryID(c *gin.Context, key string) (id uint, present bool, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, true
	}
	id, valid := parseID(raw)
	if !valid {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Некорректный параметр "+key)
		return 0, true, false
	}
	return id, true, true
}

// requiredQueryID is optionalQueryID that also rejects a missing parameter
func requiredQueryID(c *gin.Context, key string) (uint, bool) {
	id, present, ok := optionalQueryID(c, key)
	if !ok {
		return 0, false
	}
	if !present {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Параметр "+key+" обязателен")
		return 0, false
	}
	return id, true
}

// deleteID takes the id from ?id= or, failing that, from a JSON {id} body
func deleteID(c *gin.Context) (uint, bool) {
	id, present, ok := optionalQueryID(c, "id")
	if !ok {
		return 0, false
	}
	if present {
		return id, true
	}

	var body idBody
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректный JSON")
			return 0, false
		}
	}
	if body.ID == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "ID обязателен")
		return 0, false
	}
	return body.ID, true
}

// bindJSON decodes the body and answers malformed JSON with 400
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректный JSON")
		return false
	}
	return true
}

func statusForCode(code string) int {
	switch code {
	case apperrors.ResourceNotFound:
		return http.StatusNotFound
	case apperrors.ResourceDuplicateSlug, apperrors.ResourceAlreadyExists,
		apperrors.ValidationRequired, apperrors.ValidationInvalidInput, apperrors.ValidationInvalidID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps service errors to status codes. entity names the
// resource for not-found messages, e.g. "product".
func respondServiceError(c *gin.Context, err error, entity string) {
	log := middleware.GetLoggerFromContext(c)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		code := apperrors.ValidationInvalidInput
		if verr.Message == "is required" {
			code = apperrors.ValidationRequired
		}
		log.Warn("Validation failed", map[string]interface{}{
			"field": verr.Field,
		})
		apperrors.RespondWithValidationError(c, code, verr.Error(), map[string]string{verr.Field: verr.Message})

	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, apperrors.ParseError(gorm.ErrRecordNotFound, entity).Message)

	case errors.Is(err, service.ErrDuplicateSlug):
		apperrors.BadRequest(c, apperrors.ResourceDuplicateSlug, "Запись с таким slug уже существует")

	case errors.Is(err, service.ErrDuplicateAttachment):
		apperrors.BadRequest(c, apperrors.ResourceAlreadyExists, "Цвет уже привязан к товару")

	case errors.Is(err, service.ErrNoFile):
		apperrors.BadRequest(c, apperrors.UploadNoFile, "Файл не передан")
	case errors.Is(err, service.ErrUnsupportedFileType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Недопустимый тип файла")
	case errors.Is(err, service.ErrFileTooLarge):
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Файл слишком большой")
	case errors.Is(err, service.ErrInvalidPath):
		apperrors.BadRequest(c, apperrors.UploadInvalidPath, "Некорректный путь к файлу")
	case errors.Is(err, service.ErrWriteFailed):
		log.Error("Upload failed", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Не удалось сохранить файл")

	case errors.Is(err, service.ErrInvalidCredentials):
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Неверный email или пароль")

	case errors.Is(err, service.ErrContactNotConfigured), errors.Is(err, service.ErrContactDelivery):
		log.Error("Contact form delivery failed", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalExternalAPI, "Не удалось отправить заявку. Попробуйте позже")

	default:
		info := apperrors.ParseError(err, entity)
		log.Error("Request failed", err, map[string]interface{}{
			"entity": entity,
			"code":   info.Code,
		})
		apperrors.RespondWithError(c, statusForCode(info.Code), info.Code, info.Message)
	}
}
