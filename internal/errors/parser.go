package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// ErrorInfo is a code/message pair ready to be sent to the client
type ErrorInfo struct {
	Code    string
	Message string
}

// IsDuplicateKey reports whether err is a unique constraint violation,
// whichever driver produced it.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// ParseError converts a store error into a client-safe code and message.
// context names the entity involved, e.g. "category" or "product".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Ошибка сервера"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	if IsDuplicateKey(err) {
		return parseDuplicateKeyError(err.Error())
	}

	if IsForeignKeyViolation(err) {
		return ErrorInfo{Code: ResourceNotFound, Message: "Связанная запись не найдена"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNotNullViolation {
		return ErrorInfo{Code: ValidationRequired, Message: "Не заполнено обязательное поле " + pgErr.ColumnName}
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Внешний сервис недоступен. Попробуйте позже",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Ошибка сервера. Попробуйте позже"}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "slug") {
		return ErrorInfo{Code: ResourceDuplicateSlug, Message: "Запись с таким slug уже существует"}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Пользователь с таким email уже существует"}
	}
	if strings.Contains(errLower, "color_id") || strings.Contains(errLower, "idx_color_product") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Цвет уже привязан к товару"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Такая запись уже существует"}
}

func notFoundMessage(context string) string {
	switch strings.ToLower(context) {
	case "category":
		return "Категория не найдена"
	case "product":
		return "Товар не найден"
	case "color":
		return "Цвет не найден"
	case "color_attachment":
		return "Привязка цвета не найдена"
	case "slider_photo":
		return "Фото не найдено"
	case "pdf_attachment":
		return "Документ не найден"
	case "advantage":
		return "Преимущество не найдено"
	case "blog_post":
		return "Статья не найдена"
	default:
		return "Запись не найдена"
	}
}
