package telegram

import "errors"

var (
	// ErrNotConfigured is returned when the bot token or chat id is missing
	ErrNotConfigured = errors.New("telegram bot is not configured")

	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnauthorized is returned when the bot token is rejected
	ErrUnauthorized = errors.New("unauthorized: invalid bot token")

	// ErrDeliveryFailed is returned when the API answers with a non-ok result
	ErrDeliveryFailed = errors.New("message delivery failed")

	// ErrNetworkError is returned when the API cannot be reached
	ErrNetworkError = errors.New("network error")
)
