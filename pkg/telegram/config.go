package telegram

import "time"

// Config represents the configuration for the Telegram bot client
type Config struct {
	// BotToken authenticates the bot against the Bot API
	BotToken string

	// ChatID is the destination chat for notifications
	ChatID string

	// BaseURL is the Bot API base URL, overridable for tests and proxies
	BaseURL string

	// Timeout bounds a single outbound call
	Timeout time.Duration
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.BotToken == "" || c.ChatID == "" {
		return ErrNotConfigured
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
