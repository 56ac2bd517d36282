package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/telegram"
)

var (
	ErrContactNotConfigured = errors.New("contact notifications are not configured")
	ErrContactDelivery      = errors.New("failed to deliver contact request")
)

type ContactForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Page    string `json:"page"`
}

// ContactNotifier delivers a formatted request to the sales chat
type ContactNotifier interface {
	SendMessage(ctx context.Context, text string) (*telegram.Message, error)
}

type ContactService interface {
	Submit(ctx context.Context, form ContactForm) error
}

type contactService struct {
	notifier ContactNotifier
	events   EventPublisher
	now      func() time.Time
}

// NewContactService accepts a nil notifier; submissions then fail as not configured
func NewContactService(notifier ContactNotifier, events EventPublisher) ContactService {
	return &contactService{
		notifier: notifier,
		events:   publisherOrNoop(events),
		now:      time.Now,
	}
}

func (s *contactService) Submit(ctx context.Context, form ContactForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Message = strings.TrimSpace(form.Message)
	form.Page = strings.TrimSpace(form.Page)

	if form.Phone == "" {
		return requiredError("phone")
	}
	if s.notifier == nil {
		logger.Error("Contact form received but no notifier is configured", ErrContactNotConfigured, nil)
		return ErrContactNotConfigured
	}

	if _, err := s.notifier.SendMessage(ctx, s.format(form)); err != nil {
		logger.Error("Failed to forward contact form", err, map[string]interface{}{
			"page": form.Page,
		})
		return fmt.Errorf("%w: %v", ErrContactDelivery, err)
	}

	logger.Info("Contact form forwarded", map[string]interface{}{
		"page": form.Page,
	})
	s.events.Publish("contact.submitted", form)
	return nil
}

func (s *contactService) format(form ContactForm) string {
	var b strings.Builder
	b.WriteString("Новая заявка с сайта:\n")
	fmt.Fprintf(&b, "Имя: %s\n", html.EscapeString(orDash(form.Name)))
	fmt.Fprintf(&b, "Телефон: %s\n", html.EscapeString(form.Phone))
	fmt.Fprintf(&b, "Сообщение: %s\n", html.EscapeString(orDash(form.Message)))
	fmt.Fprintf(&b, "Страница: %s\n", html.EscapeString(orDash(form.Page)))
	fmt.Fprintf(&b, "Время: %s", s.now().UTC().Format(time.RFC3339))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
