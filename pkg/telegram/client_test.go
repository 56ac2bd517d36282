package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresTokenAndChat(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://localhost"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Config{BotToken: "t", ChatID: "1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClient_SendMessage(t *testing.T) {
	var got SendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botsecret-token/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true,"result":{"message_id":42,"date":1700000000}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BotToken: "secret-token", ChatID: "-100500", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	msg, err := client.SendMessage(context.Background(), "Новая заявка")
	require.NoError(t, err)
	assert.Equal(t, int64(42), msg.MessageID)
	assert.Equal(t, "-100500", got.ChatID)
	assert.Equal(t, "Новая заявка", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
}

func TestClient_SendMessageErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad token", http.StatusUnauthorized, `{"ok":false,"error_code":401,"description":"Unauthorized"}`, ErrUnauthorized},
		{"bad chat", http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"chat not found"}`, ErrInvalidRequest},
		{"server error", http.StatusBadGateway, `<html>bad gateway</html>`, ErrDeliveryFailed},
		{"not ok", http.StatusOK, `{"ok":false,"description":"flood"}`, ErrDeliveryFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(Config{BotToken: "t", ChatID: "1", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.SendMessage(context.Background(), "hello")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_SendMessageTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := NewClient(Config{BotToken: "t", ChatID: "1", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNetworkError)
}

func TestClient_SendMessageRejectsBlank(t *testing.T) {
	client, err := NewClient(Config{BotToken: "t", ChatID: "1", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.SendMessage(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
