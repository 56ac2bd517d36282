package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	ws "github.com/doorhan-crimea/doorhan-backend/internal/websocket"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventController_StreamsPublishedEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub()
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/api/admin/events", func(c *gin.Context) {
		c.Set(middleware.SessionKey, &util.Session{UserID: 7, Role: "admin"})
		c.Next()
	}, NewEventController(hub, nil).Stream)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/admin/events"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("product.updated", map[string]uint{"id": 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event ws.Event
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "product.updated", event.Type)
}

func TestEventController_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/admin/events", func(c *gin.Context) {
		c.Set(middleware.SessionKey, &util.Session{UserID: 7, Role: "admin"})
		c.Next()
	}, NewEventController(ws.NewHub(), []string{"https://admin.doorhan-crimea.ru"}).Stream)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/admin/events"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
