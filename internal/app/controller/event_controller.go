package controller

import (
	"net/http"

	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	ws "github.com/doorhan-crimea/doorhan-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// EventController streams admin change events over a websocket
type EventController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewEventController accepts upgrades from the listed origins only. An empty
// list accepts any origin.
func NewEventController(hub *ws.Hub, allowedOrigins []string) *EventController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &EventController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				return origins[r.Header.Get("Origin")]
			},
		},
	}
}

// Stream upgrades the request; the session was checked by middleware
// GET /api/admin/events
func (ctrl *EventController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Admin feed connected", map[string]interface{}{
		"user_id": userID,
	})
}
