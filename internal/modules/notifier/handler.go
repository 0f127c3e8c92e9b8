package notifier

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"astroconsult/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes registers status routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	{
		g.GET("/status", h.CurrentStatus)
		g.DELETE("/status", h.DismissStatus)
		g.GET("/ws", h.WebSocket)
	}
}

func (h *Handler) CurrentStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")

	st, ok := h.service.Current(userID)
	if !ok {
		response.Success(c, http.StatusOK, gin.H{"status": nil})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": st})
}

func (h *Handler) DismissStatus(c *gin.Context) {
	userID := c.GetInt64("user_id")
	h.service.Dismiss(userID)
	response.Success(c, http.StatusOK, gin.H{"dismissed": true})
}

// WebSocket upgrades the connection and streams status pushes until the
// client goes away.
func (h *Handler) WebSocket(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed user_id=%d err=%v", userID, err)
		return
	}

	h.hub.Register(userID, conn)

	// replay the current status so a reconnecting client catches up
	if st, ok := h.service.Current(userID); ok {
		h.hub.SendToUser(userID, st)
	}

	go func() {
		defer h.hub.Unregister(userID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
