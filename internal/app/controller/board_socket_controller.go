package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apperrors "github.com/minhasantafonte/santafonte-backend/internal/errors"
	"github.com/minhasantafonte/santafonte-backend/internal/middleware"
	ws "github.com/minhasantafonte/santafonte-backend/internal/websocket"
)

type BoardSocketController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewBoardSocketController accepts upgrades from the listed origins. A "*"
// entry accepts any origin.
func NewBoardSocketController(hub *ws.Hub, allowedOrigins []string) *BoardSocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &BoardSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Connect upgrades to a websocket that receives sale and stock events
// GET /api/v1/admin/board/ws?token=
func (ctrl *BoardSocketController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := ctrl.hub.NewClient(&ws.Conn{Conn: conn}, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Board socket connected", map[string]interface{}{
		"user_id": userID,
	})
}
