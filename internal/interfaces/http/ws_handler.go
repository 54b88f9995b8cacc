package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/infrastructure/realtime"
)

// RealtimeHandler suscribe clientes WebSocket a los eventos de su sucursal.
type RealtimeHandler struct {
	hub *realtime.Hub
}

// NewRealtimeHandler construye el handler.
func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// RequireUpgrade rechaza con 426 lo que no sea un handshake WebSocket.
func (h *RealtimeHandler) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Stream mantiene la conexión registrada en el hub hasta que el cliente se desconecta.
func (h *RealtimeHandler) Stream() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		branchID, _ := c.Locals(LocalBranchID).(string)
		h.hub.Register(c, branchID)
		defer h.hub.Unregister(c)

		for {
			// keep alive; los mensajes del cliente se ignoran
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
