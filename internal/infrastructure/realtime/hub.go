// Package realtime difunde eventos de dominio a clientes WebSocket de la misma sucursal.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

var _ ports.EventPublisher = (*Hub)(nil)

// Conn lo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Message sobre JSON enviado a los clientes.
type Message struct {
	Event    string `json:"event"`
	BranchID string `json:"branch_id"`
	Payload  any    `json:"payload"`
}

type envelope struct {
	branchID string
	data     []byte
}

// Hub registro de clientes por sucursal más un canal de broadcast con buffer.
type Hub struct {
	clients   map[Conn]string // conn -> sucursal
	broadcast chan envelope
	mutex     sync.Mutex
	log       *logger.Logger
}

// NewHub crea el hub; buffer es la capacidad del canal de broadcast.
func NewHub(buffer int, log *logger.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	return &Hub{
		clients:   make(map[Conn]string),
		broadcast: make(chan envelope, buffer),
		log:       log.Component("realtime"),
	}
}

// Run despacha mensajes hasta que ctx se cancela; al salir cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for conn, branch := range h.clients {
				if branch != msg.branchID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register agrega un cliente suscripto a los eventos de branchID.
func (h *Hub) Register(conn Conn, branchID string) {
	h.mutex.Lock()
	h.clients[conn] = branchID
	n := len(h.clients)
	h.mutex.Unlock()
	h.log.Debug().Str("branch_id", branchID).Int("clientes", n).Msg("cliente ws conectado")
}

// Unregister quita y cierra el cliente si sigue registrado.
func (h *Hub) Unregister(conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

// Clients cantidad de clientes conectados.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish encola el evento sin bloquear; si el buffer está lleno el evento se descarta.
func (h *Hub) Publish(branchID, event string, payload any) {
	data, err := json.Marshal(Message{Event: event, BranchID: branchID, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("evento no serializable")
		return
	}
	select {
	case h.broadcast <- envelope{branchID: branchID, data: data}:
	default:
		h.log.Warn().Str("event", event).Str("branch_id", branchID).Msg("buffer de eventos lleno, evento descartado")
	}
}
