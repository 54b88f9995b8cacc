package ports

// Eventos publicados tras confirmar la transacción.
const (
	EventSaleCreated   = "sale.created"
	EventSaleVoided    = "sale.voided"
	EventStockAdjusted = "stock.adjusted"
	EventCashOpened    = "cash.opened"
	EventCashMovement  = "cash.movement"
	EventCashClosed    = "cash.closed"
)

// EventPublisher difunde eventos a clientes conectados (dashboard, otras cajas).
// Publish no debe bloquear al caller.
type EventPublisher interface {
	Publish(branchID, event string, payload any)
}

// NopPublisher descarta los eventos.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(string, string, any) {}
