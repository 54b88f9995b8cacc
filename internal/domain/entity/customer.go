package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer cliente de una sucursal. El documento es único dentro de la sucursal.
type Customer struct {
	ID        string
	BranchID  string
	FirstName string
	LastName  string
	Document  string
	Phone     string
	Email     string
	Address   string
	Notes     string
	CreatedAt time.Time
}

// FullName apellido y nombre.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.LastName + ", " + c.FirstName
}

// Tipos de movimiento de cuenta corriente.
const (
	AccountKindSale       = "venta"
	AccountKindPayment    = "pago"
	AccountKindAdjustment = "ajuste"
)

// AccountMovement entrada append-only de la cuenta corriente de un cliente.
// Ventas y ajustes aumentan la deuda; los pagos la reducen.
type AccountMovement struct {
	ID         string
	CustomerID string
	Kind       string
	Amount     decimal.Decimal
	Reference  string
	Detail     string
	SaleID     *string
	UserID     string
	BranchID   string
	CreatedAt  time.Time
	UserName   string // solo lectura
	SaleCode   string // solo lectura
}
