package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. anulada es terminal.
const (
	SaleStatusActive = "activa"
	SaleStatusVoided = "anulada"
)

// Sale cabecera de una venta.
type Sale struct {
	ID             string
	Code           string
	Total          decimal.Decimal
	CustomerID     *string
	CashRegisterID *string
	BranchID       string
	UserID         string
	Status         string
	CreatedAt      time.Time
}

// SaleLineItem línea de venta; inmutable una vez persistida.
type SaleLineItem struct {
	ID          string
	SaleID      string
	ProductID   string
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string // solo lectura
}

// Subtotal cantidad * precio unitario.
func (l SaleLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SalePayment pago aplicado a una venta.
type SalePayment struct {
	ID          string
	SaleID      string
	PaymentKind string // efectivo, debito, credito, transferencia...
	Amount      decimal.Decimal
}
