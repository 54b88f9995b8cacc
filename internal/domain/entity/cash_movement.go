package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashKindIncome  = "ingreso"
	CashKindExpense = "egreso"
	CashKindOpening = "apertura"
	CashKindClosing = "cierre"
)

// CashMovement entrada inmutable del libro de movimientos de una caja.
type CashMovement struct {
	ID             string
	CashRegisterID string
	Kind           string
	Amount         decimal.Decimal
	Description    string
	UserID         string
	CreatedAt      time.Time
	UserName       string // solo lectura
}
