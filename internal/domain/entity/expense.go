package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto pagado con dinero de una caja abierta. Se registra junto con un egreso en esa caja.
type Expense struct {
	ID             string
	Category       string
	Description    string
	Amount         decimal.Decimal
	BranchID       string
	UserID         string
	CashRegisterID string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	UserName       string // solo lectura
}
