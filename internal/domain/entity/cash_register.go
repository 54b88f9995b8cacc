package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Turnos canónicos de caja.
const (
	ShiftMorning   = "Mañana"
	ShiftAfternoon = "Tarde"
	ShiftNight     = "Noche"
)

// CashRegister sesión de caja de un usuario en una sucursal.
// ClosedAt nil indica caja abierta; el cierre es irreversible.
type CashRegister struct {
	ID            string
	UserID        string
	BranchID      string
	Shift         string
	OpeningAmount decimal.Decimal
	OpenedAt      time.Time
	ClosingAmount *decimal.Decimal
	ReportedCash  *decimal.Decimal
	Difference    *decimal.Decimal
	ClosedAt      *time.Time
	UserName      string // solo lectura (JOIN con usuarios)
}

// IsOpen indica si la sesión sigue abierta.
func (c *CashRegister) IsOpen() bool {
	return c != nil && c.ClosedAt == nil
}
