package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenCashRegisterRequest body para POST /api/cash-registers/open.
type OpenCashRegisterRequest struct {
	Shift         string          `json:"shift" validate:"max=20"`
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"gte=0"`
}

// CashMovementRequest body para POST /api/cash-registers/movements.
type CashMovementRequest struct {
	CashRegisterID string          `json:"cash_register_id"`
	Kind           string          `json:"kind" validate:"max=20"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	Description    string          `json:"description,omitempty" validate:"max=500"`
}

// CloseCashRegisterRequest body para PUT /api/cash-registers/:id/close.
type CloseCashRegisterRequest struct {
	ClosingAmount decimal.Decimal `json:"closing_amount" validate:"gte=0"`
	ReportedCash  decimal.Decimal `json:"reported_cash" validate:"gte=0"`
}

// CashRegisterResponse sesión de caja.
type CashRegisterResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	UserName      string           `json:"user_name,omitempty"`
	BranchID      string           `json:"branch_id"`
	Shift         string           `json:"shift"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	OpenedAt      time.Time        `json:"opened_at"`
	ClosingAmount *decimal.Decimal `json:"closing_amount"`
	ReportedCash  *decimal.Decimal `json:"reported_cash"`
	Difference    *decimal.Decimal `json:"difference"`
	ClosedAt      *time.Time       `json:"closed_at"`
	Open          bool             `json:"open"`
}

// CloseCashRegisterResponse respuesta de cierre.
type CloseCashRegisterResponse struct {
	Message    string          `json:"message"`
	Difference decimal.Decimal `json:"difference"`
}

// CashMovementResponse movimiento de caja.
type CashMovementResponse struct {
	ID             string          `json:"id"`
	CashRegisterID string          `json:"cash_register_id"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	UserID         string          `json:"user_id"`
	UserName       string          `json:"user_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CashBalanceResponse saldo calculado de la caja.
type CashBalanceResponse struct {
	CashRegisterID string          `json:"cash_register_id"`
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	TotalIncomes   decimal.Decimal `json:"total_incomes"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Balance        decimal.Decimal `json:"balance"`
}

// OpenCashRegisterStatusResponse GET /api/cash-registers/open.
// Caja nil con mensaje cuando no hay caja abierta (o no hace falta por política).
type OpenCashRegisterStatusResponse struct {
	Message string                `json:"message,omitempty"`
	Caja    *CashRegisterResponse `json:"caja"`
}
