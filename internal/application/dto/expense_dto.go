package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest body para POST /api/expenses y PUT /api/expenses/:id.
type ExpenseRequest struct {
	Category    string          `json:"category" validate:"required,notblank,max=60"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
}

// ExpenseResponse gasto con la caja de la que salió el dinero.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	BranchID       string          `json:"branch_id"`
	UserID         string          `json:"user_id"`
	UserName       string          `json:"user_name,omitempty"`
	CashRegisterID string          `json:"cash_register_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}
