package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body para alta y edición de clientes.
type CustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Document  string `json:"document" validate:"required,notblank,max=30"`
	Phone     string `json:"phone" validate:"required,phone"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Address   string `json:"address" validate:"max=200"`
	Notes     string `json:"notes"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerListResponse página de búsqueda.
type CustomerListResponse struct {
	Data []CustomerResponse `json:"data"`
	Page PageResponse       `json:"page"`
}

// AccountMovementRequest body para POST /api/customers/:id/account.
// Amount es positivo para venta y pago; un ajuste puede ser negativo.
type AccountMovementRequest struct {
	Kind      string          `json:"kind" validate:"required,oneof=venta pago ajuste"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference" validate:"max=100"`
	Detail    string          `json:"detail" validate:"max=500"`
	SaleID    string          `json:"sale_id,omitempty" validate:"omitempty,uuid"`
}

// AccountMovementResponse movimiento con el saldo acumulado hasta él.
type AccountMovementResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference,omitempty"`
	Detail     string          `json:"detail,omitempty"`
	SaleID     *string         `json:"sale_id,omitempty"`
	SaleCode   string          `json:"sale_code,omitempty"`
	UserID     string          `json:"user_id"`
	UserName   string          `json:"user_name,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AccountStatementResponse cuenta corriente: saldo actual y movimientos, más recientes primero.
// Un saldo positivo es deuda del cliente.
type AccountStatementResponse struct {
	Customer  CustomerResponse          `json:"customer"`
	Balance   decimal.Decimal           `json:"balance"`
	Movements []AccountMovementResponse `json:"movements"`
}
