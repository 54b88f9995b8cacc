package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// CashRegisterID puede ir vacío si la política permite vender sin caja.
type CreateSaleRequest struct {
	Code           string              `json:"code" validate:"omitempty,max=60"`
	Total          decimal.Decimal     `json:"total" validate:"gte=0"`
	CustomerID     string              `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	CashRegisterID string              `json:"cash_register_id,omitempty"`
	LineItems      []SaleLineItemInput `json:"line_items" validate:"dive"`
	Payments       []SalePaymentInput  `json:"payments" validate:"dive"`
}

// SaleLineItemInput línea del carrito.
type SaleLineItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// SalePaymentInput forma de pago.
type SalePaymentInput struct {
	PaymentKind string          `json:"payment_kind" validate:"required,max=30"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
}

// SaleResponse venta compuesta: cabecera, detalle, pagos y configuración de ticket de la sucursal.
type SaleResponse struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"code"`
	Total          decimal.Decimal        `json:"total"`
	CustomerID     *string                `json:"customer_id"`
	CashRegisterID *string                `json:"cash_register_id"`
	BranchID       string                 `json:"branch_id"`
	UserID         string                 `json:"user_id"`
	Status         string                 `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
	LineItems      []SaleLineItemResponse `json:"line_items"`
	Payments       []SalePaymentResponse  `json:"payments"`
	BranchProfile  *BranchProfileResponse `json:"branch_profile"`
	PrintConfig    *PrintConfigResponse   `json:"print_config"`
}

// SaleLineItemResponse línea de la venta con nombre de producto.
type SaleLineItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalePaymentResponse pago registrado.
type SalePaymentResponse struct {
	ID          string          `json:"id"`
	PaymentKind string          `json:"payment_kind"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleSummaryResponse fila de listados de ventas (sin detalle).
type SaleSummaryResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Total          decimal.Decimal `json:"total"`
	CustomerID     *string         `json:"customer_id"`
	CashRegisterID *string         `json:"cash_register_id"`
	UserID         string          `json:"user_id"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleSummaryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
