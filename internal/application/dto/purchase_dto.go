package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string              `json:"supplier_id,omitempty"`
	Total      decimal.Decimal     `json:"total"`
	Status     string              `json:"status,omitempty" validate:"omitempty,oneof=pendiente pagado anulado"`
	Items      []PurchaseItemInput `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemInput línea de compra.
type PurchaseItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseResponse compra con detalle.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"supplier_id,omitempty"`
	BranchID   string                 `json:"branch_id"`
	UserID     string                 `json:"user_id"`
	Total      decimal.Decimal        `json:"total"`
	Status     string                 `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	Items      []PurchaseLineResponse `json:"items"`
}

// PurchaseLineResponse línea de compra con nombre de producto.
type PurchaseLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}
