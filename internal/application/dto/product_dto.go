package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Sin barcode se genera un EAN-13.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,notblank,max=50"`
	Barcode     string          `json:"barcode" validate:"omitempty,max=50"`
	Name        string          `json:"name" validate:"required,notblank,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización parcial; los campos nulos no se tocan.
type UpdateProductRequest struct {
	Code        *string          `json:"code" validate:"omitempty,max=50"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=50"`
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	Code        string          `json:"code"`
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
