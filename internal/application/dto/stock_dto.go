package dto

import "time"

// StockAdjustRequest body para POST /api/stock/adjust.
type StockAdjustRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	Kind        string `json:"kind" validate:"required,oneof=entrada salida"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// StockAdjustResponse resultado del ajuste manual.
type StockAdjustResponse struct {
	Message     string `json:"message"`
	StockActual int    `json:"stock_actual"`
}

// StockResponse stock de un producto en la sucursal.
type StockResponse struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	BranchID    string    `json:"branch_id"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LowStockResponse productos bajo el umbral configurado.
type LowStockResponse struct {
	Threshold int             `json:"threshold"`
	Items     []StockResponse `json:"items"`
}
