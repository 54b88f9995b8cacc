package entity

import "time"

// Tipos de movimiento de stock.
const (
	StockKindIn  = "entrada"
	StockKindOut = "salida"
)

// Orígenes de un movimiento de stock.
const (
	StockOriginPurchase   = "compra"
	StockOriginSale       = "venta"
	StockOriginAdjustment = "ajuste"
)

// StockMovement registro inmutable de cada cambio de stock.
// Quantity lleva signo: positivo para entradas, negativo para salidas.
type StockMovement struct {
	ID          string
	ProductID   string
	BranchID    string
	Quantity    int
	Kind        string // entrada | salida
	Origin      string // compra | venta | ajuste
	Description string
	UserID      string
	CreatedAt   time.Time
	ProductName string // solo lectura (reportes)
	UserName    string // solo lectura (reportes)
}
