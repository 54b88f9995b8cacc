package entity

import "time"

// StockEntry representa la cantidad disponible de un producto en una sucursal.
// Existe a lo sumo una fila por (producto, sucursal); solo el ledger de stock la modifica.
type StockEntry struct {
	ID          string
	ProductID   string
	BranchID    string
	Quantity    int
	ProductName string // solo lectura (JOIN con productos)
	UpdatedAt   time.Time
}
