package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una sucursal.
// El núcleo de ventas solo lo lee (nombre para las vistas de venta y ticket).
// Code y Barcode son únicos por sucursal; Barcode es opcional.
type Product struct {
	ID          string
	BranchID    string
	Code        string
	Barcode     string
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
}
