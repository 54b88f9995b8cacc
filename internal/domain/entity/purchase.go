package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de compra.
const (
	PurchaseStatusPending = "pendiente"
	PurchaseStatusPaid    = "pagado"
	PurchaseStatusVoided  = "anulado"
)

// Purchase compra a proveedor; cada línea ingresa stock vía ledger.
type Purchase struct {
	ID         string
	SupplierID string
	BranchID   string
	UserID     string
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

// PurchaseLine detalle de compra.
type PurchaseLine struct {
	ID          string
	PurchaseID  string
	ProductID   string
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string
}
