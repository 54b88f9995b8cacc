package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementReportRow fila del reporte de movimientos de stock.
type StockMovementReportRow struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	Origin      string    `json:"origin"`
	Description string    `json:"description"`
	UserName    string    `json:"user_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CashRegisterSummaryResponse conciliación de una caja.
// Reconciled compara el saldo calculado con el monto de cierre declarado; false si sigue abierta.
type CashRegisterSummaryResponse struct {
	CashRegisterID string           `json:"cash_register_id"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	ClosingAmount  *decimal.Decimal `json:"closing_amount"`
	TotalIncomes   decimal.Decimal  `json:"total_incomes"`
	TotalExpenses  decimal.Decimal  `json:"total_expenses"`
	Balance        decimal.Decimal  `json:"balance"`
	Reconciled     bool             `json:"reconciled"`
}

// SalesReportRow fila del reporte de ventas por fechas.
type SalesReportRow struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CustomerID   *string         `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SalesPeriodRow resumen de ventas activas de un período (día, semana o mes).
type SalesPeriodRow struct {
	Period     time.Time       `json:"period"`
	SalesCount int             `json:"sales_count"`
	Total      decimal.Decimal `json:"total"`
}

// ProductSalesRow unidades y monto vendidos de un producto.
type ProductSalesRow struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}
