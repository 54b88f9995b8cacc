package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// StockMovementFilter predicados opcionales del reporte de movimientos de stock.
// Los campos vacíos/nil no filtran.
type StockMovementFilter struct {
	BranchID  string
	ProductID string
	Kind      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// CashRegisterFilter predicados opcionales del reporte de cajas.
type CashRegisterFilter struct {
	BranchID string
	UserID   string
	From     *time.Time
	To       *time.Time
}

// SalesReportFilter predicados opcionales del reporte de ventas por fechas.
// ProductID filtra ventas que contengan al menos una línea de ese producto.
type SalesReportFilter struct {
	BranchID   string
	UserID     string
	CustomerID string
	ProductID  string
	From       *time.Time
	To         *time.Time
}

// SalesReportRow venta con nombres de usuario y cliente.
type SalesReportRow struct {
	Sale         *entity.Sale
	UserName     string
	CustomerName string
}

// Periodos de agrupación del resumen de ventas.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
)

// PeriodTotal ventas activas agrupadas por período.
type PeriodTotal struct {
	Period time.Time
	Count  int
	Total  decimal.Decimal
}

// ProductSalesTotal unidades y monto vendidos de un producto en ventas activas.
type ProductSalesTotal struct {
	ProductID   string
	ProductName string
	Quantity    int
	Total       decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre los libros de stock, caja y ventas.
type ReportRepository interface {
	StockMovements(ctx context.Context, f StockMovementFilter) ([]*entity.StockMovement, error)
	CashRegisters(ctx context.Context, f CashRegisterFilter) ([]*entity.CashRegister, error)
	// Sales incluye ventas anuladas; más recientes primero.
	Sales(ctx context.Context, f SalesReportFilter) ([]SalesReportRow, error)
	// SalesByPeriod solo ventas activas, período más reciente primero.
	SalesByPeriod(ctx context.Context, branchID, period string) ([]PeriodTotal, error)
	// SalesByProduct solo ventas activas, mayor monto primero.
	SalesByProduct(ctx context.Context, branchID string) ([]ProductSalesTotal, error)
}
