package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// SaleFilter filtros opcionales para listados de ventas.
type SaleFilter struct {
	BranchID   string
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// SaleRepository cabecera, líneas y pagos de venta.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	CreateLineItem(ctx context.Context, l *entity.SaleLineItem) error
	CreatePayment(ctx context.Context, p *entity.SalePayment) error
	// GetByID acotado a la sucursal; nil si no existe.
	GetByID(ctx context.Context, id, branchID string) (*entity.Sale, error)
	// GetActiveForUpdate bloquea la venta activa de la sucursal; nil si no existe o está anulada.
	GetActiveForUpdate(ctx context.Context, id, branchID string) (*entity.Sale, error)
	SetStatus(ctx context.Context, id, status string) error
	ListLineItems(ctx context.Context, saleID string) ([]*entity.SaleLineItem, error)
	ListPayments(ctx context.Context, saleID string) ([]*entity.SalePayment, error)
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
}
