package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo. Solo productos activos.
type ProductFilter struct {
	BranchID string
	// AutoBarcode deja solo los productos con código de barras de 13 dígitos (generados por el sistema).
	AutoBarcode bool
	Limit       int
	Offset      int
}

// ProductRepository catálogo de productos por sucursal.
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el código o el código de barras ya existen en la sucursal.
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	// GetByID, GetByCode y GetByBarcode devuelven nil si no existe en la sucursal.
	GetByID(ctx context.Context, id, branchID string) (*entity.Product, error)
	GetByCode(ctx context.Context, code, branchID string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode, branchID string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
}
