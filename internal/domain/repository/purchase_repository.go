package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// PurchaseRepository compras y su detalle.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	CreateLine(ctx context.Context, l *entity.PurchaseLine) error
	GetByID(ctx context.Context, id, branchID string) (*entity.Purchase, error)
	ListLines(ctx context.Context, purchaseID string) ([]*entity.PurchaseLine, error)
}
