package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// SettingsRepository configuración global y por sucursal. Los Get devuelven nil si no hay fila.
type SettingsRepository interface {
	GetSalePolicy(ctx context.Context) (*entity.SystemSalePolicy, error)
	UpdateSalePolicy(ctx context.Context, p *entity.SystemSalePolicy) error
	GetPrintConfig(ctx context.Context, branchID string) (*entity.PrintConfig, error)
	GetBranchProfile(ctx context.Context, branchID string) (*entity.BranchProfile, error)
}
