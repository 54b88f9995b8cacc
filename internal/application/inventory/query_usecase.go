package inventory

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// DefaultLowStockThreshold umbral cuando no hay configuración del sistema.
const DefaultLowStockThreshold = 5

// StockQueryUseCase consultas de stock de la sucursal del actor.
type StockQueryUseCase struct {
	stock    repository.StockRepository
	settings repository.SettingsRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stock repository.StockRepository, settings repository.SettingsRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stock: stock, settings: settings}
}

// List stock de toda la sucursal.
func (uc *StockQueryUseCase) List(ctx context.Context, actor entity.Actor) ([]dto.StockResponse, error) {
	list, err := uc.stock.ListByBranch(ctx, actor.BranchID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(list), nil
}

// Get stock de un producto; ErrNotFound si no hay fila en la sucursal.
func (uc *StockQueryUseCase) Get(ctx context.Context, actor entity.Actor, productID string) (*dto.StockResponse, error) {
	e, err := uc.stock.Get(ctx, productID, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	out := toStockResponse(e)
	return &out, nil
}

// Low productos con stock por debajo de stock_minimo_default.
func (uc *StockQueryUseCase) Low(ctx context.Context, actor entity.Actor) (*dto.LowStockResponse, error) {
	threshold := DefaultLowStockThreshold
	policy, err := uc.settings.GetSalePolicy(ctx)
	if err != nil {
		return nil, err
	}
	if policy != nil && policy.DefaultMinStock > 0 {
		threshold = policy.DefaultMinStock
	}
	list, err := uc.stock.ListBelow(ctx, actor.BranchID, threshold)
	if err != nil {
		return nil, err
	}
	return &dto.LowStockResponse{Threshold: threshold, Items: toStockResponses(list)}, nil
}

func toStockResponses(list []*entity.StockEntry) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toStockResponse(e))
	}
	return out
}

func toStockResponse(e *entity.StockEntry) dto.StockResponse {
	return dto.StockResponse{
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		BranchID:    e.BranchID,
		Quantity:    e.Quantity,
		UpdatedAt:   e.UpdatedAt,
	}
}
