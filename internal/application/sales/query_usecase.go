package sales

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// QueryUseCase lecturas de ventas acotadas a la sucursal del actor.
type QueryUseCase struct {
	sales repository.SaleRepository
	view  composer
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(sales repository.SaleRepository, settings repository.SettingsRepository) *QueryUseCase {
	return &QueryUseCase{sales: sales, view: composer{sales: sales, settings: settings}}
}

// Get venta compuesta; ErrNotFound si no existe en la sucursal.
func (uc *QueryUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.view.compose(ctx, sale)
}

// List ventas de la sucursal, más recientes primero.
func (uc *QueryUseCase) List(ctx context.Context, actor entity.Actor, from, to *time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	return uc.list(ctx, repository.SaleFilter{
		BranchID: actor.BranchID,
		From:     from,
		To:       to,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// ByCustomer historial de compras de un cliente en la sucursal.
func (uc *QueryUseCase) ByCustomer(ctx context.Context, actor entity.Actor, customerID string, from, to *time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return uc.list(ctx, repository.SaleFilter{
		BranchID:   actor.BranchID,
		CustomerID: customerID,
		From:       from,
		To:         to,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

func (uc *QueryUseCase) list(ctx context.Context, f repository.SaleFilter) (*dto.SaleListResponse, error) {
	list, err := uc.sales.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSummary(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}
