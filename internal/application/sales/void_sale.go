package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// VoidSaleUseCase anula ventas activas y devuelve su stock.
type VoidSaleUseCase struct {
	tx     ports.TxRunner
	events ports.EventPublisher
	log    *logger.Logger
}

// NewVoidSaleUseCase construye el caso de uso.
func NewVoidSaleUseCase(tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *VoidSaleUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &VoidSaleUseCase{tx: tx, events: events, log: log.Component("ventas")}
}

// Void marca la venta como anulada y suma de vuelta la cantidad de cada línea, en una transacción.
// No revierte el ingreso de caja ni escribe movimientos de stock.
// La devolución incluye las líneas que se vendieron sin descontar stock.
//
// ErrSaleNotFoundOrVoided si no existe, es de otra sucursal o ya está anulada;
// cualquier otro fallo se envuelve en ErrVoidFailed.
func (uc *VoidSaleUseCase) Void(ctx context.Context, actor entity.Actor, saleID string) error {
	if !validator.IsUUID(saleID) {
		return domain.ErrSaleNotFoundOrVoided
	}
	restored := 0
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		restored = 0
		sale, err := repos.Sales().GetActiveForUpdate(ctx, saleID, actor.BranchID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFoundOrVoided
		}
		if err := repos.Sales().SetStatus(ctx, sale.ID, entity.SaleStatusVoided); err != nil {
			return err
		}
		lines, err := repos.Sales().ListLineItems(ctx, sale.ID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := repos.Stock().Increment(ctx, l.ProductID, actor.BranchID, l.Quantity); err != nil {
				return err
			}
			restored += l.Quantity
		}
		return nil
	})
	if errors.Is(err, domain.ErrSaleNotFoundOrVoided) {
		return err
	}
	if err != nil {
		uc.log.Error().Err(err).Str("sale_id", saleID).Msg("error al anular venta")
		return fmt.Errorf("%w: %w", domain.ErrVoidFailed, err)
	}

	uc.log.Info().Str("sale_id", saleID).Int("unidades_devueltas", restored).Msg("venta anulada")
	uc.events.Publish(actor.BranchID, ports.EventSaleVoided, map[string]any{"id": saleID})
	return nil
}
