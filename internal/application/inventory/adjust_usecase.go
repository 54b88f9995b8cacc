package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// AdjustStockUseCase ajuste manual de stock (origen "ajuste") en una transacción.
type AdjustStockUseCase struct {
	tx     ports.TxRunner
	ledger *Ledger
	events ports.EventPublisher
	log    *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(tx ports.TxRunner, ledger *Ledger, events ports.EventPublisher, log *logger.Logger) *AdjustStockUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &AdjustStockUseCase{tx: tx, ledger: ledger, events: events, log: log.Component("stock")}
}

// Adjust valida tipo y cantidad, aplica el delta con la fila bloqueada y devuelve el stock resultante.
// ErrNotFound si no hay fila de stock; ErrInsufficientStock si una salida deja stock negativo.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, actor entity.Actor, in dto.StockAdjustRequest) (*dto.StockAdjustResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	delta := in.Quantity
	switch in.Kind {
	case entity.StockKindIn:
	case entity.StockKindOut:
		delta = -in.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = "Ajuste manual"
	}

	var current int
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		current, err = uc.ledger.Adjust(ctx, repos, Adjustment{
			ProductID:   in.ProductID,
			BranchID:    actor.BranchID,
			Delta:       delta,
			Kind:        in.Kind,
			Origin:      entity.StockOriginAdjustment,
			Description: description,
			UserID:      actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", in.ProductID).Str("branch_id", actor.BranchID).
		Int("delta", delta).Int("stock", current).Msg("ajuste de stock registrado")
	uc.events.Publish(actor.BranchID, ports.EventStockAdjusted, map[string]any{
		"product_id": in.ProductID,
		"stock":      current,
	})
	return &dto.StockAdjustResponse{Message: "Ajuste de stock registrado", StockActual: current}, nil
}
