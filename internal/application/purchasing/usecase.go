// Package purchasing registra compras a proveedores; cada línea ingresa stock por el ledger.
package purchasing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// UseCase alta y consulta de compras.
type UseCase struct {
	tx        ports.TxRunner
	ledger    *inventory.Ledger
	purchases repository.PurchaseRepository
	events    ports.EventPublisher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, ledger *inventory.Ledger, purchases repository.PurchaseRepository, events ports.EventPublisher, log *logger.Logger) *UseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &UseCase{tx: tx, ledger: ledger, purchases: purchases, events: events, log: log.Component("compras")}
}

// Create inserta la compra, su detalle y una entrada de stock por línea en una transacción.
// Un producto sin fila de stock en la sucursal aborta con ErrNotFound.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 || in.Total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	status := in.Status
	if status == "" {
		status = entity.PurchaseStatusPending
	}

	p := &entity.Purchase{
		ID:         uuid.New().String(),
		SupplierID: strings.TrimSpace(in.SupplierID),
		BranchID:   actor.BranchID,
		UserID:     actor.UserID,
		Total:      in.Total,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	lines := make([]*entity.PurchaseLine, 0, len(in.Items))
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		lines = lines[:0]
		if err := repos.Purchases().Create(ctx, p); err != nil {
			return err
		}
		for _, it := range in.Items {
			l := &entity.PurchaseLine{PurchaseID: p.ID, ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
			if err := repos.Purchases().CreateLine(ctx, l); err != nil {
				return err
			}
			lines = append(lines, l)
			if _, err := uc.ledger.Adjust(ctx, repos, inventory.Adjustment{
				ProductID:   it.ProductID,
				BranchID:    actor.BranchID,
				Delta:       it.Quantity,
				Kind:        entity.StockKindIn,
				Origin:      entity.StockOriginPurchase,
				Description: "Compra ID " + p.ID,
				UserID:      actor.UserID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("purchase_id", p.ID).Int("lineas", len(lines)).Msg("compra registrada")
	for _, l := range lines {
		uc.events.Publish(actor.BranchID, ports.EventStockAdjusted, map[string]any{"product_id": l.ProductID, "origin": entity.StockOriginPurchase})
	}
	return toPurchaseResponse(p, lines), nil
}

// Get compra con detalle; ErrNotFound si no es de la sucursal.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchases.GetByID(ctx, id, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchases.ListLines(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(p, lines), nil
}

func toPurchaseResponse(p *entity.Purchase, lines []*entity.PurchaseLine) *dto.PurchaseResponse {
	out := &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		BranchID:   p.BranchID,
		UserID:     p.UserID,
		Total:      p.Total,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		Items:      make([]dto.PurchaseLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Items = append(out.Items, dto.PurchaseLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return out
}
