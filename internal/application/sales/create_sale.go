package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-backoffice/internal/domain/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-backoffice/internal/domain/sales"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// CreateSaleUseCase registra una venta completa (cabecera, detalle, stock, pagos y caja) en una sola transacción.
type CreateSaleUseCase struct {
	tx     ports.TxRunner
	ledger *inventory.Ledger
	view   composer
	events ports.EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// NewCreateSaleUseCase construye el orquestador. sales y settings se usan para releer la venta tras el commit.
func NewCreateSaleUseCase(
	tx ports.TxRunner,
	ledger *inventory.Ledger,
	sales repository.SaleRepository,
	settings repository.SettingsRepository,
	events ports.EventPublisher,
	log *logger.Logger,
) *CreateSaleUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &CreateSaleUseCase{
		tx:     tx,
		ledger: ledger,
		view:   composer{sales: sales, settings: settings},
		events: events,
		log:    log.Component("ventas"),
		now:    time.Now,
	}
}

// Create valida el carrito y los pagos y luego ejecuta la venta.
//
// Antes de la transacción: ErrEmptyCart, ErrNoPayment, ErrInvalidInput (pago no positivo),
// ErrPaymentMismatch (redondeo a 2 decimales, igualdad exacta).
// Dentro de la transacción, cualquier error revierte todo:
//   - ErrPolicyMissing si no hay configuración del sistema.
//   - ErrRegisterClosed si la caja no está abierta y la política no permite vender sin caja.
//   - ErrInvalidInput si customer_id no es un cliente de la sucursal.
//   - ErrProductStockMissing si un producto no tiene fila de stock en la sucursal.
//   - ErrInsufficientStock si falta stock y la política no permite vender sin stock.
//
// Con stock insuficiente pero permitido, la línea se registra sin descontar stock ni escribir movimiento.
func (uc *CreateSaleUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// ── 1. Validaciones previas ───────────────────────────────────────────────
	if len(in.LineItems) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if len(in.Payments) == 0 {
		return nil, domain.ErrNoPayment
	}
	payments := make([]entity.SalePayment, 0, len(in.Payments))
	for _, p := range in.Payments {
		if !p.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		payments = append(payments, entity.SalePayment{PaymentKind: p.PaymentKind, Amount: p.Amount})
	}
	if !domainsales.PaymentsMatch(in.Total, payments) {
		return nil, domain.ErrPaymentMismatch
	}
	for _, li := range in.LineItems {
		if li.ProductID == "" || li.Quantity <= 0 || li.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = "V-" + strings.ToUpper(uuid.New().String()[:8])
	}
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		Code:       code,
		Total:      in.Total,
		CustomerID: optional(in.CustomerID),
		BranchID:   actor.BranchID,
		UserID:     actor.UserID,
		Status:     entity.SaleStatusActive,
		CreatedAt:  uc.now(),
	}
	lines := make([]*entity.SaleLineItem, 0, len(in.LineItems))
	skipped := 0

	// ── 2. Transacción ────────────────────────────────────────────────────────
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		lines = lines[:0]
		skipped = 0

		policy, err := repos.Settings().GetSalePolicy(ctx)
		if err != nil {
			return err
		}
		if policy == nil {
			return domain.ErrPolicyMissing
		}

		sale.CashRegisterID = nil
		// Un id mal formado no referencia ninguna caja abierta
		if validator.IsUUID(in.CashRegisterID) {
			c, err := repos.CashRegisters().GetByID(ctx, in.CashRegisterID)
			if err != nil {
				return err
			}
			if c.IsOpen() && c.BranchID == actor.BranchID {
				id := c.ID
				sale.CashRegisterID = &id
			}
		}
		if sale.CashRegisterID == nil && !policy.AllowSaleWithoutRegister {
			return domain.ErrRegisterClosed
		}

		if sale.CustomerID != nil {
			customer, err := repos.Customers().GetByID(ctx, *sale.CustomerID, actor.BranchID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("%w: cliente %s", domain.ErrInvalidInput, *sale.CustomerID)
			}
		}

		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}

		for _, li := range in.LineItems {
			entry, err := uc.ledger.Lock(ctx, repos, li.ProductID, actor.BranchID)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: producto %s", domain.ErrProductStockMissing, li.ProductID)
			}
			if err != nil {
				return err
			}
			covers := domaininv.Covers(entry.Quantity, li.Quantity)
			if !covers && !policy.AllowSaleWithoutStock {
				return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, li.ProductID)
			}

			line := &entity.SaleLineItem{
				SaleID:    sale.ID,
				ProductID: li.ProductID,
				Quantity:  li.Quantity,
				UnitPrice: li.UnitPrice,
			}
			if err := repos.Sales().CreateLineItem(ctx, line); err != nil {
				return err
			}
			lines = append(lines, line)

			if !covers {
				skipped++
				continue
			}
			if _, err := uc.ledger.Apply(ctx, repos, entry, inventory.Adjustment{
				ProductID:   li.ProductID,
				BranchID:    actor.BranchID,
				Delta:       -li.Quantity,
				Kind:        entity.StockKindOut,
				Origin:      entity.StockOriginSale,
				Description: "Venta ID " + sale.ID,
				UserID:      actor.UserID,
			}); err != nil {
				return err
			}
		}

		for i := range payments {
			payments[i].SaleID = sale.ID
			if err := repos.Sales().CreatePayment(ctx, &payments[i]); err != nil {
				return err
			}
		}

		if sale.CashRegisterID != nil {
			if err := repos.CashMovements().Create(ctx, &entity.CashMovement{
				CashRegisterID: *sale.CashRegisterID,
				Kind:           entity.CashKindIncome,
				Amount:         sale.Total,
				Description:    "Venta código " + sale.Code,
				UserID:         actor.UserID,
				CreatedAt:      sale.CreatedAt,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("branch_id", actor.BranchID).Str("code", code).Msg("venta rechazada")
		return nil, err
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("code", sale.Code).Str("total", sale.Total.StringFixed(2)).
		Int("lineas", len(lines)).Int("sin_descuento_stock", skipped).Msg("venta registrada")

	// ── 3. Vista compuesta (después del commit) ───────────────────────────────
	out, err := uc.view.compose(ctx, sale)
	if err != nil {
		// La venta ya está confirmada; se responde con lo que se tiene en memoria.
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("no se pudo releer la venta")
		out = saleHeader(sale)
		out.LineItems = toLineResponses(lines)
		out.Payments = toPaymentResponses(paymentPtrs(payments))
	}
	uc.events.Publish(actor.BranchID, ports.EventSaleCreated, toSummary(sale))
	return out, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func paymentPtrs(payments []entity.SalePayment) []*entity.SalePayment {
	out := make([]*entity.SalePayment, 0, len(payments))
	for i := range payments {
		out = append(out, &payments[i])
	}
	return out
}
