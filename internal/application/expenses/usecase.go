// Package expenses registra gastos pagados con dinero de la caja abierta del usuario.
// Cada alta, edición o baja deja su contrapartida en el libro de movimientos de esa caja.
package expenses

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// Query filtros opcionales del listado.
type Query struct {
	From     *time.Time
	To       *time.Time
	Category string
}

// UseCase alta, edición, baja y listado de gastos.
type UseCase struct {
	tx       ports.TxRunner
	expenses repository.ExpenseRepository
	events   ports.EventPublisher
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. expenses se usa solo para lecturas.
func NewUseCase(tx ports.TxRunner, expenses repository.ExpenseRepository, events ports.EventPublisher, log *logger.Logger) *UseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &UseCase{tx: tx, expenses: expenses, events: events, log: log.Component("gastos"), now: time.Now}
}

// Create inserta el gasto y un egreso por el mismo monto en la caja abierta del actor.
// ErrSessionNotOpen si el actor no tiene caja abierta en su sucursal.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	category, description, err := clean(in)
	if err != nil {
		return nil, err
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Category:    category,
		Description: description,
		Amount:      in.Amount,
		BranchID:    actor.BranchID,
		UserID:      actor.UserID,
		CreatedAt:   uc.now(),
	}
	var mov *entity.CashMovement
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := repos.CashRegisters().GetOpenByUserAndBranch(ctx, actor.UserID, actor.BranchID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrSessionNotOpen
		}
		e.CashRegisterID = c.ID
		if err := repos.Expenses().Create(ctx, e); err != nil {
			return err
		}
		mov = uc.movement(e, entity.CashKindExpense, e.Amount, "Gasto")
		return repos.CashMovements().Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("gasto_id", e.ID).Str("caja_id", e.CashRegisterID).Str("monto", e.Amount.StringFixed(2)).Msg("gasto registrado")
	uc.events.Publish(actor.BranchID, ports.EventCashMovement, map[string]any{"cash_register_id": mov.CashRegisterID, "kind": mov.Kind, "amount": mov.Amount})
	return toResponse(e), nil
}

// Update reemplaza categoría, descripción y monto mientras la caja del gasto siga abierta y sea del actor.
// Si cambia el monto, la diferencia se asienta como egreso (aumento) o ingreso (reducción).
func (uc *UseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	category, description, err := clean(in)
	if err != nil {
		return nil, err
	}
	if !validator.IsUUID(id) {
		return nil, domain.ErrNotFound
	}
	var e *entity.Expense
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		e, err = uc.editable(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		diff := in.Amount.Sub(e.Amount)
		e.Category = category
		e.Description = description
		e.Amount = in.Amount
		if err := repos.Expenses().Update(ctx, e); err != nil {
			return err
		}
		switch {
		case diff.IsPositive():
			return repos.CashMovements().Create(ctx, uc.movement(e, entity.CashKindExpense, diff, "Ajuste gasto"))
		case diff.IsNegative():
			return repos.CashMovements().Create(ctx, uc.movement(e, entity.CashKindIncome, diff.Neg(), "Ajuste gasto"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("gasto_id", e.ID).Str("monto", e.Amount.StringFixed(2)).Msg("gasto editado")
	return toResponse(e), nil
}

// Delete borra el gasto y devuelve su monto a la caja con un ingreso. Mismas condiciones que Update.
func (uc *UseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !validator.IsUUID(id) {
		return domain.ErrNotFound
	}
	var e *entity.Expense
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		e, err = uc.editable(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		if err := repos.Expenses().Delete(ctx, e.ID); err != nil {
			return err
		}
		return repos.CashMovements().Create(ctx, uc.movement(e, entity.CashKindIncome, e.Amount, "Gasto eliminado"))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("gasto_id", e.ID).Str("caja_id", e.CashRegisterID).Msg("gasto eliminado")
	return nil
}

// List gastos de la sucursal, más recientes primero.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, q Query) ([]dto.ExpenseResponse, error) {
	list, err := uc.expenses.List(ctx, repository.ExpenseFilter{
		BranchID: actor.BranchID,
		Category: strings.TrimSpace(q.Category),
		From:     q.From,
		To:       q.To,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toResponse(e))
	}
	return out, nil
}

// editable carga el gasto y verifica que su caja siga abierta y pertenezca al actor.
func (uc *UseCase) editable(ctx context.Context, repos repository.Repos, actor entity.Actor, id string) (*entity.Expense, error) {
	e, err := repos.Expenses().GetByID(ctx, id, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	c, err := repos.CashRegisters().GetByID(ctx, e.CashRegisterID)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.IsOpen() || c.UserID != actor.UserID {
		return nil, domain.ErrExpenseLocked
	}
	return e, nil
}

func (uc *UseCase) movement(e *entity.Expense, kind string, amount decimal.Decimal, prefix string) *entity.CashMovement {
	desc := prefix + ": " + e.Category
	if e.Description != "" {
		desc += " - " + e.Description
	}
	return &entity.CashMovement{
		CashRegisterID: e.CashRegisterID,
		Kind:           kind,
		Amount:         amount,
		Description:    desc,
		UserID:         e.UserID,
		CreatedAt:      uc.now(),
	}
}

func clean(in dto.ExpenseRequest) (category, description string, err error) {
	category = strings.TrimSpace(in.Category)
	if category == "" || !in.Amount.IsPositive() {
		return "", "", domain.ErrInvalidInput
	}
	return category, strings.TrimSpace(in.Description), nil
}

func toResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:             e.ID,
		Category:       e.Category,
		Description:    e.Description,
		Amount:         e.Amount,
		BranchID:       e.BranchID,
		UserID:         e.UserID,
		UserName:       e.UserName,
		CashRegisterID: e.CashRegisterID,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
