package cashregister

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/cashregister"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// UseCase ciclo de vida de la caja: apertura, movimientos, cierre y consultas.
type UseCase struct {
	tx        ports.TxRunner
	registers repository.CashRegisterRepository
	movements repository.CashMovementRepository
	settings  repository.SettingsRepository
	events    ports.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. Los repos sueltos se usan solo para lecturas.
func NewUseCase(
	tx ports.TxRunner,
	registers repository.CashRegisterRepository,
	movements repository.CashMovementRepository,
	settings repository.SettingsRepository,
	events ports.EventPublisher,
	log *logger.Logger,
) *UseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &UseCase{
		tx:        tx,
		registers: registers,
		movements: movements,
		settings:  settings,
		events:    events,
		log:       log.Component("caja"),
		now:       time.Now,
	}
}

// Open abre una caja para el actor. ErrInvalidShift si el turno no es Mañana/Tarde/Noche;
// ErrAlreadyOpen si el usuario ya tiene una caja sin cerrar (en cualquier sucursal).
func (uc *UseCase) Open(ctx context.Context, actor entity.Actor, in dto.OpenCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	shift, err := cashregister.NormalizeShift(in.Shift)
	if err != nil {
		return nil, err
	}
	if in.OpeningAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	c := &entity.CashRegister{
		UserID:        actor.UserID,
		BranchID:      actor.BranchID,
		Shift:         shift,
		OpeningAmount: in.OpeningAmount,
		OpenedAt:      uc.now(),
	}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		open, err := repos.CashRegisters().GetOpenByUser(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrAlreadyOpen
		}
		// El índice único parcial cubre la carrera entre esta lectura y el insert.
		return repos.CashRegisters().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("caja_id", c.ID).Str("user_id", actor.UserID).Str("turno", shift).Msg("caja abierta")
	out := toCashRegisterResponse(c)
	uc.events.Publish(actor.BranchID, ports.EventCashOpened, out)
	return &out, nil
}

// RecordMovement agrega un movimiento a una caja abierta de la sucursal del actor.
func (uc *UseCase) RecordMovement(ctx context.Context, actor entity.Actor, in dto.CashMovementRequest) (*dto.CashMovementResponse, error) {
	if !cashregister.ValidMovementKind(in.Kind) {
		return nil, domain.ErrInvalidMovementKind
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !validator.IsUUID(in.CashRegisterID) {
		return nil, domain.ErrSessionNotOpen
	}

	m := &entity.CashMovement{
		CashRegisterID: in.CashRegisterID,
		Kind:           in.Kind,
		Amount:         in.Amount,
		Description:    strings.TrimSpace(in.Description),
		UserID:         actor.UserID,
		CreatedAt:      uc.now(),
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := repos.CashRegisters().GetByID(ctx, in.CashRegisterID)
		if err != nil {
			return err
		}
		if !c.IsOpen() || c.BranchID != actor.BranchID {
			return domain.ErrSessionNotOpen
		}
		return repos.CashMovements().Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	out := toCashMovementResponse(m)
	uc.events.Publish(actor.BranchID, ports.EventCashMovement, out)
	return &out, nil
}

// Close cierra la caja: diferencia = dinero rendido - monto de cierre. El cierre es irreversible;
// una caja inexistente, ajena o ya cerrada devuelve ErrSessionNotOpen.
func (uc *UseCase) Close(ctx context.Context, actor entity.Actor, id string, in dto.CloseCashRegisterRequest) (*dto.CloseCashRegisterResponse, error) {
	if !validator.IsUUID(id) {
		return nil, domain.ErrSessionNotOpen
	}
	if in.ClosingAmount.IsNegative() || in.ReportedCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	difference := in.ReportedCash.Sub(in.ClosingAmount)
	closedAt := uc.now()

	var closedID string
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		c, err := repos.CashRegisters().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !c.IsOpen() || c.BranchID != actor.BranchID {
			return domain.ErrSessionNotOpen
		}
		closedID = c.ID
		closed, err := repos.CashRegisters().Close(ctx, c.ID, in.ClosingAmount, in.ReportedCash, difference, closedAt)
		if err != nil {
			return err
		}
		if !closed {
			return domain.ErrSessionNotOpen
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("caja_id", closedID).Str("diferencia", difference.StringFixed(2)).Msg("caja cerrada")
	uc.events.Publish(actor.BranchID, ports.EventCashClosed, map[string]any{"id": closedID, "difference": difference})
	return &dto.CloseCashRegisterResponse{Message: "Caja cerrada correctamente", Difference: difference}, nil
}

// CurrentOpen caja abierta del actor en su sucursal, o nil.
func (uc *UseCase) CurrentOpen(ctx context.Context, actor entity.Actor) (*dto.CashRegisterResponse, error) {
	c, err := uc.registers.GetOpenByUserAndBranch(ctx, actor.UserID, actor.BranchID)
	if err != nil || c == nil {
		return nil, err
	}
	out := toCashRegisterResponse(c)
	return &out, nil
}

// OpenStatus respuesta de GET /cash-registers/open: la caja abierta si existe; si no, un mensaje
// cuando la política permite vender sin caja, o ErrNotFound.
func (uc *UseCase) OpenStatus(ctx context.Context, actor entity.Actor) (*dto.OpenCashRegisterStatusResponse, error) {
	current, err := uc.CurrentOpen(ctx, actor)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return &dto.OpenCashRegisterStatusResponse{Caja: current}, nil
	}
	policy, err := uc.settings.GetSalePolicy(ctx)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.ErrPolicyMissing
	}
	if policy.AllowSaleWithoutRegister {
		return &dto.OpenCashRegisterStatusResponse{Message: "Venta sin caja permitida"}, nil
	}
	return nil, domain.ErrNotFound
}

// LastClosed última caja cerrada de la sucursal, o nil.
func (uc *UseCase) LastClosed(ctx context.Context, actor entity.Actor) (*dto.CashRegisterResponse, error) {
	c, err := uc.registers.GetLastClosed(ctx, actor.BranchID)
	if err != nil || c == nil {
		return nil, err
	}
	out := toCashRegisterResponse(c)
	return &out, nil
}

// List cajas de la sucursal. Un cajero solo ve las propias; admin y supervisor pueden filtrar por usuario.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, userID string) ([]dto.CashRegisterResponse, error) {
	if actor.Role == entity.RoleCajero {
		userID = actor.UserID
	}
	list, err := uc.registers.List(ctx, actor.BranchID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCashRegisterResponse(c))
	}
	return out, nil
}

// Movements movimientos de una caja de la sucursal, más recientes primero.
func (uc *UseCase) Movements(ctx context.Context, actor entity.Actor, id string) ([]dto.CashMovementResponse, error) {
	if _, err := uc.ownRegister(ctx, actor, id); err != nil {
		return nil, err
	}
	list, err := uc.movements.ListByRegister(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toCashMovementResponse(m))
	}
	return out, nil
}

// Balance saldo calculado: apertura + ingresos - egresos.
func (uc *UseCase) Balance(ctx context.Context, actor entity.Actor, id string) (*dto.CashBalanceResponse, error) {
	c, err := uc.ownRegister(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.movements.ListByRegister(ctx, id)
	if err != nil {
		return nil, err
	}
	s := cashregister.Fold(c.OpeningAmount, list)
	return &dto.CashBalanceResponse{
		CashRegisterID: id,
		OpeningAmount:  s.Opening,
		TotalIncomes:   s.Incomes,
		TotalExpenses:  s.Expenses,
		Balance:        s.Balance,
	}, nil
}

func (uc *UseCase) ownRegister(ctx context.Context, actor entity.Actor, id string) (*entity.CashRegister, error) {
	if !validator.IsUUID(id) {
		return nil, domain.ErrNotFound
	}
	c, err := uc.registers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.BranchID != actor.BranchID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toCashRegisterResponse(c *entity.CashRegister) dto.CashRegisterResponse {
	return dto.CashRegisterResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		UserName:      c.UserName,
		BranchID:      c.BranchID,
		Shift:         c.Shift,
		OpeningAmount: c.OpeningAmount,
		OpenedAt:      c.OpenedAt,
		ClosingAmount: c.ClosingAmount,
		ReportedCash:  c.ReportedCash,
		Difference:    c.Difference,
		ClosedAt:      c.ClosedAt,
		Open:          c.IsOpen(),
	}
}

func toCashMovementResponse(m *entity.CashMovement) dto.CashMovementResponse {
	return dto.CashMovementResponse{
		ID:             m.ID,
		CashRegisterID: m.CashRegisterID,
		Kind:           m.Kind,
		Amount:         m.Amount,
		Description:    m.Description,
		UserID:         m.UserID,
		UserName:       m.UserName,
		CreatedAt:      m.CreatedAt,
	}
}
