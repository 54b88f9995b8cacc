package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// CashRegisterRepository sesiones de caja. Los Get devuelven nil si no hay fila.
type CashRegisterRepository interface {
	Create(ctx context.Context, c *entity.CashRegister) error
	GetByID(ctx context.Context, id string) (*entity.CashRegister, error)
	GetOpenByUser(ctx context.Context, userID string) (*entity.CashRegister, error)
	GetOpenByUserAndBranch(ctx context.Context, userID, branchID string) (*entity.CashRegister, error)
	GetLastClosed(ctx context.Context, branchID string) (*entity.CashRegister, error)
	// Close solo afecta cajas abiertas; devuelve false si no se actualizó ninguna fila.
	Close(ctx context.Context, id string, closing, reported, difference decimal.Decimal, closedAt time.Time) (bool, error)
	List(ctx context.Context, branchID, userID string) ([]*entity.CashRegister, error)
}

// CashMovementRepository libro append-only de movimientos de caja.
type CashMovementRepository interface {
	Create(ctx context.Context, m *entity.CashMovement) error
	// ListByRegister ordena por fecha descendente.
	ListByRegister(ctx context.Context, cashRegisterID string) ([]*entity.CashMovement, error)
}
