package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ExpenseFilter filtros opcionales del listado de gastos.
type ExpenseFilter struct {
	BranchID string
	Category string
	From     *time.Time
	To       *time.Time
}

// ExpenseRepository gastos de la sucursal. GetByID devuelve nil si no hay fila.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id, branchID string) (*entity.Expense, error)
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha descendente.
	List(ctx context.Context, f ExpenseFilter) ([]*entity.Expense, error)
}
