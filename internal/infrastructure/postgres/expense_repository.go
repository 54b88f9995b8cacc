package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo tabla gastos.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseSelect = `
	SELECT g.id, g.categoria, g.descripcion, g.monto, g.sucursal_id, g.usuario_id, g.caja_id,
	       g.fecha, g.updated_at, COALESCE(u.nombre, '')
	FROM gastos g LEFT JOIN usuarios u ON u.id = g.usuario_id`

// Create inserta el gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO gastos (id, categoria, descripcion, monto, sucursal_id, usuario_id, caja_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, e.ID, e.Category, e.Description, e.Amount, e.BranchID, e.UserID, e.CashRegisterID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert gasto: %w", err)
	}
	return nil
}

// GetByID gasto de la sucursal; nil si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id, branchID string) (*entity.Expense, error) {
	if !isUUID(id) {
		return nil, nil
	}
	e, err := scanExpense(r.q.QueryRow(ctx, expenseSelect+` WHERE g.id = $1 AND g.sucursal_id = $2`, id, branchID))
	if err != nil {
		return nil, fmt.Errorf("get gasto: %w", err)
	}
	return e, nil
}

// Update reemplaza categoría, descripción y monto.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	now := time.Now()
	query := `
		UPDATE gastos SET categoria = $2, descripcion = $3, monto = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, e.ID, e.Category, e.Description, e.Amount, now); err != nil {
		return fmt.Errorf("update gasto: %w", err)
	}
	e.UpdatedAt = &now
	return nil
}

// Delete borra el gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gastos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gasto: %w", err)
	}
	return nil
}

// List gastos de la sucursal con filtros opcionales, más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	w := newWhere("g.sucursal_id = $1", f.BranchID)
	w.addIf(f.Category != "", "g.categoria =", f.Category)
	w.addTime("g.fecha >=", f.From)
	w.addTime("g.fecha <=", f.To)

	rows, err := r.q.Query(ctx, expenseSelect+w.String()+` ORDER BY g.fecha DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(
		&e.ID, &e.Category, &e.Description, &e.Amount, &e.BranchID, &e.UserID, &e.CashRegisterID,
		&e.CreatedAt, &e.UpdatedAt, &e.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
