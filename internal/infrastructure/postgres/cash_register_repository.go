package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo sesiones de caja (tabla cajas).
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

const cashRegisterSelect = `
	SELECT c.id, c.usuario_id, c.sucursal_id, c.turno, c.monto_inicial, c.fecha_apertura,
	       c.monto_final, c.dinero_rendido, c.diferencia, c.fecha_cierre, COALESCE(u.nombre, '')
	FROM cajas c LEFT JOIN usuarios u ON u.id = c.usuario_id`

// Create abre una sesión. El índice único parcial sobre cajas abiertas rechaza la segunda.
func (r *CashRegisterRepo) Create(ctx context.Context, c *entity.CashRegister) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.OpenedAt.IsZero() {
		c.OpenedAt = time.Now()
	}
	query := `
		INSERT INTO cajas (id, usuario_id, sucursal_id, turno, monto_inicial, fecha_apertura)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.UserID, c.BranchID, c.Shift, c.OpeningAmount, c.OpenedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyOpen
		}
		return fmt.Errorf("insert caja: %w", err)
	}
	return nil
}

// GetByID obtiene una caja por ID (abierta o cerrada).
func (r *CashRegisterRepo) GetByID(ctx context.Context, id string) (*entity.CashRegister, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanCashRegister(r.q.QueryRow(ctx, cashRegisterSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get caja: %w", err)
	}
	return c, nil
}

// GetOpenByUser caja abierta del usuario en cualquier sucursal.
func (r *CashRegisterRepo) GetOpenByUser(ctx context.Context, userID string) (*entity.CashRegister, error) {
	query := cashRegisterSelect + ` WHERE c.usuario_id = $1 AND c.fecha_cierre IS NULL`
	c, err := scanCashRegister(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("get caja abierta: %w", err)
	}
	return c, nil
}

// GetOpenByUserAndBranch caja abierta del usuario en la sucursal.
func (r *CashRegisterRepo) GetOpenByUserAndBranch(ctx context.Context, userID, branchID string) (*entity.CashRegister, error) {
	query := cashRegisterSelect + ` WHERE c.usuario_id = $1 AND c.sucursal_id = $2 AND c.fecha_cierre IS NULL`
	c, err := scanCashRegister(r.q.QueryRow(ctx, query, userID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get caja abierta: %w", err)
	}
	return c, nil
}

// GetLastClosed última caja cerrada de la sucursal.
func (r *CashRegisterRepo) GetLastClosed(ctx context.Context, branchID string) (*entity.CashRegister, error) {
	query := cashRegisterSelect + `
		WHERE c.sucursal_id = $1 AND c.fecha_cierre IS NOT NULL
		ORDER BY c.fecha_cierre DESC LIMIT 1`
	c, err := scanCashRegister(r.q.QueryRow(ctx, query, branchID))
	if err != nil {
		return nil, fmt.Errorf("get última caja cerrada: %w", err)
	}
	return c, nil
}

// Close cierra la caja si sigue abierta. false si no se actualizó ninguna fila.
func (r *CashRegisterRepo) Close(ctx context.Context, id string, closing, reported, difference decimal.Decimal, closedAt time.Time) (bool, error) {
	query := `
		UPDATE cajas
		SET monto_final = $2, dinero_rendido = $3, diferencia = $4, fecha_cierre = $5
		WHERE id = $1 AND fecha_cierre IS NULL`
	tag, err := r.q.Exec(ctx, query, id, closing, reported, difference, closedAt)
	if err != nil {
		return false, fmt.Errorf("cerrar caja: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List cajas de la sucursal, más recientes primero; userID vacío no filtra.
func (r *CashRegisterRepo) List(ctx context.Context, branchID, userID string) ([]*entity.CashRegister, error) {
	w := newWhere("c.sucursal_id = $1", branchID)
	w.addIf(userID != "", "c.usuario_id =", userID)
	return listCashRegisters(ctx, r.q, cashRegisterSelect+w.String()+` ORDER BY c.fecha_apertura DESC`, w.args)
}

func listCashRegisters(ctx context.Context, q Querier, query string, args []any) ([]*entity.CashRegister, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cajas: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		c, err := scanCashRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan caja: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCashRegister(row pgx.Row) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := row.Scan(
		&c.ID, &c.UserID, &c.BranchID, &c.Shift, &c.OpeningAmount, &c.OpenedAt,
		&c.ClosingAmount, &c.ReportedCash, &c.Difference, &c.ClosedAt, &c.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
