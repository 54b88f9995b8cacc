package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo libro de movimientos de caja.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create agrega un movimiento.
func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO movimientos_caja (id, caja_id, usuario_id, tipo, descripcion, monto, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.CashRegisterID, m.UserID, m.Kind, m.Description, m.Amount, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movimiento caja: %w", err)
	}
	return nil
}

// ListByRegister movimientos de la caja con el nombre del usuario, más recientes primero.
func (r *CashMovementRepo) ListByRegister(ctx context.Context, cashRegisterID string) ([]*entity.CashMovement, error) {
	query := `
		SELECT m.id, m.caja_id, m.tipo, m.monto, m.descripcion, m.usuario_id, m.fecha, COALESCE(u.nombre, '')
		FROM movimientos_caja m LEFT JOIN usuarios u ON u.id = m.usuario_id
		WHERE m.caja_id = $1
		ORDER BY m.fecha DESC`
	rows, err := r.q.Query(ctx, query, cashRegisterID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos caja: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.CashRegisterID, &m.Kind, &m.Amount, &m.Description, &m.UserID, &m.CreatedAt, &m.UserName); err != nil {
			return nil, fmt.Errorf("scan movimiento caja: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
