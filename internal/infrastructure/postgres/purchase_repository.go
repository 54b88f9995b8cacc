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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras y detalle_compras.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera de compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO compras (id, proveedor_id, sucursal_id, usuario_id, total, estado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, nullable(p.SupplierID), p.BranchID, p.UserID, p.Total, p.Status, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert compra: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de compra.
func (r *PurchaseRepo) CreateLine(ctx context.Context, l *entity.PurchaseLine) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO detalle_compras (id, compra_id, producto_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.PurchaseID, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
		return fmt.Errorf("insert detalle compra: %w", err)
	}
	return nil
}

// GetByID compra de la sucursal; nil si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id, branchID string) (*entity.Purchase, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, proveedor_id, sucursal_id, usuario_id, total, estado, fecha
		FROM compras WHERE id = $1 AND sucursal_id = $2`
	var p entity.Purchase
	var supplier *string
	err := r.q.QueryRow(ctx, query, id, branchID).Scan(
		&p.ID, &supplier, &p.BranchID, &p.UserID, &p.Total, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	p.SupplierID = deref(supplier)
	return &p, nil
}

// ListLines detalle de la compra con nombre de producto.
func (r *PurchaseRepo) ListLines(ctx context.Context, purchaseID string) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT dc.id, dc.compra_id, dc.producto_id, dc.cantidad, dc.precio_unitario, p.nombre
		FROM detalle_compras dc JOIN productos p ON p.id = dc.producto_id
		WHERE dc.compra_id = $1`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list detalle compra: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.ProductName); err != nil {
			return nil, fmt.Errorf("scan detalle compra: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
