package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `s.id, s.producto_id, s.sucursal_id, s.stock, s.updated_at, p.nombre`

// Get obtiene el stock actual de un producto en una sucursal.
func (r *StockRepo) Get(ctx context.Context, productID, branchID string) (*entity.StockEntry, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT ` + stockColumns + `
		FROM stock s JOIN productos p ON p.id = s.producto_id
		WHERE s.producto_id = $1 AND s.sucursal_id = $2`
	e, err := scanStock(r.q.QueryRow(ctx, query, productID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return e, nil
}

// GetForUpdate obtiene el stock y bloquea la fila hasta el fin de la transacción.
// Solo se bloquea la fila de stock (FOR UPDATE OF s), no la del producto.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.StockEntry, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT ` + stockColumns + `
		FROM stock s JOIN productos p ON p.id = s.producto_id
		WHERE s.producto_id = $1 AND s.sucursal_id = $2
		FOR UPDATE OF s`
	e, err := scanStock(r.q.QueryRow(ctx, query, productID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return e, nil
}

// Create provisiona la fila de stock; si ya existe no la toca.
func (r *StockRepo) Create(ctx context.Context, productID, branchID string, quantity int) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (producto_id, sucursal_id, stock)
		VALUES ($1, $2, $3)
		ON CONFLICT (producto_id, sucursal_id) DO NOTHING`, productID, branchID, quantity)
	if err != nil {
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// SetQuantity fija la cantidad de una fila existente.
func (r *StockRepo) SetQuantity(ctx context.Context, productID, branchID string, quantity int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock SET stock = $3, updated_at = now()
		WHERE producto_id = $1 AND sucursal_id = $2`, productID, branchID, quantity)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set stock: fila inexistente %s/%s", productID, branchID)
	}
	return nil
}

// Increment suma delta a la fila sin leerla antes.
func (r *StockRepo) Increment(ctx context.Context, productID, branchID string, delta int) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stock SET stock = stock + $3, updated_at = now()
		WHERE producto_id = $1 AND sucursal_id = $2`, productID, branchID, delta)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// ListByBranch lista el stock de la sucursal ordenado por nombre de producto.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock s JOIN productos p ON p.id = s.producto_id
		WHERE s.sucursal_id = $1
		ORDER BY p.nombre`
	return r.list(ctx, query, branchID)
}

// ListBelow lista productos con stock menor al umbral.
func (r *StockRepo) ListBelow(ctx context.Context, branchID string, threshold int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock s JOIN productos p ON p.id = s.producto_id
		WHERE s.sucursal_id = $1 AND s.stock < $2
		ORDER BY s.stock, p.nombre`
	return r.list(ctx, query, branchID, threshold)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.BranchID, &e.Quantity, &e.UpdatedAt, &e.ProductName); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func scanStock(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(&e.ID, &e.ProductID, &e.BranchID, &e.Quantity, &e.UpdatedAt, &e.ProductName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
