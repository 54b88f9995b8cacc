package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por (producto, sucursal).
// Las escrituras se usan dentro de transacciones.
type StockRepository interface {
	// Get devuelve nil si no existe la fila.
	Get(ctx context.Context, productID, branchID string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, productID, branchID string) (*entity.StockEntry, error)
	// Create provisiona la fila; si ya existe no hace nada.
	Create(ctx context.Context, productID, branchID string, quantity int) error
	SetQuantity(ctx context.Context, productID, branchID string, quantity int) error
	// Increment suma delta sin bloqueo previo (restauración por anulación).
	Increment(ctx context.Context, productID, branchID string, delta int) error
	ListByBranch(ctx context.Context, branchID string) ([]*entity.StockEntry, error)
	ListBelow(ctx context.Context, branchID string, threshold int) ([]*entity.StockEntry, error)
}

// StockMovementRepository libro append-only de movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
}
