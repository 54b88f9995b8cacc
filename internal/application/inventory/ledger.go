package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-backoffice/internal/domain/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// Adjustment cambio de stock a registrar. Delta lleva signo (negativo = salida).
type Adjustment struct {
	ProductID   string
	BranchID    string
	Delta       int
	Kind        string // entrada | salida
	Origin      string // compra | venta | ajuste
	Description string
	UserID      string
}

// Ledger es la única vía de escritura de stock con movimiento. No abre transacciones:
// siempre trabaja con los repos de la transacción del caller.
//
// Expone Lock y Apply por separado para que la venta pueda validar con la fila ya bloqueada
// y decidir si descuenta o no (venta sin stock permitida).
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Lock bloquea la fila (producto, sucursal) hasta el fin de la transacción.
// Devuelve ErrNotFound si no existe.
func (l *Ledger) Lock(ctx context.Context, repos repository.Repos, productID, branchID string) (*entity.StockEntry, error) {
	entry, err := repos.Stock().GetForUpdate(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Apply aplica el delta sobre una fila ya bloqueada y escribe exactamente un movimiento.
// Si el resultado fuese negativo devuelve ErrInsufficientStock sin escribir nada.
func (l *Ledger) Apply(ctx context.Context, repos repository.Repos, entry *entity.StockEntry, adj Adjustment) (int, error) {
	newQty, err := domaininv.ApplyDelta(entry.Quantity, adj.Delta)
	if err != nil {
		return entry.Quantity, err
	}
	if err := repos.Stock().SetQuantity(ctx, adj.ProductID, adj.BranchID, newQty); err != nil {
		return entry.Quantity, err
	}
	mov := &entity.StockMovement{
		ProductID:   adj.ProductID,
		BranchID:    adj.BranchID,
		Quantity:    adj.Delta,
		Kind:        adj.Kind,
		Origin:      adj.Origin,
		Description: adj.Description,
		UserID:      adj.UserID,
	}
	if err := repos.StockMovements().Create(ctx, mov); err != nil {
		return entry.Quantity, fmt.Errorf("registrar movimiento de stock: %w", err)
	}
	entry.Quantity = newQty
	return newQty, nil
}

// Adjust bloquea y aplica en un paso. Devuelve la cantidad resultante.
func (l *Ledger) Adjust(ctx context.Context, repos repository.Repos, adj Adjustment) (int, error) {
	entry, err := l.Lock(ctx, repos, adj.ProductID, adj.BranchID)
	if err != nil {
		return 0, err
	}
	return l.Apply(ctx, repos, entry, adj)
}
