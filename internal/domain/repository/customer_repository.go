package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// CustomerFilter búsqueda por nombre, apellido, documento o teléfono (contiene, sin distinguir mayúsculas).
type CustomerFilter struct {
	BranchID string
	Query    string
	Limit    int
	Offset   int
}

// CustomerRepository clientes de la sucursal. Los Get devuelven nil si no hay fila.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	// Delete devuelve false si no había fila en la sucursal.
	Delete(ctx context.Context, id, branchID string) (bool, error)
	GetByID(ctx context.Context, id, branchID string) (*entity.Customer, error)
	GetByDocument(ctx context.Context, document, branchID string) (*entity.Customer, error)
	// Search ordena por apellido y nombre; devuelve además el total sin paginar.
	Search(ctx context.Context, f CustomerFilter) ([]*entity.Customer, int, error)
}

// AccountRepository libro append-only de cuentas corrientes.
type AccountRepository interface {
	Create(ctx context.Context, m *entity.AccountMovement) error
	// ListByCustomer ordena por fecha ascendente (orden de acumulación del saldo).
	ListByCustomer(ctx context.Context, customerID, branchID string) ([]*entity.AccountMovement, error)
}
