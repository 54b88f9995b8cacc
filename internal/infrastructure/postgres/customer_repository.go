package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.AccountRepository  = (*AccountRepo)(nil)
)

// CustomerRepo tabla clientes.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `
	SELECT id, sucursal_id, nombre, apellido, documento, telefono, email, direccion, notas, created_at
	FROM clientes`

// Create inserta el cliente. Documento repetido en la sucursal: domain.ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO clientes (id, sucursal_id, nombre, apellido, documento, telefono, email, direccion, notas, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.BranchID, c.FirstName, c.LastName, c.Document, c.Phone, c.Email, c.Address, c.Notes, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// Update reemplaza los datos del cliente de la sucursal.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE clientes SET nombre = $3, apellido = $4, documento = $5, telefono = $6,
		       email = $7, direccion = $8, notas = $9
		WHERE id = $1 AND sucursal_id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.BranchID, c.FirstName, c.LastName, c.Document, c.Phone, c.Email, c.Address, c.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el cliente de la sucursal.
func (r *CustomerRepo) Delete(ctx context.Context, id, branchID string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1 AND sucursal_id = $2`, id, branchID)
	if err != nil {
		return false, fmt.Errorf("delete cliente: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID cliente de la sucursal; nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id, branchID string) (*entity.Customer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE id = $1 AND sucursal_id = $2`, id, branchID))
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByDocument cliente con ese documento en la sucursal; nil si no existe.
func (r *CustomerRepo) GetByDocument(ctx context.Context, document, branchID string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE documento = $1 AND sucursal_id = $2`, document, branchID))
	if err != nil {
		return nil, fmt.Errorf("get cliente por documento: %w", err)
	}
	return c, nil
}

// Search busca por nombre, apellido, documento o teléfono; devuelve la página y el total.
func (r *CustomerRepo) Search(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	w := newWhere("sucursal_id = $1", f.BranchID)
	if f.Query != "" {
		w.addExpr("(nombre ILIKE %[1]s OR apellido ILIKE %[1]s OR documento ILIKE %[1]s OR telefono ILIKE %[1]s)", "%"+f.Query+"%")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar clientes: %w", err)
	}

	query := customerSelect + w.String() + ` ORDER BY apellido, nombre` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("buscar clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.BranchID, &c.FirstName, &c.LastName, &c.Document, &c.Phone, &c.Email, &c.Address, &c.Notes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// AccountRepo tabla cuentas_corrientes.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create agrega un movimiento a la cuenta corriente.
func (r *AccountRepo) Create(ctx context.Context, m *entity.AccountMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO cuentas_corrientes (id, cliente_id, tipo, monto, referencia, detalle, venta_id, usuario_id, sucursal_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CustomerID, m.Kind, m.Amount, m.Reference, m.Detail, m.SaleID, m.UserID, m.BranchID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cuenta corriente: %w", err)
	}
	return nil
}

// ListByCustomer movimientos del cliente con usuario y código de venta, en orden cronológico.
func (r *AccountRepo) ListByCustomer(ctx context.Context, customerID, branchID string) ([]*entity.AccountMovement, error) {
	query := `
		SELECT cc.id, cc.cliente_id, cc.tipo, cc.monto, cc.referencia, cc.detalle, cc.venta_id,
		       cc.usuario_id, cc.sucursal_id, cc.fecha, COALESCE(u.nombre, ''), COALESCE(v.codigo, '')
		FROM cuentas_corrientes cc
		LEFT JOIN usuarios u ON u.id = cc.usuario_id
		LEFT JOIN ventas v ON v.id = cc.venta_id
		WHERE cc.cliente_id = $1 AND cc.sucursal_id = $2
		ORDER BY cc.fecha, cc.id`
	rows, err := r.q.Query(ctx, query, customerID, branchID)
	if err != nil {
		return nil, fmt.Errorf("list cuenta corriente: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountMovement
	for rows.Next() {
		var m entity.AccountMovement
		if err := rows.Scan(
			&m.ID, &m.CustomerID, &m.Kind, &m.Amount, &m.Reference, &m.Detail, &m.SaleID,
			&m.UserID, &m.BranchID, &m.CreatedAt, &m.UserName, &m.SaleCode,
		); err != nil {
			return nil, fmt.Errorf("scan cuenta corriente: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
