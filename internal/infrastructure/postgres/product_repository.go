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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sucursal_id, codigo, codigo_barras, nombre, descripcion, precio, activo, created_at`

// Create persiste un producto; código o código de barras repetidos en la sucursal dan ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BranchID, p.Code, nullable(p.Barcode), p.Name, p.Description, p.Price, p.Active, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// Update reemplaza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos
		SET codigo = $3, codigo_barras = $4, nombre = $5, descripcion = $6, precio = $7, activo = $8
		WHERE id = $1 AND sucursal_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.BranchID, p.Code, nullable(p.Barcode), p.Name, p.Description, p.Price, p.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un producto de la sucursal por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id, branchID string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "id = $1", id, branchID)
}

// GetByCode obtiene un producto de la sucursal por código interno.
func (r *ProductRepo) GetByCode(ctx context.Context, code, branchID string) (*entity.Product, error) {
	return r.getOne(ctx, "codigo = $1", code, branchID)
}

// GetByBarcode obtiene un producto de la sucursal por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode, branchID string) (*entity.Product, error) {
	return r.getOne(ctx, "codigo_barras = $1", barcode, branchID)
}

func (r *ProductRepo) getOne(ctx context.Context, cond, value, branchID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE ` + cond + ` AND sucursal_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, value, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// List lista productos activos de la sucursal ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	w := newWhere("activo = true")
	w.add("sucursal_id =", f.BranchID)
	if f.AutoBarcode {
		w.clauses = append(w.clauses, `codigo_barras ~ '^[0-9]{13}$'`)
	}
	query := `SELECT ` + productColumns + ` FROM productos` + w.String() + ` ORDER BY nombre`
	query += w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	if err := row.Scan(&p.ID, &p.BranchID, &p.Code, &barcode, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Barcode = deref(barcode)
	return &p, nil
}
