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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas, detalle_ventas y pagos_venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT v.id, v.codigo, v.total, v.cliente_id, v.caja_id, v.sucursal_id, v.usuario_id, v.estado, v.fecha
	FROM ventas v`

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO ventas (id, codigo, total, cliente_id, caja_id, sucursal_id, usuario_id, estado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Code, s.Total, s.CustomerID, s.CashRegisterID, s.BranchID, s.UserID, s.Status, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateLineItem inserta una línea de detalle.
func (r *SaleRepo) CreateLineItem(ctx context.Context, l *entity.SaleLineItem) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO detalle_ventas (id, venta_id, producto_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// CreatePayment inserta un pago.
func (r *SaleRepo) CreatePayment(ctx context.Context, p *entity.SalePayment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO pagos_venta (id, venta_id, tipo_pago, monto) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.SaleID, p.PaymentKind, p.Amount); err != nil {
		return fmt.Errorf("insert pago venta: %w", err)
	}
	return nil
}

// GetByID venta de la sucursal, en cualquier estado.
func (r *SaleRepo) GetByID(ctx context.Context, id, branchID string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE v.id = $1 AND v.sucursal_id = $2`, id, branchID))
	if err != nil {
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return s, nil
}

// GetActiveForUpdate bloquea la venta activa; nil si no existe, es de otra sucursal o está anulada.
func (r *SaleRepo) GetActiveForUpdate(ctx context.Context, id, branchID string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := saleSelect + ` WHERE v.id = $1 AND v.sucursal_id = $2 AND v.estado = $3 FOR UPDATE`
	s, err := scanSale(r.q.QueryRow(ctx, query, id, branchID, entity.SaleStatusActive))
	if err != nil {
		return nil, fmt.Errorf("get venta activa: %w", err)
	}
	return s, nil
}

// SetStatus cambia el estado de la venta.
func (r *SaleRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE ventas SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update estado venta: venta %s inexistente", id)
	}
	return nil
}

// ListLineItems detalle con nombre de producto.
func (r *SaleRepo) ListLineItems(ctx context.Context, saleID string) ([]*entity.SaleLineItem, error) {
	query := `
		SELECT dv.id, dv.venta_id, dv.producto_id, dv.cantidad, dv.precio_unitario, p.nombre
		FROM detalle_ventas dv JOIN productos p ON p.id = dv.producto_id
		WHERE dv.venta_id = $1`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list detalle venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLineItem
	for rows.Next() {
		var l entity.SaleLineItem
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.ProductName); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListPayments pagos de la venta.
func (r *SaleRepo) ListPayments(ctx context.Context, saleID string) ([]*entity.SalePayment, error) {
	rows, err := r.q.Query(ctx, `SELECT id, venta_id, tipo_pago, monto FROM pagos_venta WHERE venta_id = $1`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list pagos venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePayment
	for rows.Next() {
		var p entity.SalePayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.PaymentKind, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan pago venta: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List ventas de la sucursal con filtros opcionales, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	w := newWhere("v.sucursal_id = $1", f.BranchID)
	w.addIf(f.CustomerID != "", "v.cliente_id =", f.CustomerID)
	w.addTime("v.fecha >=", f.From)
	w.addTime("v.fecha <=", f.To)
	query := saleSelect + w.String() + ` ORDER BY v.fecha DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Code, &s.Total, &s.CustomerID, &s.CashRegisterID, &s.BranchID, &s.UserID, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
