package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes con filtros opcionales, siempre acotadas a la sucursal.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockMovements movimientos de stock con producto y usuario, más recientes primero.
func (r *ReportRepo) StockMovements(ctx context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	w := newWhere("m.sucursal_id = $1", f.BranchID)
	w.addIf(f.ProductID != "", "m.producto_id =", f.ProductID)
	w.addIf(f.Kind != "", "m.tipo =", f.Kind)
	w.addTime("m.fecha >=", f.From)
	w.addTime("m.fecha <=", f.To)

	query := `
		SELECT m.id, m.producto_id, m.sucursal_id, m.cantidad, m.tipo, m.origen, m.descripcion,
		       COALESCE(m.usuario_id::text, ''), m.fecha, p.nombre, COALESCE(u.nombre, '')
		FROM movimientos_stock m
		JOIN productos p ON p.id = m.producto_id
		LEFT JOIN usuarios u ON u.id = m.usuario_id` +
		w.String() + ` ORDER BY m.fecha DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("reporte movimientos stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.BranchID, &m.Quantity, &m.Kind, &m.Origin, &m.Description,
			&m.UserID, &m.CreatedAt, &m.ProductName, &m.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento stock: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CashRegisters cajas abiertas en el rango, opcionalmente de un usuario.
func (r *ReportRepo) CashRegisters(ctx context.Context, f repository.CashRegisterFilter) ([]*entity.CashRegister, error) {
	w := newWhere("c.sucursal_id = $1", f.BranchID)
	w.addIf(f.UserID != "", "c.usuario_id =", f.UserID)
	w.addTime("c.fecha_apertura >=", f.From)
	w.addTime("c.fecha_apertura <=", f.To)
	return listCashRegisters(ctx, r.q, cashRegisterSelect+w.String()+` ORDER BY c.fecha_apertura DESC`, w.args)
}

// Sales ventas de la sucursal con usuario y cliente, más recientes primero.
func (r *ReportRepo) Sales(ctx context.Context, f repository.SalesReportFilter) ([]repository.SalesReportRow, error) {
	w := newWhere("v.sucursal_id = $1", f.BranchID)
	w.addTime("v.fecha >=", f.From)
	w.addTime("v.fecha <=", f.To)
	w.addIf(f.UserID != "", "v.usuario_id =", f.UserID)
	w.addIf(f.CustomerID != "", "v.cliente_id =", f.CustomerID)
	if f.ProductID != "" {
		w.addExpr("EXISTS (SELECT 1 FROM detalle_ventas dv WHERE dv.venta_id = v.id AND dv.producto_id = %[1]s)", f.ProductID)
	}

	query := `
		SELECT v.id, v.codigo, v.total, v.cliente_id, v.caja_id, v.sucursal_id, v.usuario_id, v.estado, v.fecha,
		       COALESCE(u.nombre, ''), COALESCE(TRIM(c.apellido || ' ' || c.nombre), '')
		FROM ventas v
		LEFT JOIN usuarios u ON u.id = v.usuario_id
		LEFT JOIN clientes c ON c.id = v.cliente_id AND c.sucursal_id = v.sucursal_id` +
		w.String() + ` ORDER BY v.fecha DESC`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("reporte ventas: %w", err)
	}
	defer rows.Close()
	var list []repository.SalesReportRow
	for rows.Next() {
		var s entity.Sale
		var row repository.SalesReportRow
		if err := rows.Scan(
			&s.ID, &s.Code, &s.Total, &s.CustomerID, &s.CashRegisterID, &s.BranchID, &s.UserID, &s.Status, &s.CreatedAt,
			&row.UserName, &row.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("scan reporte ventas: %w", err)
		}
		row.Sale = &s
		list = append(list, row)
	}
	return list, rows.Err()
}

// truncUnits unidad de date_trunc por período; la lista cerrada evita interpolar texto del cliente.
var truncUnits = map[string]string{
	repository.PeriodDay:   "day",
	repository.PeriodWeek:  "week",
	repository.PeriodMonth: "month",
}

// SalesByPeriod cantidad y total de ventas activas agrupadas por día, semana o mes.
func (r *ReportRepo) SalesByPeriod(ctx context.Context, branchID, period string) ([]repository.PeriodTotal, error) {
	unit, ok := truncUnits[period]
	if !ok {
		return nil, fmt.Errorf("período desconocido %q", period)
	}
	query := `
		SELECT date_trunc($2, v.fecha) AS periodo, COUNT(*), COALESCE(SUM(v.total), 0)
		FROM ventas v
		WHERE v.sucursal_id = $1 AND v.estado = 'activa'
		GROUP BY periodo
		ORDER BY periodo DESC`
	rows, err := r.q.Query(ctx, query, branchID, unit)
	if err != nil {
		return nil, fmt.Errorf("resumen ventas por período: %w", err)
	}
	defer rows.Close()
	var list []repository.PeriodTotal
	for rows.Next() {
		var p repository.PeriodTotal
		if err := rows.Scan(&p.Period, &p.Count, &p.Total); err != nil {
			return nil, fmt.Errorf("scan resumen ventas: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SalesByProduct unidades y monto vendidos por producto en ventas activas.
func (r *ReportRepo) SalesByProduct(ctx context.Context, branchID string) ([]repository.ProductSalesTotal, error) {
	query := `
		SELECT p.id, p.nombre, COALESCE(SUM(dv.cantidad), 0), COALESCE(SUM(dv.cantidad * dv.precio_unitario), 0) AS total
		FROM detalle_ventas dv
		JOIN ventas v ON v.id = dv.venta_id
		JOIN productos p ON p.id = dv.producto_id
		WHERE v.sucursal_id = $1 AND v.estado = 'activa'
		GROUP BY p.id, p.nombre
		ORDER BY total DESC`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("ventas por producto: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductSalesTotal
	for rows.Next() {
		var p repository.ProductSalesTotal
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Quantity, &p.Total); err != nil {
			return nil, fmt.Errorf("scan ventas por producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
