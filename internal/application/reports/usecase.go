// Package reports consultas de solo lectura sobre los libros de stock y caja de la sucursal.
package reports

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/cashregister"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// StockMovementQuery filtros opcionales del reporte de movimientos.
type StockMovementQuery struct {
	From      *time.Time
	To        *time.Time
	ProductID string
	Kind      string
	Page      dto.PageRequest
}

// CashRegisterQuery filtros opcionales del reporte de cajas.
type CashRegisterQuery struct {
	From   *time.Time
	To     *time.Time
	UserID string
}

// SalesQuery filtros opcionales del reporte de ventas.
type SalesQuery struct {
	From       *time.Time
	To         *time.Time
	UserID     string
	CustomerID string
	ProductID  string
}

// UseCase reportes.
type UseCase struct {
	reports   repository.ReportRepository
	registers repository.CashRegisterRepository
	movements repository.CashMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reports repository.ReportRepository, registers repository.CashRegisterRepository, movements repository.CashMovementRepository) *UseCase {
	return &UseCase{reports: reports, registers: registers, movements: movements}
}

// StockMovements movimientos de stock de la sucursal, más recientes primero.
func (uc *UseCase) StockMovements(ctx context.Context, actor entity.Actor, q StockMovementQuery) ([]dto.StockMovementReportRow, error) {
	if q.Kind != "" && q.Kind != entity.StockKindIn && q.Kind != entity.StockKindOut {
		return nil, domain.ErrInvalidInput
	}
	q.Page.DefaultPage()
	list, err := uc.reports.StockMovements(ctx, repository.StockMovementFilter{
		BranchID:  actor.BranchID,
		ProductID: q.ProductID,
		Kind:      q.Kind,
		From:      q.From,
		To:        q.To,
		Limit:     q.Page.Limit,
		Offset:    q.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementReportRow, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementReportRow{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Kind:        m.Kind,
			Quantity:    m.Quantity,
			Origin:      m.Origin,
			Description: m.Description,
			UserName:    m.UserName,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// CashRegisters cajas de la sucursal por fecha de apertura. Un cajero solo ve las propias.
func (uc *UseCase) CashRegisters(ctx context.Context, actor entity.Actor, q CashRegisterQuery) ([]dto.CashRegisterResponse, error) {
	if actor.Role == entity.RoleCajero {
		q.UserID = actor.UserID
	}
	list, err := uc.reports.CashRegisters(ctx, repository.CashRegisterFilter{
		BranchID: actor.BranchID,
		UserID:   q.UserID,
		From:     q.From,
		To:       q.To,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CashRegisterResponse{
			ID:            c.ID,
			UserID:        c.UserID,
			UserName:      c.UserName,
			BranchID:      c.BranchID,
			Shift:         c.Shift,
			OpeningAmount: c.OpeningAmount,
			OpenedAt:      c.OpenedAt,
			ClosingAmount: c.ClosingAmount,
			ReportedCash:  c.ReportedCash,
			Difference:    c.Difference,
			ClosedAt:      c.ClosedAt,
			Open:          c.IsOpen(),
		})
	}
	return out, nil
}

// CashRegisterSummary totales y conciliación de una caja: el saldo calculado debe igualar el monto de cierre.
func (uc *UseCase) CashRegisterSummary(ctx context.Context, actor entity.Actor, id string) (*dto.CashRegisterSummaryResponse, error) {
	if !validator.IsUUID(id) {
		return nil, domain.ErrNotFound
	}
	c, err := uc.registers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.BranchID != actor.BranchID {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movements.ListByRegister(ctx, id)
	if err != nil {
		return nil, err
	}
	s := cashregister.Fold(c.OpeningAmount, movs)
	return &dto.CashRegisterSummaryResponse{
		CashRegisterID: c.ID,
		OpeningAmount:  s.Opening,
		ClosingAmount:  c.ClosingAmount,
		TotalIncomes:   s.Incomes,
		TotalExpenses:  s.Expenses,
		Balance:        s.Balance,
		Reconciled:     c.ClosingAmount != nil && s.Balance.Equal(*c.ClosingAmount),
	}, nil
}

// Sales ventas de la sucursal en el rango, más recientes primero. Un cajero solo ve las propias.
func (uc *UseCase) Sales(ctx context.Context, actor entity.Actor, q SalesQuery) ([]dto.SalesReportRow, error) {
	if actor.Role == entity.RoleCajero {
		q.UserID = actor.UserID
	}
	rows, err := uc.reports.Sales(ctx, repository.SalesReportFilter{
		BranchID:   actor.BranchID,
		UserID:     q.UserID,
		CustomerID: q.CustomerID,
		ProductID:  q.ProductID,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesReportRow{
			ID:           r.Sale.ID,
			Code:         r.Sale.Code,
			Total:        r.Sale.Total,
			Status:       r.Sale.Status,
			CustomerID:   r.Sale.CustomerID,
			CustomerName: r.CustomerName,
			UserID:       r.Sale.UserID,
			UserName:     r.UserName,
			CreatedAt:    r.Sale.CreatedAt,
		})
	}
	return out, nil
}

// SalesByPeriod cantidad y total de ventas activas por día, semana o mes.
func (uc *UseCase) SalesByPeriod(ctx context.Context, actor entity.Actor, period string) ([]dto.SalesPeriodRow, error) {
	switch period {
	case "":
		period = repository.PeriodDay
	case repository.PeriodDay, repository.PeriodWeek, repository.PeriodMonth:
	default:
		return nil, domain.ErrInvalidInput
	}
	totals, err := uc.reports.SalesByPeriod(ctx, actor.BranchID, period)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesPeriodRow, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.SalesPeriodRow{Period: t.Period, SalesCount: t.Count, Total: t.Total})
	}
	return out, nil
}

// SalesByProduct unidades y monto vendidos por producto en ventas activas.
func (uc *UseCase) SalesByProduct(ctx context.Context, actor entity.Actor) ([]dto.ProductSalesRow, error) {
	totals, err := uc.reports.SalesByProduct(ctx, actor.BranchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSalesRow, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.ProductSalesRow{ProductID: t.ProductID, ProductName: t.ProductName, Quantity: t.Quantity, Total: t.Total})
	}
	return out, nil
}
