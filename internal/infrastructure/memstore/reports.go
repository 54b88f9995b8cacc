package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

func (r *reportRepo) Sales(_ context.Context, f repository.SalesReportFilter) ([]repository.SalesReportRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.SalesReportRow
	for i := len(r.s.data.saleOrder) - 1; i >= 0; i-- {
		sale := r.s.data.sales[r.s.data.saleOrder[i]]
		if sale.BranchID != f.BranchID || !inRange(sale.CreatedAt, f.From, f.To) {
			continue
		}
		if f.UserID != "" && sale.UserID != f.UserID {
			continue
		}
		if f.CustomerID != "" && (sale.CustomerID == nil || *sale.CustomerID != f.CustomerID) {
			continue
		}
		if f.ProductID != "" && !r.s.saleHasProductLocked(sale.ID, f.ProductID) {
			continue
		}
		row := repository.SalesReportRow{Sale: &sale, UserName: r.s.data.users[sale.UserID].Name}
		if sale.CustomerID != nil {
			if c, ok := r.s.data.customers[*sale.CustomerID]; ok && c.BranchID == sale.BranchID {
				row.CustomerName = c.LastName + " " + c.FirstName
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *reportRepo) SalesByPeriod(_ context.Context, branchID, period string) ([]repository.PeriodTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := map[time.Time]*repository.PeriodTotal{}
	for _, sale := range r.s.data.sales {
		if sale.BranchID != branchID || sale.Status != entity.SaleStatusActive {
			continue
		}
		start := truncate(sale.CreatedAt, period)
		p, ok := totals[start]
		if !ok {
			p = &repository.PeriodTotal{Period: start, Total: decimal.Zero}
			totals[start] = p
		}
		p.Count++
		p.Total = p.Total.Add(sale.Total)
	}
	out := make([]repository.PeriodTotal, 0, len(totals))
	for _, p := range totals {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.After(out[j].Period) })
	return out, nil
}

func (r *reportRepo) SalesByProduct(_ context.Context, branchID string) ([]repository.ProductSalesTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := map[string]*repository.ProductSalesTotal{}
	for _, l := range r.s.data.lines {
		sale := r.s.data.sales[l.SaleID]
		if sale.BranchID != branchID || sale.Status != entity.SaleStatusActive {
			continue
		}
		p, ok := totals[l.ProductID]
		if !ok {
			p = &repository.ProductSalesTotal{ProductID: l.ProductID, ProductName: r.s.data.products[l.ProductID].Name, Total: decimal.Zero}
			totals[l.ProductID] = p
		}
		p.Quantity += l.Quantity
		p.Total = p.Total.Add(l.Subtotal())
	}
	out := make([]repository.ProductSalesTotal, 0, len(totals))
	for _, p := range totals {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

func (s *Store) saleHasProductLocked(saleID, productID string) bool {
	for _, l := range s.data.lines {
		if l.SaleID == saleID && l.ProductID == productID {
			return true
		}
	}
	return false
}

// truncate imita date_trunc: semanas desde el lunes.
func truncate(t time.Time, period string) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch period {
	case repository.PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case repository.PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return day
}
