package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ── Gastos ────────────────────────────────────────────────────────────────────

type expenseRepo struct{ s *Store }

func (r *expenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("expenses.Create"); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.s.data.expenses[e.ID] = *e
	r.s.data.expenseOrder = append(r.s.data.expenseOrder, e.ID)
	return nil
}

func (r *expenseRepo) GetByID(_ context.Context, id, branchID string) (*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.expenses[id]
	if !ok || e.BranchID != branchID {
		return nil, nil
	}
	e.UserName = r.s.data.users[e.UserID].Name
	return &e, nil
}

func (r *expenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.expenses[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	current.Category = e.Category
	current.Description = e.Description
	current.Amount = e.Amount
	current.UpdatedAt = &now
	r.s.data.expenses[current.ID] = current
	e.UpdatedAt = &now
	return nil
}

func (r *expenseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("expenses.Delete"); err != nil {
		return err
	}
	delete(r.s.data.expenses, id)
	return nil
}

func (r *expenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Expense
	for i := len(r.s.data.expenseOrder) - 1; i >= 0; i-- {
		e, ok := r.s.data.expenses[r.s.data.expenseOrder[i]]
		if !ok || e.BranchID != f.BranchID {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if !inRange(e.CreatedAt, f.From, f.To) {
			continue
		}
		e.UserName = r.s.data.users[e.UserID].Name
		out = append(out, &e)
	}
	return out, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.documentTakenLocked(c) {
		return domain.ErrDuplicate
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.customers[c.ID]
	if !ok || current.BranchID != c.BranchID {
		return domain.ErrNotFound
	}
	if r.s.documentTakenLocked(c) {
		return domain.ErrDuplicate
	}
	c.CreatedAt = current.CreatedAt
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id, branchID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.customers[id]
	if !ok || c.BranchID != branchID {
		return false, nil
	}
	delete(r.s.data.customers, id)
	return true, nil
}

func (r *customerRepo) GetByID(_ context.Context, id, branchID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.customers[id]
	if !ok || c.BranchID != branchID {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepo) GetByDocument(_ context.Context, document, branchID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.customers {
		if c.BranchID == branchID && c.Document == document {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) Search(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(f.Query)
	var out []*entity.Customer
	for _, c := range r.s.data.customers {
		if c.BranchID != f.BranchID {
			continue
		}
		if q != "" && !containsAny(q, c.FirstName, c.LastName, c.Document, c.Phone) {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

// documentTakenLocked reporta si otro cliente de la sucursal ya usa el documento.
func (s *Store) documentTakenLocked(c *entity.Customer) bool {
	for _, other := range s.data.customers {
		if other.ID != c.ID && other.BranchID == c.BranchID && other.Document == c.Document {
			return true
		}
	}
	return false
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ── Cuentas corrientes ────────────────────────────────────────────────────────

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(_ context.Context, m *entity.AccountMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("accounts.Create"); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.data.accountMovs = append(r.s.data.accountMovs, *m)
	return nil
}

func (r *accountRepo) ListByCustomer(_ context.Context, customerID, branchID string) ([]*entity.AccountMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AccountMovement
	for _, m := range r.s.data.accountMovs {
		if m.CustomerID != customerID || m.BranchID != branchID {
			continue
		}
		m.UserName = r.s.data.users[m.UserID].Name
		if m.SaleID != nil {
			m.SaleCode = r.s.data.sales[*m.SaleID].Code
		}
		out = append(out, &m)
	}
	return out, nil
}
