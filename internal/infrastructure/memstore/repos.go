package memstore

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.Create"); err != nil {
		return err
	}
	if r.s.conflictLocked(p) {
		return domain.ErrDuplicate
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.s.data.products[p.ID] = *p
	return nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.products[p.ID]
	if !ok || current.BranchID != p.BranchID {
		return domain.ErrNotFound
	}
	if r.s.conflictLocked(p) {
		return domain.ErrDuplicate
	}
	r.s.data.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id, branchID string) (*entity.Product, error) {
	return r.find(branchID, func(p entity.Product) bool { return p.ID == id }), nil
}

func (r *productRepo) GetByCode(_ context.Context, code, branchID string) (*entity.Product, error) {
	return r.find(branchID, func(p entity.Product) bool { return p.Code == code }), nil
}

func (r *productRepo) GetByBarcode(_ context.Context, barcode, branchID string) (*entity.Product, error) {
	return r.find(branchID, func(p entity.Product) bool { return barcode != "" && p.Barcode == barcode }), nil
}

func (r *productRepo) find(branchID string, match func(entity.Product) bool) *entity.Product {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.products {
		if p.BranchID == branchID && match(p) {
			return &p
		}
	}
	return nil
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.data.products {
		if p.BranchID != f.BranchID || !p.Active {
			continue
		}
		if f.AutoBarcode && !autoBarcode.MatchString(p.Barcode) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Limit, f.Offset), nil
}

var autoBarcode = regexp.MustCompile(`^[0-9]{13}$`)

// conflictLocked reporta si otro producto de la sucursal ya usa el código o el código de barras.
func (s *Store) conflictLocked(p *entity.Product) bool {
	for _, other := range s.data.products {
		if other.ID == p.ID || other.BranchID != p.BranchID {
			continue
		}
		if other.Code == p.Code || (p.Barcode != "" && other.Barcode == p.Barcode) {
			return true
		}
	}
	return false
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(_ context.Context, productID, branchID string) (*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.stock[stockKey(productID, branchID)]
	if !ok {
		return nil, nil
	}
	e.ProductName = r.s.data.products[productID].Name
	return &e, nil
}

// GetForUpdate: el bloqueo real lo da el mutex de Run.
func (r *stockRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.StockEntry, error) {
	if err := r.s.failureLocked("stock.GetForUpdate"); err != nil {
		return nil, err
	}
	return r.Get(ctx, productID, branchID)
}

func (r *stockRepo) Create(_ context.Context, productID, branchID string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := stockKey(productID, branchID)
	if _, ok := r.s.data.stock[k]; ok {
		return nil
	}
	r.s.data.stock[k] = entity.StockEntry{
		ID:        uuid.New().String(),
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (r *stockRepo) SetQuantity(_ context.Context, productID, branchID string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("stock.SetQuantity"); err != nil {
		return err
	}
	k := stockKey(productID, branchID)
	e, ok := r.s.data.stock[k]
	if !ok {
		return domain.ErrNotFound
	}
	e.Quantity = quantity
	e.UpdatedAt = time.Now()
	r.s.data.stock[k] = e
	return nil
}

func (r *stockRepo) Increment(_ context.Context, productID, branchID string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("stock.Increment"); err != nil {
		return err
	}
	k := stockKey(productID, branchID)
	e, ok := r.s.data.stock[k]
	if !ok {
		// UPDATE sin filas afectadas: no hay error, igual que en SQL.
		return nil
	}
	e.Quantity += delta
	e.UpdatedAt = time.Now()
	r.s.data.stock[k] = e
	return nil
}

func (r *stockRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.StockEntry, error) {
	return r.list(branchID, func(entity.StockEntry) bool { return true }), nil
}

func (r *stockRepo) ListBelow(_ context.Context, branchID string, threshold int) ([]*entity.StockEntry, error) {
	return r.list(branchID, func(e entity.StockEntry) bool { return e.Quantity < threshold }), nil
}

func (r *stockRepo) list(branchID string, keep func(entity.StockEntry) bool) []*entity.StockEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockEntry
	for _, e := range r.s.data.stock {
		if e.BranchID != branchID || !keep(e) {
			continue
		}
		e.ProductName = r.s.data.products[e.ProductID].Name
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out
}

type stockMovementRepo struct{ s *Store }

func (r *stockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("stockMovements.Create"); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.data.stockMovs = append(r.s.data.stockMovs, *m)
	return nil
}

// ── Caja ──────────────────────────────────────────────────────────────────────

type cashRegisterRepo struct{ s *Store }

func (r *cashRegisterRepo) Create(_ context.Context, c *entity.CashRegister) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("cashRegisters.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.data.registers {
		if existing.UserID == c.UserID && existing.ClosedAt == nil {
			return domain.ErrAlreadyOpen
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.data.registers[c.ID] = *c
	r.s.data.registerOrder = append(r.s.data.registerOrder, c.ID)
	return nil
}

func (r *cashRegisterRepo) GetByID(_ context.Context, id string) (*entity.CashRegister, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("cashRegisters.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.data.registers[id]
	if !ok {
		return nil, nil
	}
	return r.s.withUserName(c), nil
}

func (r *cashRegisterRepo) GetOpenByUser(_ context.Context, userID string) (*entity.CashRegister, error) {
	return r.findOpen(func(c entity.CashRegister) bool { return c.UserID == userID }), nil
}

func (r *cashRegisterRepo) GetOpenByUserAndBranch(_ context.Context, userID, branchID string) (*entity.CashRegister, error) {
	return r.findOpen(func(c entity.CashRegister) bool { return c.UserID == userID && c.BranchID == branchID }), nil
}

func (r *cashRegisterRepo) findOpen(match func(entity.CashRegister) bool) *entity.CashRegister {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.data.registerOrder {
		c := r.s.data.registers[id]
		if c.ClosedAt == nil && match(c) {
			return r.s.withUserName(c)
		}
	}
	return nil
}

func (r *cashRegisterRepo) GetLastClosed(_ context.Context, branchID string) (*entity.CashRegister, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var last *entity.CashRegister
	for _, id := range r.s.data.registerOrder {
		c := r.s.data.registers[id]
		if c.BranchID != branchID || c.ClosedAt == nil {
			continue
		}
		if last == nil || !c.ClosedAt.Before(*last.ClosedAt) {
			last = r.s.withUserName(c)
		}
	}
	return last, nil
}

func (r *cashRegisterRepo) Close(_ context.Context, id string, closing, reported, difference decimal.Decimal, closedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("cashRegisters.Close"); err != nil {
		return false, err
	}
	c, ok := r.s.data.registers[id]
	if !ok || c.ClosedAt != nil {
		return false, nil
	}
	c.ClosingAmount = &closing
	c.ReportedCash = &reported
	c.Difference = &difference
	c.ClosedAt = &closedAt
	r.s.data.registers[c.ID] = c
	return true, nil
}

func (r *cashRegisterRepo) List(_ context.Context, branchID, userID string) ([]*entity.CashRegister, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CashRegister
	for i := len(r.s.data.registerOrder) - 1; i >= 0; i-- {
		c := r.s.data.registers[r.s.data.registerOrder[i]]
		if c.BranchID != branchID || (userID != "" && c.UserID != userID) {
			continue
		}
		out = append(out, r.s.withUserName(c))
	}
	return out, nil
}

type cashMovementRepo struct{ s *Store }

func (r *cashMovementRepo) Create(_ context.Context, m *entity.CashMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("cashMovements.Create"); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.data.cashMovs = append(r.s.data.cashMovs, *m)
	return nil
}

func (r *cashMovementRepo) ListByRegister(_ context.Context, cashRegisterID string) ([]*entity.CashMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CashMovement
	for i := len(r.s.data.cashMovs) - 1; i >= 0; i-- {
		m := r.s.data.cashMovs[i]
		if m.CashRegisterID != cashRegisterID {
			continue
		}
		m.UserName = r.s.data.users[m.UserID].Name
		out = append(out, &m)
	}
	return out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sales.Create"); err != nil {
		return err
	}
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	r.s.data.sales[sale.ID] = *sale
	r.s.data.saleOrder = append(r.s.data.saleOrder, sale.ID)
	return nil
}

func (r *saleRepo) CreateLineItem(_ context.Context, l *entity.SaleLineItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sales.CreateLineItem"); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	r.s.data.lines = append(r.s.data.lines, *l)
	return nil
}

func (r *saleRepo) CreatePayment(_ context.Context, p *entity.SalePayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sales.CreatePayment"); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.data.payments = append(r.s.data.payments, *p)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id, branchID string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.data.sales[id]
	if !ok || sale.BranchID != branchID {
		return nil, nil
	}
	return &sale, nil
}

func (r *saleRepo) GetActiveForUpdate(ctx context.Context, id, branchID string) (*entity.Sale, error) {
	sale, err := r.GetByID(ctx, id, branchID)
	if err != nil || sale == nil || sale.Status != entity.SaleStatusActive {
		return nil, err
	}
	return sale, nil
}

func (r *saleRepo) SetStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sales.SetStatus"); err != nil {
		return err
	}
	sale, ok := r.s.data.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	r.s.data.sales[sale.ID] = sale
	return nil
}

func (r *saleRepo) ListLineItems(_ context.Context, saleID string) ([]*entity.SaleLineItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SaleLineItem
	for _, l := range r.s.data.lines {
		if l.SaleID != saleID {
			continue
		}
		l.ProductName = r.s.data.products[l.ProductID].Name
		out = append(out, &l)
	}
	return out, nil
}

func (r *saleRepo) ListPayments(_ context.Context, saleID string) ([]*entity.SalePayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalePayment
	for _, p := range r.s.data.payments {
		if p.SaleID == saleID {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for i := len(r.s.data.saleOrder) - 1; i >= 0; i-- {
		sale := r.s.data.sales[r.s.data.saleOrder[i]]
		if sale.BranchID != f.BranchID {
			continue
		}
		if f.CustomerID != "" && (sale.CustomerID == nil || *sale.CustomerID != f.CustomerID) {
			continue
		}
		if !inRange(sale.CreatedAt, f.From, f.To) {
			continue
		}
		out = append(out, &sale)
	}
	return paginate(out, f.Limit, f.Offset), nil
}

// ── Configuración ─────────────────────────────────────────────────────────────

type settingsRepo struct{ s *Store }

func (r *settingsRepo) GetSalePolicy(_ context.Context) (*entity.SystemSalePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("settings.GetSalePolicy"); err != nil {
		return nil, err
	}
	if r.s.data.policy == nil {
		return nil, nil
	}
	p := *r.s.data.policy
	return &p, nil
}

func (r *settingsRepo) UpdateSalePolicy(_ context.Context, p *entity.SystemSalePolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.policy == nil {
		return domain.ErrPolicyMissing
	}
	cp := *p
	r.s.data.policy = &cp
	return nil
}

func (r *settingsRepo) GetPrintConfig(_ context.Context, branchID string) (*entity.PrintConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.printCfg[branchID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *settingsRepo) GetBranchProfile(_ context.Context, branchID string) (*entity.BranchProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.profiles[branchID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ── Compras ───────────────────────────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.data.purchases[p.ID] = *p
	return nil
}

func (r *purchaseRepo) CreateLine(_ context.Context, l *entity.PurchaseLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	r.s.data.purchaseLines = append(r.s.data.purchaseLines, *l)
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id, branchID string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.purchases[id]
	if !ok || p.BranchID != branchID {
		return nil, nil
	}
	return &p, nil
}

func (r *purchaseRepo) ListLines(_ context.Context, purchaseID string) ([]*entity.PurchaseLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseLine
	for _, l := range r.s.data.purchaseLines {
		if l.PurchaseID != purchaseID {
			continue
		}
		l.ProductName = r.s.data.products[l.ProductID].Name
		out = append(out, &l)
	}
	return out, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Reportes ──────────────────────────────────────────────────────────────────

type reportRepo struct{ s *Store }

func (r *reportRepo) StockMovements(_ context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(r.s.data.stockMovs) - 1; i >= 0; i-- {
		m := r.s.data.stockMovs[i]
		if m.BranchID != f.BranchID {
			continue
		}
		if (f.ProductID != "" && m.ProductID != f.ProductID) || (f.Kind != "" && m.Kind != f.Kind) {
			continue
		}
		if !inRange(m.CreatedAt, f.From, f.To) {
			continue
		}
		m.ProductName = r.s.data.products[m.ProductID].Name
		m.UserName = r.s.data.users[m.UserID].Name
		out = append(out, &m)
	}
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *reportRepo) CashRegisters(_ context.Context, f repository.CashRegisterFilter) ([]*entity.CashRegister, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CashRegister
	for i := len(r.s.data.registerOrder) - 1; i >= 0; i-- {
		c := r.s.data.registers[r.s.data.registerOrder[i]]
		if c.BranchID != f.BranchID || (f.UserID != "" && c.UserID != f.UserID) {
			continue
		}
		if !inRange(c.OpenedAt, f.From, f.To) {
			continue
		}
		out = append(out, r.s.withUserName(c))
	}
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *Store) failureLocked(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure(op)
}

// withUserName se llama con s.mu tomado.
func (s *Store) withUserName(c entity.CashRegister) *entity.CashRegister {
	c.UserName = s.data.users[c.UserID].Name
	return &c
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
