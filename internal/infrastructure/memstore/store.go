// Package memstore implementa TxRunner y todos los repositorios en memoria.
//
// Cada Run toma un mutex global durante toda la transacción, lo que equivale a
// bloquear todas las filas (serializa escrituras concurrentes igual que FOR UPDATE
// sobre la misma fila), y restaura una copia del estado si fn devuelve error.
// Se usa en tests de casos de uso y handlers, y como backend de demo sin PostgreSQL.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var (
	_ ports.TxRunner               = (*Store)(nil)
	_ repository.Repos             = (*Store)(nil)
	_ repository.ProductRepository = (*productRepo)(nil)
	_ repository.UserRepository    = (*userRepo)(nil)
	_ repository.ReportRepository  = (*reportRepo)(nil)
)

// Store estado en memoria.
type Store struct {
	txMu sync.Mutex // serializa transacciones
	mu   sync.Mutex // protege data y failures
	data *state

	failures map[string]error
}

type state struct {
	products      map[string]entity.Product
	stock         map[string]entity.StockEntry
	stockMovs     []entity.StockMovement
	registers     map[string]entity.CashRegister
	registerOrder []string
	cashMovs      []entity.CashMovement
	sales         map[string]entity.Sale
	saleOrder     []string
	lines         []entity.SaleLineItem
	payments      []entity.SalePayment
	policy        *entity.SystemSalePolicy
	printCfg      map[string]entity.PrintConfig
	profiles      map[string]entity.BranchProfile
	users         map[string]entity.User
	purchases     map[string]entity.Purchase
	purchaseLines []entity.PurchaseLine
	expenses      map[string]entity.Expense
	expenseOrder  []string
	customers     map[string]entity.Customer
	accountMovs   []entity.AccountMovement
}

// New crea un store vacío. Sin política de venta cargada (ver SetPolicy).
func New() *Store {
	return &Store{
		data: &state{
			products:  map[string]entity.Product{},
			stock:     map[string]entity.StockEntry{},
			registers: map[string]entity.CashRegister{},
			sales:     map[string]entity.Sale{},
			printCfg:  map[string]entity.PrintConfig{},
			profiles:  map[string]entity.BranchProfile{},
			users:     map[string]entity.User{},
			purchases: map[string]entity.Purchase{},
			expenses:  map[string]entity.Expense{},
			customers: map[string]entity.Customer{},
		},
		failures: map[string]error{},
	}
}

// Run ejecuta fn de forma serializada; si fn falla el estado vuelve al snapshot previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// FailOn hace que la operación indicada (ej. "sales.SetStatus") devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// ErrInjected error genérico para simular fallos de BD.
var ErrInjected = errors.New("memstore: fallo simulado")

func (s *Store) failure(op string) error {
	return s.failures[op]
}

// ── Repos ─────────────────────────────────────────────────────────────────────

func (s *Store) Products() repository.ProductRepository             { return &productRepo{s} }
func (s *Store) Stock() repository.StockRepository                  { return &stockRepo{s} }
func (s *Store) StockMovements() repository.StockMovementRepository { return &stockMovementRepo{s} }
func (s *Store) CashRegisters() repository.CashRegisterRepository   { return &cashRegisterRepo{s} }
func (s *Store) CashMovements() repository.CashMovementRepository   { return &cashMovementRepo{s} }
func (s *Store) Sales() repository.SaleRepository                   { return &saleRepo{s} }
func (s *Store) Settings() repository.SettingsRepository            { return &settingsRepo{s} }
func (s *Store) Purchases() repository.PurchaseRepository           { return &purchaseRepo{s} }
func (s *Store) Expenses() repository.ExpenseRepository             { return &expenseRepo{s} }
func (s *Store) Customers() repository.CustomerRepository           { return &customerRepo{s} }
func (s *Store) Accounts() repository.AccountRepository             { return &accountRepo{s} }

// Users repositorio de usuarios (fuera del bundle transaccional).
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Reports repositorio de reportes.
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{s} }

// ── Semillas y lecturas para tests ────────────────────────────────────────────

// SetPolicy carga (o reemplaza) la fila única de política de venta.
func (s *Store) SetPolicy(p entity.SystemSalePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.policy = &p
}

// SeedProduct registra un producto.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[p.ID] = p
}

// SeedStock provisiona la fila de stock de (producto, sucursal).
func (s *Store) SeedStock(productID, branchID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.stock[stockKey(productID, branchID)] = entity.StockEntry{
		ID:        productID + "@" + branchID,
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  quantity,
	}
}

// SeedUser registra un usuario.
func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
}

// SetPrintConfig carga la configuración de impresión de una sucursal.
func (s *Store) SetPrintConfig(c entity.PrintConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.printCfg[c.BranchID] = c
}

// SetBranchProfile carga los datos de una sucursal.
func (s *Store) SetBranchProfile(p entity.BranchProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.profiles[p.BranchID] = p
}

// StockOf devuelve la cantidad de (producto, sucursal) y si la fila existe.
func (s *Store) StockOf(productID, branchID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data.stock[stockKey(productID, branchID)]
	return e.Quantity, ok
}

// AllStockMovements copia del libro de movimientos de stock.
func (s *Store) AllStockMovements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.data.stockMovs...)
}

// AllCashMovements copia del libro de movimientos de caja.
func (s *Store) AllCashMovements() []entity.CashMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.CashMovement(nil), s.data.cashMovs...)
}

// Counts cantidad de ventas, líneas y pagos persistidos.
func (s *Store) Counts() (sales, lines, payments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.sales), len(s.data.lines), len(s.data.payments)
}

// SeedCustomer registra un cliente.
func (s *Store) SeedCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.customers[c.ID] = c
}

// ExpenseCount cantidad de gastos persistidos.
func (s *Store) ExpenseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.expenses)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stockKey(productID, branchID string) string {
	return productID + "|" + branchID
}

func (st *state) clone() *state {
	c := &state{
		products:      make(map[string]entity.Product, len(st.products)),
		stock:         make(map[string]entity.StockEntry, len(st.stock)),
		stockMovs:     append([]entity.StockMovement(nil), st.stockMovs...),
		registers:     make(map[string]entity.CashRegister, len(st.registers)),
		registerOrder: append([]string(nil), st.registerOrder...),
		cashMovs:      append([]entity.CashMovement(nil), st.cashMovs...),
		sales:         make(map[string]entity.Sale, len(st.sales)),
		saleOrder:     append([]string(nil), st.saleOrder...),
		lines:         append([]entity.SaleLineItem(nil), st.lines...),
		payments:      append([]entity.SalePayment(nil), st.payments...),
		printCfg:      make(map[string]entity.PrintConfig, len(st.printCfg)),
		profiles:      make(map[string]entity.BranchProfile, len(st.profiles)),
		users:         make(map[string]entity.User, len(st.users)),
		purchases:     make(map[string]entity.Purchase, len(st.purchases)),
		purchaseLines: append([]entity.PurchaseLine(nil), st.purchaseLines...),
		expenses:      make(map[string]entity.Expense, len(st.expenses)),
		expenseOrder:  append([]string(nil), st.expenseOrder...),
		customers:     make(map[string]entity.Customer, len(st.customers)),
		accountMovs:   append([]entity.AccountMovement(nil), st.accountMovs...),
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.stock {
		c.stock[k] = v
	}
	for k, v := range st.registers {
		c.registers[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	for k, v := range st.printCfg {
		c.printCfg[k] = v
	}
	for k, v := range st.profiles {
		c.profiles[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.purchases {
		c.purchases[k] = v
	}
	for k, v := range st.expenses {
		c.expenses[k] = v
	}
	for k, v := range st.customers {
		c.customers[k] = v
	}
	if st.policy != nil {
		p := *st.policy
		c.policy = &p
	}
	return c
}
