package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txRepos{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txRepos construye cada repositorio sobre la misma tx.
type txRepos struct {
	tx pgx.Tx
}

func (t txRepos) Products() repository.ProductRepository { return NewProductRepository(t.tx) }
func (t txRepos) Stock() repository.StockRepository       { return NewStockRepository(t.tx) }
func (t txRepos) StockMovements() repository.StockMovementRepository {
	return NewStockMovementRepository(t.tx)
}
func (t txRepos) CashRegisters() repository.CashRegisterRepository {
	return NewCashRegisterRepository(t.tx)
}
func (t txRepos) CashMovements() repository.CashMovementRepository {
	return NewCashMovementRepository(t.tx)
}
func (t txRepos) Sales() repository.SaleRepository         { return NewSaleRepository(t.tx) }
func (t txRepos) Settings() repository.SettingsRepository  { return NewSettingsRepository(t.tx) }
func (t txRepos) Purchases() repository.PurchaseRepository { return NewPurchaseRepository(t.tx) }
func (t txRepos) Expenses() repository.ExpenseRepository   { return NewExpenseRepository(t.tx) }
func (t txRepos) Customers() repository.CustomerRepository { return NewCustomerRepository(t.tx) }
func (t txRepos) Accounts() repository.AccountRepository   { return NewAccountRepository(t.tx) }
