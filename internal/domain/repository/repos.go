package repository

// Repos agrupa los repositorios atados a una misma transacción.
// Todo lo que se escribe a través de ellos se confirma o revierte junto.
type Repos interface {
	Products() ProductRepository
	Stock() StockRepository
	StockMovements() StockMovementRepository
	CashRegisters() CashRegisterRepository
	CashMovements() CashMovementRepository
	Sales() SaleRepository
	Settings() SettingsRepository
	Purchases() PurchaseRepository
	Expenses() ExpenseRepository
	Customers() CustomerRepository
	Accounts() AccountRepository
}
