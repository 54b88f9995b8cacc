package cashregister

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// Summary totales de una caja.
type Summary struct {
	Opening  decimal.Decimal
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// Fold calcula el saldo de la caja: apertura + ingresos - egresos.
// Los movimientos de tipo apertura/cierre son informativos y no alteran el saldo.
// El resultado no depende del orden de los movimientos.
func Fold(opening decimal.Decimal, movements []*entity.CashMovement) Summary {
	s := Summary{Opening: opening, Incomes: decimal.Zero, Expenses: decimal.Zero}
	for _, m := range movements {
		switch m.Kind {
		case entity.CashKindIncome:
			s.Incomes = s.Incomes.Add(m.Amount)
		case entity.CashKindExpense:
			s.Expenses = s.Expenses.Add(m.Amount)
		}
	}
	s.Balance = opening.Add(s.Incomes).Sub(s.Expenses)
	return s
}

// ValidMovementKind indica si el tipo pertenece al catálogo de movimientos de caja.
func ValidMovementKind(kind string) bool {
	switch kind {
	case entity.CashKindIncome, entity.CashKindExpense, entity.CashKindOpening, entity.CashKindClosing:
		return true
	}
	return false
}
