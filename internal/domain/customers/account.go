// Package customers reglas de la cuenta corriente de clientes.
package customers

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ValidAccountKind indica si el tipo pertenece al catálogo venta/pago/ajuste.
func ValidAccountKind(kind string) bool {
	switch kind {
	case entity.AccountKindSale, entity.AccountKindPayment, entity.AccountKindAdjustment:
		return true
	}
	return false
}

// ValidAmount ventas y pagos deben ser positivos; un ajuste puede tener cualquier signo pero no ser cero.
func ValidAmount(kind string, amount decimal.Decimal) bool {
	if kind == entity.AccountKindAdjustment {
		return !amount.IsZero()
	}
	return amount.IsPositive()
}

// Signed efecto del movimiento sobre la deuda del cliente.
func Signed(m *entity.AccountMovement) decimal.Decimal {
	if m.Kind == entity.AccountKindPayment {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Entry movimiento con el saldo acumulado después de aplicarlo.
type Entry struct {
	Movement *entity.AccountMovement
	Balance  decimal.Decimal
}

// Statement acumula el saldo en el orden recibido (cronológico ascendente).
// Un saldo positivo es deuda del cliente.
func Statement(movements []*entity.AccountMovement) ([]Entry, decimal.Decimal) {
	balance := decimal.Zero
	out := make([]Entry, 0, len(movements))
	for _, m := range movements {
		balance = balance.Add(Signed(m))
		out = append(out, Entry{Movement: m, Balance: balance})
	}
	return out, balance
}
