// Package sales reglas puras de la venta.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// MinorUnits decimales de la moneda usados al comparar montos.
const MinorUnits = 2

// PaymentsTotal suma los montos de los pagos.
func PaymentsTotal(payments []entity.SalePayment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// PaymentsMatch compara la suma de pagos con el total, ambos redondeados a 2 decimales.
// Igualdad exacta, sin tolerancia.
func PaymentsMatch(total decimal.Decimal, payments []entity.SalePayment) bool {
	return PaymentsTotal(payments).Round(MinorUnits).Equal(total.Round(MinorUnits))
}
