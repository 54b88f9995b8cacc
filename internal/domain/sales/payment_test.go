package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/sales"
)

func pagos(montos ...string) []entity.SalePayment {
	out := make([]entity.SalePayment, 0, len(montos))
	for _, m := range montos {
		out = append(out, entity.SalePayment{PaymentKind: "efectivo", Amount: decimal.RequireFromString(m)})
	}
	return out
}

func TestPaymentsMatch_SumaExacta(t *testing.T) {
	assert.True(t, sales.PaymentsMatch(decimal.RequireFromString("100"), pagos("60", "40")))
}

func TestPaymentsMatch_RedondeoADosDecimales(t *testing.T) {
	// 33.333 + 33.333 + 33.334 = 100.000
	assert.True(t, sales.PaymentsMatch(decimal.RequireFromString("100.00"), pagos("33.333", "33.333", "33.334")))
	// 99.996 redondea a 100.00
	assert.True(t, sales.PaymentsMatch(decimal.RequireFromString("100"), pagos("99.996")))
}

func TestPaymentsMatch_DiferenciaDeUnCentavoRechaza(t *testing.T) {
	assert.False(t, sales.PaymentsMatch(decimal.RequireFromString("100"), pagos("99.99")),
		"la comparación es exacta, sin tolerancia")
	assert.False(t, sales.PaymentsMatch(decimal.RequireFromString("100"), pagos("100.01")))
}
