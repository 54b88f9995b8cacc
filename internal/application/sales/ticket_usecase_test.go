package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/sales"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

type fakeRenderer struct {
	sale     *dto.SaleResponse
	currency string
	err      error
}

func (r *fakeRenderer) RenderSaleTicket(sale *dto.SaleResponse, currency string) ([]byte, error) {
	r.sale, r.currency = sale, currency
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestTicket_UsaMonedaYConfiguracionDeSucursal(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true, CurrencySymbol: "US$"})
	f.store.SeedStock(productoA, sucursal, 10)
	f.store.SetBranchProfile(entity.BranchProfile{BranchID: sucursal, TradeName: "Almacén Centro", TaxID: "20-12345678-9"})
	f.store.SetPrintConfig(entity.PrintConfig{BranchID: sucursal, TicketType: "80mm", FooterMessage: "Gracias"})

	in := venta("", "100", linea(productoA, 1, "100"))
	in.Code = "T-001"
	v, err := f.create.Create(context.Background(), cajero, in)
	require.NoError(t, err)

	r := &fakeRenderer{}
	uc := sales.NewTicketUseCase(f.query, f.store.Settings(), r)
	pdf, name, err := uc.Render(context.Background(), cajero, v.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "ticket-T-001.pdf", name)
	assert.Equal(t, "US$", r.currency)
	require.NotNil(t, r.sale.BranchProfile)
	assert.Equal(t, "Almacén Centro", r.sale.BranchProfile.TradeName)
	require.NotNil(t, r.sale.PrintConfig)
	assert.Equal(t, "80mm", r.sale.PrintConfig.TicketType)
}

func TestTicket_VentaAjenaYErrorDeRender(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)
	v, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	require.NoError(t, err)

	uc := sales.NewTicketUseCase(f.query, f.store.Settings(), &fakeRenderer{})
	_, _, err = uc.Render(context.Background(), entity.Actor{UserID: "x", BranchID: otraSuc}, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("fuente no encontrada")
	uc = sales.NewTicketUseCase(f.query, f.store.Settings(), &fakeRenderer{err: boom})
	_, _, err = uc.Render(context.Background(), cajero, v.ID)
	assert.ErrorIs(t, err, boom)
}
