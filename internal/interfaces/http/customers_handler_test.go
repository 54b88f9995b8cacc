package http_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestGastos_RequierenCajaYAjustanElSaldo(t *testing.T) {
	f := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	gasto := dto.ExpenseRequest{Category: "Limpieza", Description: "lavandina", Amount: decimal.NewFromInt(150)}

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodPost, "/api/expenses", cajero, gasto, &e))
	assert.Equal(t, "SESSION_NOT_OPEN", e.Code)

	cajaID := f.abrirCaja(t, cajero)
	var creado dto.ExpenseResponse
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/expenses", cajero, gasto, &creado))
	assert.Equal(t, cajaID, creado.CashRegisterID)

	gasto.Amount = decimal.NewFromInt(100)
	var editado dto.ExpenseResponse
	require.Equal(t, http.StatusOK, f.call(t, http.MethodPut, "/api/expenses/"+creado.ID, cajero, gasto, &editado))
	assert.True(t, editado.Amount.Equal(decimal.NewFromInt(100)))

	var saldo dto.CashBalanceResponse
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/cash-registers/"+cajaID+"/balance", cajero, nil, &saldo))
	assert.True(t, saldo.Balance.Equal(decimal.NewFromInt(900)), "saldo: %s", saldo.Balance)

	var lista []dto.ExpenseResponse
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/expenses?category=Limpieza", cajero, nil, &lista))
	require.Len(t, lista, 1)
	assert.Equal(t, "Ana", lista[0].UserName)

	require.Equal(t, http.StatusOK, f.call(t, http.MethodDelete, "/api/expenses/"+creado.ID, cajero, nil, nil))
	assert.Equal(t, http.StatusNotFound, f.call(t, http.MethodDelete, "/api/expenses/"+creado.ID, cajero, nil, nil))

	gasto.Amount = decimal.Zero
	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodPost, "/api/expenses", cajero, gasto, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y cuenta corriente
// ──────────────────────────────────────────────────────────────────────────────

func clienteReq(doc string) dto.CustomerRequest {
	return dto.CustomerRequest{FirstName: "Juan", LastName: "Pérez", Document: doc, Phone: "11 4444-5555", Email: "juan@example.com"}
}

func TestClientes_ABMYBusqueda(t *testing.T) {
	f := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	admin := bearer(t, adminID, entity.RoleAdmin)

	var c dto.CustomerResponse
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/customers", cajero, clienteReq("30111222"), &c))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, f.call(t, http.MethodPost, "/api/customers", cajero, clienteReq("30111222"), &e))
	assert.Equal(t, "DOCUMENT_EXISTS", e.Code)

	bad := clienteReq("1")
	bad.Email = "no-es-email"
	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodPost, "/api/customers", cajero, bad, nil))

	var page dto.CustomerListResponse
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/customers?q=3011", cajero, nil, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, c.ID, page.Data[0].ID)

	upd := clienteReq("30111222")
	upd.Address = "Mitre 100"
	var editado dto.CustomerResponse
	require.Equal(t, http.StatusOK, f.call(t, http.MethodPut, "/api/customers/"+c.ID, cajero, upd, &editado))
	assert.Equal(t, "Mitre 100", editado.Address)

	assert.Equal(t, http.StatusForbidden, f.call(t, http.MethodDelete, "/api/customers/"+c.ID, cajero, nil, nil))
	require.Equal(t, http.StatusOK, f.call(t, http.MethodDelete, "/api/customers/"+c.ID, admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, f.call(t, http.MethodGet, "/api/customers/"+c.ID, cajero, nil, nil))
}

func TestClientes_CuentaCorriente(t *testing.T) {
	f := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	admin := bearer(t, adminID, entity.RoleAdmin)

	var c dto.CustomerResponse
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/customers", cajero, clienteReq("1"), &c))
	path := "/api/customers/" + c.ID + "/account"

	var mov dto.AccountMovementResponse
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, path, cajero,
		dto.AccountMovementRequest{Kind: entity.AccountKindSale, Amount: decimal.NewFromInt(800)}, &mov))
	assert.True(t, mov.Balance.Equal(decimal.NewFromInt(800)))
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, path, cajero,
		dto.AccountMovementRequest{Kind: entity.AccountKindPayment, Amount: decimal.NewFromInt(300)}, &mov))
	assert.True(t, mov.Balance.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodPost, path, cajero,
		dto.AccountMovementRequest{Kind: "regalo", Amount: decimal.NewFromInt(1)}, nil))
	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodPost, path, cajero,
		dto.AccountMovementRequest{Kind: entity.AccountKindPayment, Amount: decimal.NewFromInt(-1)}, nil))

	var st dto.AccountStatementResponse
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, path, cajero, nil, &st))
	assert.True(t, st.Balance.Equal(decimal.NewFromInt(500)))
	require.Len(t, st.Movements, 2)
	assert.Equal(t, entity.AccountKindPayment, st.Movements[0].Kind)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, f.call(t, http.MethodDelete, "/api/customers/"+c.ID, admin, nil, &e))
	assert.Equal(t, "HAS_ACCOUNT", e.Code)
}

func TestClientes_ExportCSV(t *testing.T) {
	f := newAPI(t, entity.SystemSalePolicy{})
	admin := bearer(t, adminID, entity.RoleAdmin)
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/customers", admin, clienteReq("30111222"), nil))

	req := httptest.NewRequest(http.MethodGet, "/api/customers/export", nil)
	req.Header.Set("Authorization", admin)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "30111222", records[1][3])
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_Ventas(t *testing.T) {
	f := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	admin := bearer(t, adminID, entity.RoleAdmin)
	cajaID := f.abrirCaja(t, cajero)
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/sales", cajero, ventaSimple(cajaID, 2), nil))

	var ventas []dto.SalesReportRow
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/reports/sales", cajero, nil, &ventas))
	require.Len(t, ventas, 1)
	assert.True(t, ventas[0].Total.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Ana", ventas[0].UserName)

	var periodos []dto.SalesPeriodRow
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/reports/sales/summary?period=mes", admin, nil, &periodos))
	require.Len(t, periodos, 1)
	assert.Equal(t, 1, periodos[0].SalesCount)
	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodGet, "/api/reports/sales/summary?period=anio", admin, nil, nil))
	assert.Equal(t, http.StatusForbidden, f.call(t, http.MethodGet, "/api/reports/sales/summary", cajero, nil, nil))

	var productos []dto.ProductSalesRow
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/reports/sales/by-product", admin, nil, &productos))
	require.Len(t, productos, 1)
	assert.Equal(t, "Yerba 1kg", productos[0].ProductName)
	assert.Equal(t, 2, productos[0].Quantity)
}

func TestVenta_ConClienteDeOtraSucursal_Retorna400(t *testing.T) {
	f := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	ajeno := uuid.New().String()
	f.store.SeedCustomer(entity.Customer{ID: ajeno, BranchID: "suc-2", FirstName: "Secreto", Document: "9"})
	cajaID := f.abrirCaja(t, cajero)

	in := ventaSimple(cajaID, 1)
	in.CustomerID = ajeno
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, f.call(t, http.MethodPost, "/api/sales", cajero, in, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	var c dto.CustomerResponse
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/customers", cajero, clienteReq("30111222"), &c))
	in.CustomerID = c.ID
	require.Equal(t, http.StatusCreated, f.call(t, http.MethodPost, "/api/sales", cajero, in, nil))

	var ventas []dto.SalesReportRow
	require.Equal(t, http.StatusOK, f.call(t, http.MethodGet, "/api/reports/sales?customer_id="+c.ID, cajero, nil, &ventas))
	require.Len(t, ventas, 1)
	assert.Equal(t, "Pérez Juan", ventas[0].CustomerName)
}
