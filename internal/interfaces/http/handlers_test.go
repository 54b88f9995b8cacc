package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-backoffice/internal/application/auth"
	"github.com/jhoicas/pos-backoffice/internal/application/cashregister"
	"github.com/jhoicas/pos-backoffice/internal/application/catalog"
	"github.com/jhoicas/pos-backoffice/internal/application/customers"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/expenses"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/application/purchasing"
	"github.com/jhoicas/pos-backoffice/internal/application/reports"
	"github.com/jhoicas/pos-backoffice/internal/application/sales"
	"github.com/jhoicas/pos-backoffice/internal/application/settings"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memstore"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pos-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-backoffice/pkg/jwt"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	sucursal  = "suc-1"
	productoA = "prod-a"
	cajeroID  = "user-cajero"
	adminID   = "user-admin"
)

type apiFixture struct {
	app   *fiber.App
	store *memstore.Store
}

func newAPI(t *testing.T, policy entity.SystemSalePolicy) *apiFixture {
	t.Helper()
	store := memstore.New()
	store.SetPolicy(policy)
	store.SeedProduct(entity.Product{ID: productoA, BranchID: sucursal, Name: "Yerba 1kg", Active: true})
	store.SeedStock(productoA, sucursal, 10)
	store.SetPrintConfig(entity.PrintConfig{BranchID: sucursal, TicketType: "80mm", FooterMessage: "Gracias por su compra"})
	store.SetBranchProfile(entity.BranchProfile{BranchID: sucursal, TradeName: "Almacén Centro", TaxID: "20-12345678-9"})

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	store.SeedUser(entity.User{ID: cajeroID, BranchID: sucursal, Username: "caja1", PasswordHash: string(hash), Name: "Ana", Role: entity.RoleCajero})
	store.SeedUser(entity.User{ID: adminID, BranchID: sucursal, Username: "admin", PasswordHash: string(hash), Name: "Dueño", Role: entity.RoleAdmin})

	log := logger.Nop()
	var events ports.EventPublisher = ports.NopPublisher{}
	ledger := inventory.NewLedger()
	queries := sales.NewQueryUseCase(store.Sales(), store.Settings())

	app := fiber.New(fiber.Config{Immutable: true})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		Catalog:      catalog.NewUseCase(store, store.Products(), log),
		CreateSale:   sales.NewCreateSaleUseCase(store, ledger, store.Sales(), store.Settings(), events, log),
		VoidSale:     sales.NewVoidSaleUseCase(store, events, log),
		SaleQuery:    queries,
		SaleTicket:   sales.NewTicketUseCase(queries, store.Settings(), pdf.NewTicketGenerator()),
		CashRegister: cashregister.NewUseCase(store, store.CashRegisters(), store.CashMovements(), store.Settings(), events, log),
		AdjustStock:  inventory.NewAdjustStockUseCase(store, ledger, events, log),
		StockQuery:   inventory.NewStockQueryUseCase(store.Stock(), store.Settings()),
		Purchases:    purchasing.NewUseCase(store, ledger, store.Purchases(), events, log),
		Settings:     settings.NewUseCase(store.Settings(), log),
		Reports:      reports.NewUseCase(store.Reports(), store.CashRegisters(), store.CashMovements()),
		Expenses:     expenses.NewUseCase(store, store.Expenses(), events, log),
		Customers:    customers.NewUseCase(store, store.Customers(), store.Accounts(), log),
		JWTSecret:    testJWTSecret,
	})
	return &apiFixture{app: app, store: store}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, sucursal, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call ejecuta la petición y decodifica el JSON de respuesta en out (si no es nil).
func (f *apiFixture) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *apiFixture) abrirCaja(t *testing.T, token string) string {
	t.Helper()
	var caja dto.CashRegisterResponse
	status := f.call(t, http.MethodPost, "/api/cash-registers/open", token,
		dto.OpenCashRegisterRequest{Shift: "mañana", OpeningAmount: decimal.NewFromInt(1000)}, &caja)
	require.Equal(t, http.StatusCreated, status)
	return caja.ID
}

func ventaSimple(cajaID string, qty int) dto.CreateSaleRequest {
	total := decimal.NewFromInt(int64(250 * qty))
	return dto.CreateSaleRequest{
		Total:          total,
		CashRegisterID: cajaID,
		LineItems:      []dto.SaleLineItemInput{{ProductID: productoA, Quantity: qty, UnitPrice: decimal.NewFromInt(250)}},
		Payments:       []dto.SalePaymentInput{{PaymentKind: "efectivo", Amount: total}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenUsable(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})

	var out dto.LoginResponse
	status := api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "caja1", Password: "secreto123"}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleCajero, out.User.Role)

	claims, err := pkgjwt.Parse(testJWTSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, sucursal, claims.BranchID)
}

func TestLogin_PasswordIncorrecta_Retorna401(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	var out dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "caja1", Password: "otra-clave"}, &out)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", out.Code)
}

func TestRegister_SoloAdmin(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	in := dto.RegisterRequest{Username: "caja2", Password: "secreto123", Name: "Beto"}

	status := api.call(t, http.MethodPost, "/api/auth/register", bearer(t, cajeroID, entity.RoleCajero), in, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var user dto.UserResponse
	status = api.call(t, http.MethodPost, "/api/auth/register", bearer(t, adminID, entity.RoleAdmin), in, &user)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, sucursal, user.BranchID, "sin branch_id se usa la sucursal del admin")
	assert.Equal(t, entity.RoleCajero, user.Role)

	var dup dto.ErrorResponse
	status = api.call(t, http.MethodPost, "/api/auth/register", bearer(t, adminID, entity.RoleAdmin), in, &dup)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRutaProtegida_SinToken_Retorna401(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	status := api.call(t, http.MethodGet, "/api/sales", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_FlujoCompleto_CrearYAnular(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	cajaID := api.abrirCaja(t, cajero)

	var venta dto.SaleResponse
	status := api.call(t, http.MethodPost, "/api/sales", cajero, ventaSimple(cajaID, 2), &venta)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.SaleStatusActive, venta.Status)
	require.Len(t, venta.LineItems, 1)
	assert.Equal(t, "Yerba 1kg", venta.LineItems[0].ProductName)
	require.NotNil(t, venta.BranchProfile)
	assert.Equal(t, "Almacén Centro", venta.BranchProfile.TradeName)

	qty, _ := api.store.StockOf(productoA, sucursal)
	assert.Equal(t, 8, qty)

	var saldo dto.CashBalanceResponse
	status = api.call(t, http.MethodGet, "/api/cash-registers/"+cajaID+"/balance", cajero, nil, &saldo)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, saldo.Balance.Equal(decimal.NewFromInt(1500)), "apertura 1000 + venta 500")

	// el cajero no puede anular
	status = api.call(t, http.MethodPut, "/api/sales/"+venta.ID+"/void", cajero, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	supervisor := bearer(t, "user-sup", entity.RoleSupervisor)
	var msg dto.MessageResponse
	status = api.call(t, http.MethodPut, "/api/sales/"+venta.ID+"/void", supervisor, nil, &msg)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Venta anulada correctamente", msg.Message)

	qty, _ = api.store.StockOf(productoA, sucursal)
	assert.Equal(t, 10, qty, "la anulación devuelve el stock")

	var errResp dto.ErrorResponse
	status = api.call(t, http.MethodPut, "/api/sales/"+venta.ID+"/void", supervisor, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "SALE_NOT_FOUND_OR_VOIDED", errResp.Code)
}

func TestVenta_Validaciones_Retornan400(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	vacia := ventaSimple("", 1)
	vacia.LineItems = nil
	var out dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/sales", cajero, vacia, &out))
	assert.Equal(t, "EMPTY_CART", out.Code)

	sinPago := ventaSimple("", 1)
	sinPago.Payments = nil
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/sales", cajero, sinPago, &out))
	assert.Equal(t, "NO_PAYMENT", out.Code)

	descuadre := ventaSimple("", 1)
	descuadre.Payments[0].Amount = decimal.NewFromInt(100)
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/sales", cajero, descuadre, &out))
	assert.Equal(t, "PAYMENT_MISMATCH", out.Code)
}

func TestVenta_PagoNegativo_Retorna400SinEfectos(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	in := ventaSimple("", 2)
	in.Payments = []dto.SalePaymentInput{
		{PaymentKind: "efectivo", Amount: decimal.NewFromInt(750)},
		{PaymentKind: "debito", Amount: decimal.NewFromInt(-250)},
	}
	var out dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/sales", cajero, in, &out))
	assert.Equal(t, "VALIDATION", out.Code)

	largo := ventaSimple("", 1)
	largo.Code = strings.Repeat("V", 61)
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/sales", cajero, largo, &out))
	assert.Equal(t, "VALIDATION", out.Code)

	ventas, lineas, pagos := api.store.Counts()
	assert.Zero(t, ventas+lineas+pagos)
	qty, _ := api.store.StockOf(productoA, sucursal)
	assert.Equal(t, 10, qty)
}

func TestVenta_IDsMalFormados(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	supervisor := bearer(t, "user-sup", entity.RoleSupervisor)

	var venta dto.SaleResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/sales", cajero, ventaSimple("abc", 1), &venta))
	assert.Nil(t, venta.CashRegisterID, "un id de caja mal formado equivale a vender sin caja")

	var out dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodPut, "/api/sales/abc/void", supervisor, nil, &out))
	assert.Equal(t, "SALE_NOT_FOUND_OR_VOIDED", out.Code)

	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPut, "/api/cash-registers/abc/close", cajero,
		dto.CloseCashRegisterRequest{ClosingAmount: decimal.NewFromInt(1), ReportedCash: decimal.NewFromInt(1)}, &out))
	assert.Equal(t, "SESSION_NOT_OPEN", out.Code)

	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/cash-registers/abc/balance", cajero, nil, &out))
}

func TestVenta_StockInsuficiente_Retorna500SinEfectos(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	var out dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/sales", cajero, ventaSimple("", 11), &out)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)

	ventas, _, _ := api.store.Counts()
	assert.Zero(t, ventas)
}

func TestVenta_SinCajaNoPermitida_RetornaRegisterClosed(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	var out dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/sales", bearer(t, cajeroID, entity.RoleCajero), ventaSimple("", 1), &out)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "REGISTER_CLOSED", out.Code)
}

func TestVenta_CuerpoInvalido_Retorna400(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, cajeroID, entity.RoleCajero))
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

func TestVenta_ListadoYTicket(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	var venta dto.SaleResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/sales", cajero, ventaSimple("", 1), &venta))
	assert.Nil(t, venta.CashRegisterID)

	var lista dto.SaleListResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/sales?from=2000-01-01", cajero, nil, &lista))
	require.Len(t, lista.Items, 1)
	assert.Equal(t, venta.ID, lista.Items[0].ID)

	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodGet, "/api/sales?from=ayer", cajero, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+venta.ID+"/ticket", nil)
	req.Header.Set("Authorization", cajero)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/sales/no-existe", cajero, nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Caja
// ──────────────────────────────────────────────────────────────────────────────

func TestCaja_AperturaDuplicadaYTurnoInvalido(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	var out dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/cash-registers/open", cajero,
		dto.OpenCashRegisterRequest{Shift: "Madrugada", OpeningAmount: decimal.NewFromInt(10)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SHIFT", out.Code)

	api.abrirCaja(t, cajero)
	status = api.call(t, http.MethodPost, "/api/cash-registers/open", cajero,
		dto.OpenCashRegisterRequest{Shift: "Tarde", OpeningAmount: decimal.NewFromInt(10)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_OPEN", out.Code)
}

func TestCaja_MovimientoYCierre(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	cajaID := api.abrirCaja(t, cajero)

	var out dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/cash-registers/movements", cajero,
		dto.CashMovementRequest{CashRegisterID: cajaID, Kind: "retiro", Amount: decimal.NewFromInt(50)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_MOVEMENT_KIND", out.Code)

	status = api.call(t, http.MethodPost, "/api/cash-registers/movements", cajero,
		dto.CashMovementRequest{CashRegisterID: cajaID, Kind: "egreso", Amount: decimal.NewFromInt(200), Description: "Proveedor"}, nil)
	require.Equal(t, http.StatusCreated, status)

	var cierre dto.CloseCashRegisterResponse
	status = api.call(t, http.MethodPut, "/api/cash-registers/"+cajaID+"/close", cajero,
		dto.CloseCashRegisterRequest{ClosingAmount: decimal.NewFromInt(800), ReportedCash: decimal.NewFromInt(790)}, &cierre)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, cierre.Difference.Equal(decimal.NewFromInt(-10)))

	status = api.call(t, http.MethodPut, "/api/cash-registers/"+cajaID+"/close", cajero,
		dto.CloseCashRegisterRequest{ClosingAmount: decimal.NewFromInt(800), ReportedCash: decimal.NewFromInt(800)}, &out)
	assert.Equal(t, http.StatusBadRequest, status, "el cierre es irreversible")
	assert.Equal(t, "SESSION_NOT_OPEN", out.Code)

	var ultima dto.CashRegisterResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/cash-registers/last-closed", cajero, nil, &ultima))
	assert.Equal(t, cajaID, ultima.ID)
}

func TestCaja_CuerpoInvalido_Retorna400(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	var out dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/cash-registers/open", cajero,
		dto.OpenCashRegisterRequest{Shift: "Mañana", OpeningAmount: decimal.NewFromInt(-1)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)

	cajaID := api.abrirCaja(t, cajero)
	status = api.call(t, http.MethodPost, "/api/cash-registers/movements", cajero,
		dto.CashMovementRequest{CashRegisterID: cajaID, Kind: "egreso", Amount: decimal.NewFromInt(5), Description: strings.Repeat("x", 10000)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)

	status = api.call(t, http.MethodPost, "/api/cash-registers/movements", cajero,
		dto.CashMovementRequest{CashRegisterID: cajaID, Kind: "", Amount: decimal.NewFromInt(5)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_MOVEMENT_KIND", out.Code, "el tipo vacío conserva su código propio")

	status = api.call(t, http.MethodPut, "/api/cash-registers/"+cajaID+"/close", cajero,
		dto.CloseCashRegisterRequest{ClosingAmount: decimal.NewFromInt(100), ReportedCash: decimal.NewFromInt(-1)}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)

	var saldo dto.CashBalanceResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/cash-registers/"+cajaID+"/balance", cajero, nil, &saldo))
	assert.True(t, saldo.Balance.Equal(decimal.NewFromInt(1000)), "ningún movimiento inválido quedó registrado")
}

func TestCaja_EstadoAbierta(t *testing.T) {
	cajero := func(t *testing.T) string { return bearer(t, cajeroID, entity.RoleCajero) }

	t.Run("sin caja y sin permiso devuelve 404", func(t *testing.T) {
		api := newAPI(t, entity.SystemSalePolicy{})
		assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/cash-registers/open", cajero(t), nil, nil))
	})

	t.Run("sin caja con permiso devuelve caja null", func(t *testing.T) {
		api := newAPI(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
		var raw map[string]any
		require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/cash-registers/open", cajero(t), nil, &raw))
		assert.Equal(t, "Venta sin caja permitida", raw["message"])
		assert.Nil(t, raw["caja"])
	})

	t.Run("con caja abierta la devuelve", func(t *testing.T) {
		api := newAPI(t, entity.SystemSalePolicy{})
		cajaID := api.abrirCaja(t, cajero(t))
		var out dto.OpenCashRegisterStatusResponse
		require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/cash-registers/open", cajero(t), nil, &out))
		require.NotNil(t, out.Caja)
		assert.Equal(t, cajaID, out.Caja.ID)
		assert.Equal(t, "Mañana", out.Caja.Shift)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock, compras, configuración y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_AjusteManual(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	admin := bearer(t, adminID, entity.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodPost, "/api/stock/adjust", bearer(t, cajeroID, entity.RoleCajero),
		dto.StockAdjustRequest{ProductID: productoA, Quantity: 1, Kind: "entrada"}, nil))

	var ok dto.StockAdjustResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPost, "/api/stock/adjust", admin,
		dto.StockAdjustRequest{ProductID: productoA, Quantity: 5, Kind: "entrada"}, &ok))
	assert.Equal(t, 15, ok.StockActual)

	var out dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/stock/adjust", admin,
		dto.StockAdjustRequest{ProductID: productoA, Quantity: 16, Kind: "salida"}, &out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)

	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodPost, "/api/stock/adjust", admin,
		dto.StockAdjustRequest{ProductID: "no-existe", Quantity: 1, Kind: "entrada"}, nil))

	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/stock/adjust", admin,
		dto.StockAdjustRequest{ProductID: productoA, Quantity: 1, Kind: "regalo"}, &out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestStock_Consultas(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{DefaultMinStock: 20})
	cajero := bearer(t, cajeroID, entity.RoleCajero)

	var uno dto.StockResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/stock/"+productoA, cajero, nil, &uno))
	assert.Equal(t, 10, uno.Quantity)

	var bajo dto.LowStockResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/stock/low", cajero, nil, &bajo))
	assert.Equal(t, 20, bajo.Threshold)
	assert.Len(t, bajo.Items, 1)
}

func TestCompra_SumaStock(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	admin := bearer(t, adminID, entity.RoleAdmin)

	var compra dto.PurchaseResponse
	status := api.call(t, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{
		Total: decimal.NewFromInt(900),
		Items: []dto.PurchaseItemInput{{ProductID: productoA, Quantity: 6, UnitPrice: decimal.NewFromInt(150)}},
	}, &compra)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.PurchaseStatusPending, compra.Status)

	qty, _ := api.store.StockOf(productoA, sucursal)
	assert.Equal(t, 16, qty)

	var leida dto.PurchaseResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/purchases/"+compra.ID, admin, nil, &leida))
	require.Len(t, leida.Items, 1)
	assert.Equal(t, "Yerba 1kg", leida.Items[0].ProductName)

	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{}, nil))
}

func TestConfiguracion_SoloAdminActualiza(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{CurrencySymbol: "$"})
	in := dto.UpdateSystemSettingsRequest{AllowSaleWithoutStock: true, CurrencySymbol: "US$", DefaultMinStock: 3}

	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodPut, "/api/settings/system", bearer(t, cajeroID, entity.RoleCajero), in, nil))

	var out dto.SystemSettingsResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPut, "/api/settings/system", bearer(t, adminID, entity.RoleAdmin), in, &out))
	assert.True(t, out.AllowSaleWithoutStock)
	assert.Equal(t, "US$", out.CurrencySymbol)

	var impresion dto.PrintConfigResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/settings/print", bearer(t, cajeroID, entity.RoleCajero), nil, &impresion))
	assert.Equal(t, "Gracias por su compra", impresion.FooterMessage)
}

func TestReportes_CajeroSoloVeSusCajas(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	admin := bearer(t, adminID, entity.RoleAdmin)
	cajaCajero := api.abrirCaja(t, cajero)
	api.abrirCaja(t, admin)

	var propias []dto.CashRegisterResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/reports/cash-registers?user_id="+adminID, cajero, nil, &propias))
	require.Len(t, propias, 1)
	assert.Equal(t, cajaCajero, propias[0].ID)

	var todas []dto.CashRegisterResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/reports/cash-registers", admin, nil, &todas))
	assert.Len(t, todas, 2)

	var resumen dto.CashRegisterSummaryResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/reports/cash-registers/"+cajaCajero+"/summary", cajero, nil, &resumen))
	assert.True(t, resumen.Balance.Equal(decimal.NewFromInt(1000)))
	assert.False(t, resumen.Reconciled, "una caja abierta no concilia")

	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodGet, "/api/reports/stock-movements", cajero, nil, nil))
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodGet, "/api/reports/stock-movements?kind=otro", admin, nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_AltaConBarcodeGeneradoYStockEnCero(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	admin := bearer(t, adminID, entity.RoleAdmin)
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	in := dto.CreateProductRequest{Code: "ACE-15", Name: "Aceite 1,5L", Price: decimal.RequireFromString("2500")}

	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodPost, "/api/products", cajero, in, nil))

	var out dto.ProductResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/products", admin, in, &out))
	assert.Len(t, out.Barcode, 13)
	assert.True(t, out.Active)

	qty, ok := api.store.StockOf(out.ID, sucursal)
	require.True(t, ok, "el alta debe provisionar la fila de stock")
	assert.Equal(t, 0, qty)

	var porCodigo dto.ProductResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/products/barcode/"+out.Barcode, cajero, nil, &porCodigo))
	assert.Equal(t, out.ID, porCodigo.ID)

	var auto dto.ProductListResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/products?auto_barcode=true", cajero, nil, &auto))
	require.Len(t, auto.Items, 1)
	assert.Equal(t, "ACE-15", auto.Items[0].Code)

	var ce dto.ErrorResponse
	require.Equal(t, http.StatusConflict, api.call(t, http.MethodPost, "/api/products", admin, in, &ce))
	assert.Equal(t, "CODE_EXISTS", ce.Code)

	otro := dto.CreateProductRequest{Code: "ACE-09", Name: "Aceite 900ml", Barcode: out.Barcode}
	require.Equal(t, http.StatusConflict, api.call(t, http.MethodPost, "/api/products", admin, otro, &ce))
	assert.Equal(t, "BARCODE_EXISTS", ce.Code)

	require.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{Code: " ", Name: "x"}, &ce))
	assert.Equal(t, "VALIDATION", ce.Code)
}

func TestProductos_EdicionYBajaLogica(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	admin := bearer(t, adminID, entity.RoleAdmin)

	var out dto.ProductResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/products", admin,
		dto.CreateProductRequest{Code: "AZU-1", Name: "Azúcar 1kg", Barcode: "7790000000001"}, &out))

	nombre := "Azúcar común 1kg"
	precio := decimal.RequireFromString("900")
	var upd dto.ProductResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPut, "/api/products/"+out.ID, admin,
		dto.UpdateProductRequest{Name: &nombre, Price: &precio}, &upd))
	assert.Equal(t, nombre, upd.Name)
	assert.Equal(t, "7790000000001", upd.Barcode, "los campos ausentes no cambian")
	assert.True(t, upd.Price.Equal(precio))

	require.Equal(t, http.StatusOK, api.call(t, http.MethodDelete, "/api/products/"+out.ID, admin, nil, nil))

	var lista dto.ProductListResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/products", admin, nil, &lista))
	for _, p := range lista.Items {
		assert.NotEqual(t, out.ID, p.ID, "un producto inactivo no se lista")
	}

	var got dto.ProductResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/products/"+out.ID, admin, nil, &got))
	assert.False(t, got.Active)

	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/products/no-existe", admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodDelete, "/api/products/no-existe", admin, nil, nil))
}
