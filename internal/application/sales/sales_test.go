package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/cashregister"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/application/sales"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memstore"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	sucursal  = "suc-1"
	otraSuc   = "suc-2"
	productoA = "prod-a"
	productoB = "prod-b"
)

var cajero = entity.Actor{UserID: "user-1", BranchID: sucursal, Role: entity.RoleCajero}

type fixture struct {
	store  *memstore.Store
	create *sales.CreateSaleUseCase
	void   *sales.VoidSaleUseCase
	query  *sales.QueryUseCase
	cash   *cashregister.UseCase
	events *recorder
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(_, event string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func newFixture(t *testing.T, policy entity.SystemSalePolicy) *fixture {
	t.Helper()
	store := memstore.New()
	store.SetPolicy(policy)
	store.SeedProduct(entity.Product{ID: productoA, BranchID: sucursal, Name: "Yerba 1kg", Active: true})
	store.SeedProduct(entity.Product{ID: productoB, BranchID: sucursal, Name: "Azúcar 1kg", Active: true})
	store.SeedUser(entity.User{ID: cajero.UserID, BranchID: sucursal, Username: "caja1", Name: "Ana", Role: entity.RoleCajero})

	rec := &recorder{}
	log := logger.Nop()
	return &fixture{
		store:  store,
		create: sales.NewCreateSaleUseCase(store, inventory.NewLedger(), store.Sales(), store.Settings(), rec, log),
		void:   sales.NewVoidSaleUseCase(store, rec, log),
		query:  sales.NewQueryUseCase(store.Sales(), store.Settings()),
		cash:   cashregister.NewUseCase(store, store.CashRegisters(), store.CashMovements(), store.Settings(), rec, log),
		events: rec,
	}
}

func (f *fixture) abrirCaja(t *testing.T) string {
	t.Helper()
	c, err := f.cash.Open(context.Background(), cajero, dto.OpenCashRegisterRequest{Shift: "Mañana", OpeningAmount: dec("1000")})
	require.NoError(t, err)
	return c.ID
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func venta(caja string, total string, lineas ...dto.SaleLineItemInput) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Total:          dec(total),
		CashRegisterID: caja,
		LineItems:      lineas,
		Payments:       []dto.SalePaymentInput{{PaymentKind: "efectivo", Amount: dec(total)}},
	}
}

func linea(producto string, cantidad int, precio string) dto.SaleLineItemInput {
	return dto.SaleLineItemInput{ProductID: producto, Quantity: cantidad, UnitPrice: dec(precio)}
}

func stock(t *testing.T, s *memstore.Store, producto string) int {
	t.Helper()
	q, ok := s.StockOf(producto, sucursal)
	require.True(t, ok, "la fila de stock debe existir")
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYRegistraIngresoEnCaja(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{CurrencySymbol: "$"})
	f.store.SeedStock(productoA, sucursal, 10)
	f.store.SeedStock(productoB, sucursal, 3)
	caja := f.abrirCaja(t)

	out, err := f.create.Create(context.Background(), cajero,
		venta(caja, "350", linea(productoA, 2, "100"), linea(productoB, 3, "50")))
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusActive, out.Status)
	assert.NotEmpty(t, out.Code, "sin código se genera uno")
	require.Len(t, out.LineItems, 2)
	assert.Equal(t, "Yerba 1kg", out.LineItems[0].ProductName)
	assert.True(t, dec("200").Equal(out.LineItems[0].Subtotal))
	require.NotNil(t, out.CashRegisterID)
	assert.Equal(t, caja, *out.CashRegisterID)

	assert.Equal(t, 8, stock(t, f.store, productoA))
	assert.Equal(t, 0, stock(t, f.store, productoB))

	movs := f.store.AllStockMovements()
	require.Len(t, movs, 2, "un movimiento por línea descontada")
	for _, m := range movs {
		assert.Equal(t, entity.StockKindOut, m.Kind)
		assert.Equal(t, entity.StockOriginSale, m.Origin)
		assert.Equal(t, "Venta ID "+out.ID, m.Description)
		assert.Negative(t, m.Quantity)
	}

	cash := f.store.AllCashMovements()
	require.Len(t, cash, 1)
	assert.Equal(t, entity.CashKindIncome, cash[0].Kind)
	assert.True(t, dec("350").Equal(cash[0].Amount))
	assert.Equal(t, "Venta código "+out.Code, cash[0].Description)

	assert.Contains(t, f.events.events, "sale.created")
}

func TestCreateSale_ValidacionesPrevias(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{})
	f.store.SeedStock(productoA, sucursal, 10)
	caja := f.abrirCaja(t)

	casos := []struct {
		nombre string
		in     dto.CreateSaleRequest
		err    error
	}{
		{"carrito vacío", venta(caja, "100"), domain.ErrEmptyCart},
		{"sin pagos", dto.CreateSaleRequest{Total: dec("100"), CashRegisterID: caja,
			LineItems: []dto.SaleLineItemInput{linea(productoA, 1, "100")}}, domain.ErrNoPayment},
		{"pagos no coinciden", dto.CreateSaleRequest{Total: dec("100"), CashRegisterID: caja,
			LineItems: []dto.SaleLineItemInput{linea(productoA, 1, "100")},
			Payments:  []dto.SalePaymentInput{{PaymentKind: "efectivo", Amount: dec("99.99")}}}, domain.ErrPaymentMismatch},
		{"cantidad cero", venta(caja, "0", linea(productoA, 0, "100")), domain.ErrInvalidInput},
		{"pago negativo compensado", dto.CreateSaleRequest{Total: dec("100"), CashRegisterID: caja,
			LineItems: []dto.SaleLineItemInput{linea(productoA, 1, "100")},
			Payments: []dto.SalePaymentInput{
				{PaymentKind: "efectivo", Amount: dec("200")},
				{PaymentKind: "debito", Amount: dec("-100")},
			}}, domain.ErrInvalidInput},
		{"pago en cero", dto.CreateSaleRequest{Total: dec("100"), CashRegisterID: caja,
			LineItems: []dto.SaleLineItemInput{linea(productoA, 1, "100")},
			Payments: []dto.SalePaymentInput{
				{PaymentKind: "efectivo", Amount: dec("100")},
				{PaymentKind: "debito", Amount: dec("0")},
			}}, domain.ErrInvalidInput},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.create.Create(context.Background(), cajero, tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	ventas, lineas, pagos := f.store.Counts()
	assert.Zero(t, ventas+lineas+pagos, "no se persiste nada")
	assert.Equal(t, 10, stock(t, f.store, productoA))
	assert.Empty(t, f.store.AllCashMovements())
}

func TestCreateSale_PagosDivididosConRedondeo(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{})
	f.store.SeedStock(productoA, sucursal, 10)
	caja := f.abrirCaja(t)

	in := venta(caja, "100", linea(productoA, 3, "33.3333"))
	in.Payments = []dto.SalePaymentInput{
		{PaymentKind: "efectivo", Amount: dec("33.333")},
		{PaymentKind: "debito", Amount: dec("33.333")},
		{PaymentKind: "credito", Amount: dec("33.334")},
	}
	out, err := f.create.Create(context.Background(), cajero, in)
	require.NoError(t, err)
	assert.Len(t, out.Payments, 3)
}

func TestCreateSale_StockInsuficienteRechazaSinPolitica(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutStock: false})
	f.store.SeedStock(productoA, sucursal, 10)
	f.store.SeedStock(productoB, sucursal, 1)
	caja := f.abrirCaja(t)

	_, err := f.create.Create(context.Background(), cajero,
		venta(caja, "300", linea(productoA, 2, "100"), linea(productoB, 2, "50")))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), productoB)

	// La primera línea ya había descontado: debe revertirse.
	assert.Equal(t, 10, stock(t, f.store, productoA))
	assert.Equal(t, 1, stock(t, f.store, productoB))
	assert.Empty(t, f.store.AllStockMovements())
	ventas, _, _ := f.store.Counts()
	assert.Zero(t, ventas)
}

func TestCreateSale_SinStockPermitidoNoDescuentaNiRegistraMovimiento(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutStock: true})
	f.store.SeedStock(productoA, sucursal, 10)
	f.store.SeedStock(productoB, sucursal, 1)
	caja := f.abrirCaja(t)

	out, err := f.create.Create(context.Background(), cajero,
		venta(caja, "300", linea(productoA, 2, "100"), linea(productoB, 2, "50")))
	require.NoError(t, err)
	assert.Len(t, out.LineItems, 2, "la línea sin stock igual se registra")

	assert.Equal(t, 8, stock(t, f.store, productoA))
	assert.Equal(t, 1, stock(t, f.store, productoB), "nunca queda negativo")
	movs := f.store.AllStockMovements()
	require.Len(t, movs, 1)
	assert.Equal(t, productoA, movs[0].ProductID)
}

func TestCreateSale_ProductoSinFilaDeStockAbortaAunConPolitica(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutStock: true})
	f.store.SeedStock(productoA, sucursal, 10)
	caja := f.abrirCaja(t)

	_, err := f.create.Create(context.Background(), cajero,
		venta(caja, "200", linea(productoA, 1, "100"), linea(productoB, 1, "100")))
	require.ErrorIs(t, err, domain.ErrProductStockMissing)
	assert.Equal(t, 10, stock(t, f.store, productoA))
	ventas, lineas, _ := f.store.Counts()
	assert.Zero(t, ventas+lineas)
}

func TestCreateSale_CajaCerradaSegunPolitica(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: false})
	f.store.SeedStock(productoA, sucursal, 10)

	_, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)

	_, err = f.create.Create(context.Background(), cajero, venta("no-existe", "100", linea(productoA, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)

	caja := f.abrirCaja(t)
	_, err = f.cash.Close(context.Background(), cajero, caja, dto.CloseCashRegisterRequest{ClosingAmount: dec("1000"), ReportedCash: dec("1000")})
	require.NoError(t, err)
	_, err = f.create.Create(context.Background(), cajero, venta(caja, "100", linea(productoA, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrRegisterClosed, "una caja cerrada no admite ventas")

	assert.Equal(t, 10, stock(t, f.store, productoA))
}

func TestCreateSale_CajaDeOtraSucursalNoSeUsa(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{})
	f.store.SeedStock(productoA, sucursal, 10)
	otro := entity.Actor{UserID: "user-2", BranchID: otraSuc, Role: entity.RoleCajero}
	c, err := f.cash.Open(context.Background(), otro, dto.OpenCashRegisterRequest{Shift: "Tarde", OpeningAmount: dec("0")})
	require.NoError(t, err)

	_, err = f.create.Create(context.Background(), cajero, venta(c.ID, "100", linea(productoA, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)
}

func TestCreateSale_SinCajaPermitidoNoRegistraIngreso(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)

	out, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	require.NoError(t, err)
	assert.Nil(t, out.CashRegisterID)
	assert.Empty(t, f.store.AllCashMovements())
	assert.Equal(t, 9, stock(t, f.store, productoA))
}

func TestCreateSale_CajaConIDMalFormadoEquivaleASinCaja(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)

	out, err := f.create.Create(context.Background(), cajero, venta("abc", "100", linea(productoA, 1, "100")))
	require.NoError(t, err)
	assert.Nil(t, out.CashRegisterID)
	assert.Empty(t, f.store.AllCashMovements())

	f.store.SetPolicy(entity.SystemSalePolicy{})
	_, err = f.create.Create(context.Background(), cajero, venta("abc", "100", linea(productoA, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)
	assert.Equal(t, 9, stock(t, f.store, productoA))
}

func TestCreateSale_ClienteDeOtraSucursalSeRechaza(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)
	f.store.SeedCustomer(entity.Customer{ID: "cli-ajeno", BranchID: otraSuc, FirstName: "Secreto", Document: "9"})

	for _, cliente := range []string{"cli-ajeno", "cli-inexistente"} {
		in := venta("", "100", linea(productoA, 1, "100"))
		in.CustomerID = cliente
		_, err := f.create.Create(context.Background(), cajero, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, cliente)
	}

	ventas, lineas, pagos := f.store.Counts()
	assert.Zero(t, ventas+lineas+pagos, "la venta rechazada no deja filas")
	assert.Equal(t, 10, stock(t, f.store, productoA))
}

func TestCreateSale_SinPoliticaFalla(t *testing.T) {
	store := memstore.New()
	store.SeedStock(productoA, sucursal, 10)
	uc := sales.NewCreateSaleUseCase(store, inventory.NewLedger(), store.Sales(), store.Settings(), nil, logger.Nop())

	_, err := uc.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrPolicyMissing)
}

func TestCreateSale_FalloAlRegistrarIngresoRevierteTodo(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{})
	f.store.SeedStock(productoA, sucursal, 10)
	caja := f.abrirCaja(t)
	f.store.FailOn("cashMovements.Create", memstore.ErrInjected)

	_, err := f.create.Create(context.Background(), cajero, venta(caja, "100", linea(productoA, 1, "100")))
	require.ErrorIs(t, err, memstore.ErrInjected)

	ventas, lineas, pagos := f.store.Counts()
	assert.Zero(t, ventas+lineas+pagos)
	assert.Equal(t, 10, stock(t, f.store, productoA))
	assert.Empty(t, f.store.AllStockMovements())
}

func TestCreateSale_ConcurrenciaNuncaSobrevende(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 5)

	const intentos = 20
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
			if err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, oks, "exactamente tantas ventas como unidades")
	assert.Equal(t, 0, stock(t, f.store, productoA))
	assert.Len(t, f.store.AllStockMovements(), 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestVoidSale_DevuelveStockSinRevertirCaja(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{})
	f.store.SeedStock(productoA, sucursal, 10)
	caja := f.abrirCaja(t)

	out, err := f.create.Create(context.Background(), cajero, venta(caja, "300", linea(productoA, 3, "100")))
	require.NoError(t, err)
	require.Equal(t, 7, stock(t, f.store, productoA))
	movsAntes := len(f.store.AllStockMovements())

	require.NoError(t, f.void.Void(context.Background(), cajero, out.ID))

	assert.Equal(t, 10, stock(t, f.store, productoA))
	assert.Len(t, f.store.AllStockMovements(), movsAntes, "la anulación no escribe movimientos de stock")
	assert.Len(t, f.store.AllCashMovements(), 1, "el ingreso de caja no se revierte")

	got, err := f.query.Get(context.Background(), cajero, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusVoided, got.Status)
	assert.Contains(t, f.events.events, "sale.voided")
}

func TestVoidSale_SegundaAnulacionFalla(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)
	out, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	require.NoError(t, err)

	require.NoError(t, f.void.Void(context.Background(), cajero, out.ID))
	err = f.void.Void(context.Background(), cajero, out.ID)
	assert.ErrorIs(t, err, domain.ErrSaleNotFoundOrVoided)
	assert.Equal(t, 10, stock(t, f.store, productoA), "el stock se devuelve una sola vez")
}

func TestVoidSale_InexistenteOAjena(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)
	out, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	require.NoError(t, err)

	assert.ErrorIs(t, f.void.Void(context.Background(), cajero, "no-existe"), domain.ErrSaleNotFoundOrVoided)
	assert.ErrorIs(t, f.void.Void(context.Background(), cajero, "abc"), domain.ErrSaleNotFoundOrVoided)
	otro := entity.Actor{UserID: "user-2", BranchID: otraSuc, Role: entity.RoleAdmin}
	assert.ErrorIs(t, f.void.Void(context.Background(), otro, out.ID), domain.ErrSaleNotFoundOrVoided)
}

func TestVoidSale_DevuelveLineasVendidasSinStock(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutStock: true, AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 1)
	out, err := f.create.Create(context.Background(), cajero, venta("", "300", linea(productoA, 3, "100")))
	require.NoError(t, err)
	require.Equal(t, 1, stock(t, f.store, productoA))

	require.NoError(t, f.void.Void(context.Background(), cajero, out.ID))
	assert.Equal(t, 4, stock(t, f.store, productoA), "se suma la cantidad de la línea aunque no se haya descontado")
}

func TestVoidSale_FalloDeBDDevuelveErrVoidFailedYNoCambiaNada(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)
	out, err := f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 2, "50")))
	require.NoError(t, err)

	f.store.FailOn("stock.Increment", memstore.ErrInjected)
	err = f.void.Void(context.Background(), cajero, out.ID)
	require.ErrorIs(t, err, domain.ErrVoidFailed)
	assert.ErrorIs(t, err, memstore.ErrInjected)

	got, err := f.query.Get(context.Background(), cajero, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusActive, got.Status, "el cambio de estado se revierte")
	assert.Equal(t, 8, stock(t, f.store, productoA))

	f.store.FailOn("stock.Increment", nil)
	require.NoError(t, f.void.Void(context.Background(), cajero, out.ID), "se puede reintentar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestQuery_ListaYFiltraPorCliente(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{AllowSaleWithoutRegister: true})
	f.store.SeedStock(productoA, sucursal, 10)
	f.store.SeedCustomer(entity.Customer{ID: "cli-1", BranchID: sucursal, FirstName: "Juan", Document: "1"})

	in := venta("", "100", linea(productoA, 1, "100"))
	in.CustomerID = "cli-1"
	_, err := f.create.Create(context.Background(), cajero, in)
	require.NoError(t, err)
	_, err = f.create.Create(context.Background(), cajero, venta("", "100", linea(productoA, 1, "100")))
	require.NoError(t, err)

	all, err := f.query.List(context.Background(), cajero, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 20, all.Page.Limit)

	porCliente, err := f.query.ByCustomer(context.Background(), cajero, "cli-1", nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, porCliente.Items, 1)
	require.NotNil(t, porCliente.Items[0].CustomerID)
	assert.Equal(t, "cli-1", *porCliente.Items[0].CustomerID)

	otra := entity.Actor{UserID: "user-9", BranchID: otraSuc}
	vacio, err := f.query.List(context.Background(), otra, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, vacio.Items)

	_, err = f.query.Get(context.Background(), otra, all.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_AperturaVentaAnulacionCierre(t *testing.T) {
	f := newFixture(t, entity.SystemSalePolicy{})
	f.store.SeedStock(productoA, sucursal, 10)
	ctx := context.Background()

	caja := f.abrirCaja(t)
	_, err := f.cash.RecordMovement(ctx, cajero, dto.CashMovementRequest{CashRegisterID: caja, Kind: "egreso", Amount: dec("200"), Description: "Proveedor"})
	require.NoError(t, err)

	v, err := f.create.Create(ctx, cajero, venta(caja, "500", linea(productoA, 5, "100")))
	require.NoError(t, err)
	require.NoError(t, f.void.Void(ctx, cajero, v.ID))

	bal, err := f.cash.Balance(ctx, cajero, caja)
	require.NoError(t, err)
	// 1000 + 500 - 200; la anulación no toca la caja.
	assert.True(t, dec("1300").Equal(bal.Balance), "saldo: %s", bal.Balance)

	cierre, err := f.cash.Close(ctx, cajero, caja, dto.CloseCashRegisterRequest{ClosingAmount: bal.Balance, ReportedCash: dec("1250")})
	require.NoError(t, err)
	assert.True(t, dec("-50").Equal(cierre.Difference))
	assert.Equal(t, 10, stock(t, f.store, productoA))
}
