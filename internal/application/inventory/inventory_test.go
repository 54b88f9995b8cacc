package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memstore"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

var actor = entity.Actor{UserID: "user-1", BranchID: "suc-1", Role: entity.RoleAdmin}

func newStore() *memstore.Store {
	s := memstore.New()
	s.SeedProduct(entity.Product{ID: "p1", BranchID: "suc-1", Name: "Harina 000"})
	s.SeedStock("p1", "suc-1", 10)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_AdjustEscribeUnMovimientoConSigno(t *testing.T) {
	s := newStore()
	l := inventory.NewLedger()

	var got int
	err := s.Run(context.Background(), func(repos repository.Repos) error {
		var err error
		got, err = l.Adjust(context.Background(), repos, inventory.Adjustment{
			ProductID: "p1", BranchID: "suc-1", Delta: -4,
			Kind: entity.StockKindOut, Origin: entity.StockOriginAdjustment, Description: "rotura",
		})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	movs := s.AllStockMovements()
	require.Len(t, movs, 1)
	assert.Equal(t, -4, movs[0].Quantity)
	assert.Equal(t, "rotura", movs[0].Description)
}

func TestLedger_NoDejaStockNegativo(t *testing.T) {
	s := newStore()
	l := inventory.NewLedger()
	err := s.Run(context.Background(), func(repos repository.Repos) error {
		_, err := l.Adjust(context.Background(), repos, inventory.Adjustment{ProductID: "p1", BranchID: "suc-1", Delta: -11})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	q, _ := s.StockOf("p1", "suc-1")
	assert.Equal(t, 10, q)
	assert.Empty(t, s.AllStockMovements())
}

func TestLedger_FilaInexistente(t *testing.T) {
	s := newStore()
	err := s.Run(context.Background(), func(repos repository.Repos) error {
		_, err := inventory.NewLedger().Lock(context.Background(), repos, "p1", "suc-2")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_FalloDelMovimientoRevierteLaCantidad(t *testing.T) {
	s := newStore()
	s.FailOn("stockMovements.Create", memstore.ErrInjected)
	err := s.Run(context.Background(), func(repos repository.Repos) error {
		_, err := inventory.NewLedger().Adjust(context.Background(), repos, inventory.Adjustment{ProductID: "p1", BranchID: "suc-1", Delta: 5})
		return err
	})
	assert.ErrorIs(t, err, memstore.ErrInjected)
	q, _ := s.StockOf("p1", "suc-1")
	assert.Equal(t, 10, q)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste manual
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EntradaYSalida(t *testing.T) {
	s := newStore()
	uc := inventory.NewAdjustStockUseCase(s, inventory.NewLedger(), nil, logger.Nop())
	ctx := context.Background()

	out, err := uc.Adjust(ctx, actor, dto.StockAdjustRequest{ProductID: "p1", Quantity: 5, Kind: "entrada"})
	require.NoError(t, err)
	assert.Equal(t, 15, out.StockActual)

	out, err = uc.Adjust(ctx, actor, dto.StockAdjustRequest{ProductID: "p1", Quantity: 15, Kind: "salida", Description: "inventario"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.StockActual)

	movs := s.AllStockMovements()
	require.Len(t, movs, 2)
	assert.Equal(t, "Ajuste manual", movs[0].Description, "descripción por defecto")
	assert.Equal(t, entity.StockOriginAdjustment, movs[0].Origin)
	assert.Equal(t, -15, movs[1].Quantity)
}

func TestAdjust_Rechazos(t *testing.T) {
	s := newStore()
	uc := inventory.NewAdjustStockUseCase(s, inventory.NewLedger(), nil, logger.Nop())
	ctx := context.Background()

	_, err := uc.Adjust(ctx, actor, dto.StockAdjustRequest{ProductID: "p1", Quantity: 11, Kind: "salida"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.Adjust(ctx, actor, dto.StockAdjustRequest{ProductID: "p1", Quantity: 1, Kind: "traslado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(ctx, actor, dto.StockAdjustRequest{ProductID: "p1", Quantity: 0, Kind: "entrada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(ctx, actor, dto.StockAdjustRequest{ProductID: "zz", Quantity: 1, Kind: "entrada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	q, _ := s.StockOf("p1", "suc-1")
	assert.Equal(t, 10, q)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestStockQuery_UmbralDeStockBajo(t *testing.T) {
	s := newStore()
	s.SeedProduct(entity.Product{ID: "p2", BranchID: "suc-1", Name: "Sal fina"})
	s.SeedStock("p2", "suc-1", 3)
	uc := inventory.NewStockQueryUseCase(s.Stock(), s.Settings())
	ctx := context.Background()

	low, err := uc.Low(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultLowStockThreshold, low.Threshold, "sin configuración usa el default")
	require.Len(t, low.Items, 1)
	assert.Equal(t, "Sal fina", low.Items[0].ProductName)

	s.SetPolicy(entity.SystemSalePolicy{DefaultMinStock: 20})
	low, err = uc.Low(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, 20, low.Threshold)
	assert.Len(t, low.Items, 2)

	_, err = uc.Get(ctx, actor, "p-no")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, actor, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}
