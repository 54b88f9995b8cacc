package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuracion_sistema (fila id = 1), configuracion_impresion y configuracion_sucursal.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetSalePolicy lee la fila única; nil si no existe.
func (r *SettingsRepo) GetSalePolicy(ctx context.Context) (*entity.SystemSalePolicy, error) {
	query := `
		SELECT permitir_venta_sin_stock, permitir_venta_sin_caja, simbolo_moneda, alerta_stock_bajo, stock_minimo_default
		FROM configuracion_sistema WHERE id = 1`
	var p entity.SystemSalePolicy
	err := r.q.QueryRow(ctx, query).Scan(
		&p.AllowSaleWithoutStock, &p.AllowSaleWithoutRegister, &p.CurrencySymbol, &p.LowStockAlert, &p.DefaultMinStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuracion sistema: %w", err)
	}
	return &p, nil
}

// UpdateSalePolicy actualiza la fila única; ErrPolicyMissing si no existe.
func (r *SettingsRepo) UpdateSalePolicy(ctx context.Context, p *entity.SystemSalePolicy) error {
	query := `
		UPDATE configuracion_sistema SET
			permitir_venta_sin_stock = $1, permitir_venta_sin_caja = $2, simbolo_moneda = $3,
			alerta_stock_bajo = $4, stock_minimo_default = $5
		WHERE id = 1`
	tag, err := r.q.Exec(ctx, query,
		p.AllowSaleWithoutStock, p.AllowSaleWithoutRegister, p.CurrencySymbol, p.LowStockAlert, p.DefaultMinStock,
	)
	if err != nil {
		return fmt.Errorf("update configuracion sistema: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPolicyMissing
	}
	return nil
}

// GetPrintConfig configuración de impresión de la sucursal; nil si no hay.
func (r *SettingsRepo) GetPrintConfig(ctx context.Context, branchID string) (*entity.PrintConfig, error) {
	query := `
		SELECT sucursal_id, modo_impresion, tipo_ticket, mostrar_logo, mostrar_cuit, mensaje_pie, nombre_impresora
		FROM configuracion_impresion WHERE sucursal_id = $1`
	var c entity.PrintConfig
	err := r.q.QueryRow(ctx, query, branchID).Scan(
		&c.BranchID, &c.PrintMode, &c.TicketType, &c.ShowLogo, &c.ShowTaxID, &c.FooterMessage, &c.PrinterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuracion impresion: %w", err)
	}
	return &c, nil
}

// GetBranchProfile datos de la sucursal; nil si no hay.
func (r *SettingsRepo) GetBranchProfile(ctx context.Context, branchID string) (*entity.BranchProfile, error) {
	query := `
		SELECT sucursal_id, nombre_fantasia, razon_social, cuit, telefono, email, direccion, ciudad, condicion_iva, logo_base64
		FROM configuracion_sucursal WHERE sucursal_id = $1`
	var p entity.BranchProfile
	err := r.q.QueryRow(ctx, query, branchID).Scan(
		&p.BranchID, &p.TradeName, &p.LegalName, &p.TaxID, &p.Phone, &p.Email, &p.Address, &p.City,
		&p.TaxCondition, &p.LogoBase64,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuracion sucursal: %w", err)
	}
	return &p, nil
}
