// Package settings expone la política de venta global y la configuración de ticket por sucursal.
package settings

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// UseCase lectura y actualización de configuración.
type UseCase struct {
	repo repository.SettingsRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SettingsRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log.Component("configuracion")}
}

// System política de venta. ErrPolicyMissing si la fila no existe.
func (uc *UseCase) System(ctx context.Context) (*dto.SystemSettingsResponse, error) {
	p, err := uc.repo.GetSalePolicy(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPolicyMissing
	}
	return toSystemResponse(p), nil
}

// UpdateSystem reemplaza la política de venta (solo admin).
func (uc *UseCase) UpdateSystem(ctx context.Context, actor entity.Actor, in dto.UpdateSystemSettingsRequest) (*dto.SystemSettingsResponse, error) {
	if in.DefaultMinStock < 0 || strings.TrimSpace(in.CurrencySymbol) == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.SystemSalePolicy{
		AllowSaleWithoutStock:    in.AllowSaleWithoutStock,
		AllowSaleWithoutRegister: in.AllowSaleWithoutRegister,
		CurrencySymbol:           strings.TrimSpace(in.CurrencySymbol),
		LowStockAlert:            in.LowStockAlert,
		DefaultMinStock:          in.DefaultMinStock,
	}
	if err := uc.repo.UpdateSalePolicy(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", actor.UserID).
		Bool("venta_sin_stock", p.AllowSaleWithoutStock).
		Bool("venta_sin_caja", p.AllowSaleWithoutRegister).
		Msg("política de venta actualizada")
	return toSystemResponse(p), nil
}

// Print configuración de impresión de la sucursal; ErrNotFound si no está cargada.
func (uc *UseCase) Print(ctx context.Context, actor entity.Actor) (*dto.PrintConfigResponse, error) {
	c, err := uc.repo.GetPrintConfig(ctx, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PrintConfigResponse{
		PrintMode:     c.PrintMode,
		TicketType:    c.TicketType,
		ShowLogo:      c.ShowLogo,
		ShowTaxID:     c.ShowTaxID,
		FooterMessage: c.FooterMessage,
		PrinterName:   c.PrinterName,
	}, nil
}

// Branch datos de la sucursal; ErrNotFound si no están cargados.
func (uc *UseCase) Branch(ctx context.Context, actor entity.Actor) (*dto.BranchProfileResponse, error) {
	p, err := uc.repo.GetBranchProfile(ctx, actor.BranchID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.BranchProfileResponse{
		TradeName:    p.TradeName,
		LegalName:    p.LegalName,
		TaxID:        p.TaxID,
		Phone:        p.Phone,
		Email:        p.Email,
		Address:      p.Address,
		City:         p.City,
		TaxCondition: p.TaxCondition,
		LogoBase64:   p.LogoBase64,
	}, nil
}

func toSystemResponse(p *entity.SystemSalePolicy) *dto.SystemSettingsResponse {
	return &dto.SystemSettingsResponse{
		AllowSaleWithoutStock:    p.AllowSaleWithoutStock,
		AllowSaleWithoutRegister: p.AllowSaleWithoutRegister,
		CurrencySymbol:           p.CurrencySymbol,
		LowStockAlert:            p.LowStockAlert,
		DefaultMinStock:          p.DefaultMinStock,
	}
}
