package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// composer arma la vista completa de una venta a partir de lecturas fuera de transacción.
type composer struct {
	sales    repository.SaleRepository
	settings repository.SettingsRepository
}

func (c composer) compose(ctx context.Context, sale *entity.Sale) (*dto.SaleResponse, error) {
	lines, err := c.sales.ListLineItems(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("leer detalle de venta: %w", err)
	}
	payments, err := c.sales.ListPayments(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("leer pagos de venta: %w", err)
	}
	profile, err := c.settings.GetBranchProfile(ctx, sale.BranchID)
	if err != nil {
		return nil, fmt.Errorf("leer configuración de sucursal: %w", err)
	}
	printCfg, err := c.settings.GetPrintConfig(ctx, sale.BranchID)
	if err != nil {
		return nil, fmt.Errorf("leer configuración de impresión: %w", err)
	}

	out := saleHeader(sale)
	out.LineItems = toLineResponses(lines)
	out.Payments = toPaymentResponses(payments)
	out.BranchProfile = toBranchProfileResponse(profile)
	out.PrintConfig = toPrintConfigResponse(printCfg)
	return out, nil
}

func saleHeader(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             s.ID,
		Code:           s.Code,
		Total:          s.Total,
		CustomerID:     s.CustomerID,
		CashRegisterID: s.CashRegisterID,
		BranchID:       s.BranchID,
		UserID:         s.UserID,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		LineItems:      []dto.SaleLineItemResponse{},
		Payments:       []dto.SalePaymentResponse{},
	}
}

func toSummary(s *entity.Sale) dto.SaleSummaryResponse {
	return dto.SaleSummaryResponse{
		ID:             s.ID,
		Code:           s.Code,
		Total:          s.Total,
		CustomerID:     s.CustomerID,
		CashRegisterID: s.CashRegisterID,
		UserID:         s.UserID,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}
}

func toLineResponses(lines []*entity.SaleLineItem) []dto.SaleLineItemResponse {
	out := make([]dto.SaleLineItemResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.SaleLineItemResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}

func toPaymentResponses(payments []*entity.SalePayment) []dto.SalePaymentResponse {
	out := make([]dto.SalePaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.SalePaymentResponse{ID: p.ID, PaymentKind: p.PaymentKind, Amount: p.Amount})
	}
	return out
}

func toBranchProfileResponse(p *entity.BranchProfile) *dto.BranchProfileResponse {
	if p == nil {
		return nil
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
	}
}

func toPrintConfigResponse(c *entity.PrintConfig) *dto.PrintConfigResponse {
	if c == nil {
		return nil
	}
	return &dto.PrintConfigResponse{
		PrintMode:     c.PrintMode,
		TicketType:    c.TicketType,
		ShowLogo:      c.ShowLogo,
		ShowTaxID:     c.ShowTaxID,
		FooterMessage: c.FooterMessage,
		PrinterName:   c.PrinterName,
	}
}
