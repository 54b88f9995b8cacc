package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// TicketUseCase genera el ticket PDF de una venta.
type TicketUseCase struct {
	queries  *QueryUseCase
	settings repository.SettingsRepository
	renderer TicketRenderer
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(queries *QueryUseCase, settings repository.SettingsRepository, renderer TicketRenderer) *TicketUseCase {
	return &TicketUseCase{queries: queries, settings: settings, renderer: renderer}
}

// Render devuelve el PDF y un nombre de archivo sugerido. ErrNotFound si la venta no es de la sucursal.
func (uc *TicketUseCase) Render(ctx context.Context, actor entity.Actor, saleID string) ([]byte, string, error) {
	sale, err := uc.queries.Get(ctx, actor, saleID)
	if err != nil {
		return nil, "", err
	}
	currency := "$"
	policy, err := uc.settings.GetSalePolicy(ctx)
	if err != nil {
		return nil, "", err
	}
	if policy != nil && policy.CurrencySymbol != "" {
		currency = policy.CurrencySymbol
	}
	pdf, err := uc.renderer.RenderSaleTicket(sale, currency)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("ticket-%s.pdf", sale.Code), nil
}
