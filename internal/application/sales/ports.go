package sales

import "github.com/jhoicas/pos-backoffice/internal/application/dto"

// TicketRenderer genera la representación imprimible (PDF) de una venta ya compuesta.
type TicketRenderer interface {
	RenderSaleTicket(sale *dto.SaleResponse, currency string) ([]byte, error)
}
