package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/reports"
)

// ReportHandler reportes de movimientos de stock y de cajas.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockMovements godoc
// @Summary      Reporte de movimientos de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Desde"
// @Param        to          query  string  false  "Hasta"
// @Param        product_id  query  string  false  "Producto"
// @Param        kind        query  string  false  "entrada o salida"
// @Param        limit       query  int     false  "Límite"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {array}   dto.StockMovementReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-movements [get]
func (h *ReportHandler) StockMovements(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, ok := dateRange(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fechas inválidas")
	}
	out, err := h.uc.StockMovements(c.Context(), actor, reports.StockMovementQuery{
		From:      from,
		To:        to,
		ProductID: c.Query("product_id"),
		Kind:      c.Query("kind"),
		Page:      pageFrom(c),
	})
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// CashRegisters godoc
// @Summary      Reporte de cajas
// @Description  Un cajero solo ve sus propias cajas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "Desde"
// @Param        to       query  string  false  "Hasta"
// @Param        user_id  query  string  false  "Usuario"
// @Success      200  {array}  dto.CashRegisterResponse
// @Router       /api/reports/cash-registers [get]
func (h *ReportHandler) CashRegisters(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, ok := dateRange(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fechas inválidas")
	}
	out, err := h.uc.CashRegisters(c.Context(), actor, reports.CashRegisterQuery{From: from, To: to, UserID: c.Query("user_id")})
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// CashRegisterSummary godoc
// @Summary      Conciliación de una caja
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CashRegisterSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/cash-registers/{id}/summary [get]
func (h *ReportHandler) CashRegisterSummary(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.CashRegisterSummary(c.Context(), actor, c.Params("id"))
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas por fechas
// @Description  Un cajero solo ve sus propias ventas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Desde"
// @Param        to           query  string  false  "Hasta"
// @Param        user_id      query  string  false  "Usuario"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        product_id   query  string  false  "Producto"
// @Success      200  {array}   dto.SalesReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, ok := dateRange(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fechas inválidas")
	}
	out, err := h.uc.Sales(c.Context(), actor, reports.SalesQuery{
		From:       from,
		To:         to,
		UserID:     c.Query("user_id"),
		CustomerID: c.Query("customer_id"),
		ProductID:  c.Query("product_id"),
	})
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// SalesSummary godoc
// @Summary      Ventas agrupadas por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "dia, semana o mes"  default(dia)
// @Success      200  {array}   dto.SalesPeriodRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.SalesByPeriod(c.Context(), actor, c.Query("period"))
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// SalesByProduct godoc
// @Summary      Ventas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductSalesRow
// @Router       /api/reports/sales/by-product [get]
func (h *ReportHandler) SalesByProduct(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.SalesByProduct(c.Context(), actor)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}
