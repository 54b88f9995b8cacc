package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/sales"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// SaleHandler alta, anulación, consultas y ticket de ventas (protegido).
type SaleHandler struct {
	create *sales.CreateSaleUseCase
	void   *sales.VoidSaleUseCase
	query  *sales.QueryUseCase
	ticket *sales.TicketUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, void *sales.VoidSaleUseCase, query *sales.QueryUseCase, ticket *sales.TicketUseCase) *SaleHandler {
	return &SaleHandler{create: create, void: void, query: query, ticket: ticket}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, registra pagos y el ingreso en caja en una única transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "code, total, cash_register_id, line_items, payments"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	// Carrito y pagos vacíos pasan el dive y los resuelve el caso de uso con su propio código.
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.create.Create(c.Context(), actor, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			return fail(c, fiber.StatusBadRequest, "EMPTY_CART", err.Error())
		case errors.Is(err, domain.ErrNoPayment):
			return fail(c, fiber.StatusBadRequest, "NO_PAYMENT", err.Error())
		case errors.Is(err, domain.ErrPaymentMismatch):
			return fail(c, fiber.StatusBadRequest, "PAYMENT_MISMATCH", err.Error())
		// Fallos dentro de la transacción: la venta entera se revierte.
		case errors.Is(err, domain.ErrRegisterClosed):
			return fail(c, fiber.StatusInternalServerError, "REGISTER_CLOSED", err.Error())
		case errors.Is(err, domain.ErrProductStockMissing):
			return fail(c, fiber.StatusInternalServerError, "PRODUCT_STOCK_MISSING", err.Error())
		case errors.Is(err, domain.ErrInsufficientStock):
			return fail(c, fiber.StatusInternalServerError, "INSUFFICIENT_STOCK", err.Error())
		}
		return commonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Void godoc
// @Summary      Anular venta
// @Description  Devuelve el stock de cada línea. No revierte el ingreso de caja.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/void [put]
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.void.Void(c.Context(), actor, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrSaleNotFoundOrVoided) {
			return fail(c, fiber.StatusNotFound, "SALE_NOT_FOUND_OR_VOIDED", err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "VOID_FAILED", domain.ErrVoidFailed.Error())
	}
	return c.JSON(dto.MessageResponse{Message: "Venta anulada correctamente"})
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.query.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "NOT_FOUND", "venta no encontrada")
		}
		return commonError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas de la sucursal
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, ok := dateRange(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fechas inválidas")
	}
	out, err := h.query.List(c.Context(), actor, from, to, pageFrom(c))
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// ByCustomer godoc
// @Summary      Historial de compras de un cliente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        customer_id  path   string  true   "ID del cliente"
// @Param        from         query  string  false  "Desde"
// @Param        to           query  string  false  "Hasta"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales/customer/{customer_id} [get]
func (h *SaleHandler) ByCustomer(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, ok := dateRange(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fechas inválidas")
	}
	out, err := h.query.ByCustomer(c.Context(), actor, c.Params("customer_id"), from, to, pageFrom(c))
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Ticket godoc
// @Summary      Ticket PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/ticket [get]
func (h *SaleHandler) Ticket(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	pdf, name, err := h.ticket.Render(c.Context(), actor, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "NOT_FOUND", "venta no encontrada")
		}
		return commonError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Send(pdf)
}
