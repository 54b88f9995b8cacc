package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/inventory"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// StockHandler ajustes manuales y consultas de stock por sucursal.
type StockHandler struct {
	adjust *inventory.AdjustStockUseCase
	query  *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjust *inventory.AdjustStockUseCase, query *inventory.StockQueryUseCase) *StockHandler {
	return &StockHandler{adjust: adjust, query: query}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "product_id, quantity, kind (entrada/salida), description"
// @Success      200   {object}  dto.StockAdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.adjust.Adjust(c.Context(), actor, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			return fail(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "stock insuficiente para la salida")
		case errors.Is(err, domain.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "NOT_FOUND", "producto sin stock en la sucursal")
		}
		return commonError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Stock de la sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.query.List(c.Context(), actor)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{product_id} [get]
func (h *StockHandler) GetByProduct(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.query.Get(c.Context(), actor, c.Params("product_id"))
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Low godoc
// @Summary      Productos con stock bajo
// @Description  Umbral: default_min_stock de la configuración, o 5 si no está definido.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) Low(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.query.Low(c.Context(), actor)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}
