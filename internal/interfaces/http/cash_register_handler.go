package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/cashregister"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// CashRegisterHandler ciclo de vida de la caja (protegido).
type CashRegisterHandler struct {
	uc *cashregister.UseCase
}

// NewCashRegisterHandler construye el handler.
func NewCashRegisterHandler(uc *cashregister.UseCase) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

func cashError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyOpen):
		return fail(c, fiber.StatusBadRequest, "ALREADY_OPEN", err.Error())
	case errors.Is(err, domain.ErrInvalidShift):
		return fail(c, fiber.StatusBadRequest, "INVALID_SHIFT", err.Error())
	case errors.Is(err, domain.ErrSessionNotOpen):
		return fail(c, fiber.StatusBadRequest, "SESSION_NOT_OPEN", err.Error())
	case errors.Is(err, domain.ErrInvalidMovementKind):
		return fail(c, fiber.StatusBadRequest, "INVALID_MOVEMENT_KIND", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "caja no encontrada")
	}
	return commonError(c, err)
}

// Open godoc
// @Summary      Abrir caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashRegisterRequest  true  "shift (Mañana/Tarde/Noche), opening_amount"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/open [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.OpenCashRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Open(c.Context(), actor, in)
	if err != nil {
		return cashError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordMovement godoc
// @Summary      Registrar movimiento de caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "cash_register_id, kind, amount, description"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/movements [post]
func (h *CashRegisterHandler) RecordMovement(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordMovement(c.Context(), actor, in)
	if err != nil {
		return cashError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la caja"
// @Param        body  body  dto.CloseCashRegisterRequest  true  "closing_amount, reported_cash"
// @Success      200   {object}  dto.CloseCashRegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/close [put]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CloseCashRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Close(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return cashError(c, err)
	}
	return c.JSON(out)
}

// OpenStatus godoc
// @Summary      Caja abierta del usuario
// @Description  Devuelve la caja abierta; si no hay y la configuración permite vender sin caja, caja=null con mensaje.
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OpenCashRegisterStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/open [get]
func (h *CashRegisterHandler) OpenStatus(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.OpenStatus(c.Context(), actor)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "NOT_FOUND", "No hay caja abierta")
		}
		return cashError(c, err)
	}
	return c.JSON(out)
}

// LastClosed godoc
// @Summary      Última caja cerrada de la sucursal
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashRegisterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/last-closed [get]
func (h *CashRegisterHandler) LastClosed(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.LastClosed(c.Context(), actor)
	if err != nil {
		return cashError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "No hay cajas cerradas")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cajas
// @Description  Un cajero ve solo sus cajas; admin y supervisor pueden filtrar por user_id.
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Success      200  {array}  dto.CashRegisterResponse
// @Router       /api/cash-registers [get]
func (h *CashRegisterHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Context(), actor, c.Query("user_id"))
	if err != nil {
		return cashError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de una caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {array}   dto.CashMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/movements [get]
func (h *CashRegisterHandler) Movements(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Movements(c.Context(), actor, c.Params("id"))
	if err != nil {
		return cashError(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Saldo calculado de una caja
// @Tags         cash-registers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la caja"
// @Success      200  {object}  dto.CashBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-registers/{id}/balance [get]
func (h *CashRegisterHandler) Balance(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Balance(c.Context(), actor, c.Params("id"))
	if err != nil {
		return cashError(c, err)
	}
	return c.JSON(out)
}
