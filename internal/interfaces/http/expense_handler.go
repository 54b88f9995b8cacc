package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/expenses"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// ExpenseHandler gastos pagados desde la caja abierta.
type ExpenseHandler struct {
	uc *expenses.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expenses.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

func expenseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotOpen):
		return fail(c, fiber.StatusBadRequest, "SESSION_NOT_OPEN", err.Error())
	case errors.Is(err, domain.ErrExpenseLocked):
		return fail(c, fiber.StatusBadRequest, "EXPENSE_LOCKED", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "gasto no encontrado")
	}
	return commonError(c, err)
}

// Create godoc
// @Summary      Registrar gasto
// @Description  Requiere caja abierta; registra un egreso en ella.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "category, description, amount"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return expenseError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Desde"
// @Param        to        query  string  false  "Hasta"
// @Param        category  query  string  false  "Categoría"
// @Success      200  {array}   dto.ExpenseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, ok := dateRange(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fechas inválidas")
	}
	out, err := h.uc.List(c.Context(), actor, expenses.Query{From: from, To: to, Category: c.Query("category")})
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar gasto
// @Description  Solo mientras la caja del gasto siga abierta y sea del usuario. La diferencia se asienta en la caja.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.ExpenseRequest  true  "Datos del gasto"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return expenseError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Description  Devuelve el monto a la caja con un ingreso.
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return expenseError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Gasto eliminado"})
}
