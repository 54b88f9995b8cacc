package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/customers"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// CustomerHandler clientes y cuentas corrientes.
type CustomerHandler struct {
	uc *customers.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func customerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, customers.ErrDocumentTaken):
		return fail(c, fiber.StatusConflict, "DOCUMENT_EXISTS", "el documento ya existe en la sucursal")
	case errors.Is(err, domain.ErrCustomerHasAccount):
		return fail(c, fiber.StatusConflict, "HAS_ACCOUNT", err.Error())
	case errors.Is(err, domain.ErrInvalidAccountKind):
		return fail(c, fiber.StatusBadRequest, "INVALID_ACCOUNT_KIND", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "cliente no encontrado")
	}
	return commonError(c, err)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return customerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Search godoc
// @Summary      Buscar clientes
// @Description  Busca por nombre, apellido, documento o teléfono.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Texto a buscar"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	page := pageFrom(c)
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.Search(c.Context(), actor, c.Query("q"), page)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar clientes a CSV
// @Tags         customers
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/customers/export [get]
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), actor, &buf); err != nil {
		return commonError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="clientes.csv"`)
	return c.Send(buf.Bytes())
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return customerError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return customerError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  No se puede eliminar un cliente con movimientos en cuenta corriente.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return customerError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Cliente eliminado"})
}

// RecordMovement godoc
// @Summary      Registrar movimiento de cuenta corriente
// @Description  venta suma deuda, pago la descuenta, ajuste admite cualquier signo.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.AccountMovementRequest  true  "kind, amount, reference, detail, sale_id"
// @Success      201   {object}  dto.AccountMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/account [post]
func (h *CustomerHandler) RecordMovement(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.AccountMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordMovement(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return customerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Statement godoc
// @Summary      Cuenta corriente del cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.AccountStatementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/account [get]
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Statement(c.Context(), actor, c.Params("id"))
	if err != nil {
		return customerError(c, err)
	}
	return c.JSON(out)
}
