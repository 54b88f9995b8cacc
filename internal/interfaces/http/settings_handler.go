package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/settings"
)

// SettingsHandler configuración del sistema, de impresión y de la sucursal.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// System godoc
// @Summary      Configuración de ventas
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SystemSettingsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/settings/system [get]
func (h *SettingsHandler) System(c *fiber.Ctx) error {
	if _, ok := actorFrom(c); !ok {
		return unauthorized(c)
	}
	out, err := h.uc.System(c.Context())
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// UpdateSystem godoc
// @Summary      Actualizar configuración de ventas
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSystemSettingsRequest  true  "políticas de venta"
// @Success      200   {object}  dto.SystemSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/system [put]
func (h *SettingsHandler) UpdateSystem(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateSystemSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSystem(c.Context(), actor, in)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Print godoc
// @Summary      Configuración de impresión de la sucursal
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PrintConfigResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/print [get]
func (h *SettingsHandler) Print(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Print(c.Context(), actor)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}

// Branch godoc
// @Summary      Datos de la sucursal
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BranchProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/branch [get]
func (h *SettingsHandler) Branch(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Branch(c.Context(), actor)
	if err != nil {
		return commonError(c, err)
	}
	return c.JSON(out)
}
