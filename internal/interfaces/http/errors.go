package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido")
}

func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

// validate corre los tags `validate`; si falla ya escribió la respuesta 400 y devuelve false.
func validate(c *fiber.Ctx, in any) (bool, error) {
	if errs := validator.ValidateStruct(in); errs != nil {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", validator.Message(errs))
	}
	return true, nil
}

// commonError mapea los errores compartidos por todos los handlers.
func commonError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrPolicyMissing):
		return fail(c, fiber.StatusInternalServerError, "POLICY_MISSING", err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

// dateRange lee ?from&to como fecha (2006-01-02) o RFC3339. Una fecha sin hora en "to" cubre el día completo.
func dateRange(c *fiber.Ctx) (from, to *time.Time, ok bool) {
	parse := func(s string, endOfDay bool) (*time.Time, bool) {
		if s == "" {
			return nil, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t, true
		}
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, false
		}
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}
	if from, ok = parse(c.Query("from"), false); !ok {
		return nil, nil, false
	}
	if to, ok = parse(c.Query("to"), true); !ok {
		return nil, nil, false
	}
	return from, to, true
}

func pageFrom(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
}
