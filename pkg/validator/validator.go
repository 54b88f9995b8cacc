package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError campo que no pasó la validación.
type FieldError struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

var (
	validate = validator.New()
	phoneRe  = regexp.MustCompile(`^[0-9+\-\s]{6,20}$`)
)

func init() {
	// notblank: requerido y distinto de solo espacios.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// phone: dígitos, +, - y espacios, entre 6 y 20 caracteres.
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	// Los montos se validan como número: gt=0, gte=0.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		f, _ := v.Interface().(decimal.Decimal).Float64()
		return f
	}, decimal.Decimal{})
}

// ValidateStruct valida los tags `validate` del struct. Devuelve nil si es válido.
func ValidateStruct(data interface{}) []*FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{{FailedField: "body", Tag: "invalid"}}
	}
	out := make([]*FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}

// Message resume los errores en una línea para ErrorResponse.Message.
func Message(errs []*FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Value != "" {
			parts = append(parts, fmt.Sprintf("%s (%s=%s)", e.FailedField, e.Tag, e.Value))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", e.FailedField, e.Tag))
	}
	return "datos inválidos: " + strings.Join(parts, ", ")
}

// IsUUID reporta si s es un UUID en forma canónica (36 caracteres con guiones).
func IsUUID(s string) bool {
	return validate.Var(s, "required,uuid") == nil
}

// IsPhone reporta si s parece un teléfono (dígitos, +, - y espacios; 6 a 20 caracteres).
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsEmail reporta si s es una dirección de email válida.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
