// Package cashregister contiene las reglas puras de la sesión de caja:
// normalización de turno y saldo como pliegue del libro de movimientos.
package cashregister

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// canonicalShifts clave plegada (sin acentos, minúsculas) -> etiqueta persistida.
var canonicalShifts = map[string]string{
	"manana": entity.ShiftMorning,
	"tarde":  entity.ShiftAfternoon,
	"noche":  entity.ShiftNight,
}

// NormalizeShift normaliza la etiqueta de turno (NFC, trim, minúsculas, sin diacríticos)
// y la mapea a una de las tres etiquetas canónicas. Devuelve ErrInvalidShift si no coincide.
func NormalizeShift(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(norm.NFC.String(raw)))
	if s == "" {
		return "", domain.ErrInvalidShift
	}
	folded, _, err := transform.String(foldDiacritics(), s)
	if err != nil {
		return "", domain.ErrInvalidShift
	}
	label, ok := canonicalShifts[folded]
	if !ok {
		return "", domain.ErrInvalidShift
	}
	return label, nil
}

// foldDiacritics se construye por llamada: transform.Chain no es seguro para uso concurrente.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
