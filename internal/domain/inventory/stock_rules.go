package inventory

import "github.com/jhoicas/pos-backoffice/internal/domain"

// ApplyDelta calcula la nueva cantidad en stock (servicio de dominio).
// Un descuento que deja el stock por debajo de cero devuelve ErrInsufficientStock;
// el stock almacenado nunca es negativo.
func ApplyDelta(onHand, delta int) (int, error) {
	next := onHand + delta
	if next < 0 {
		return onHand, domain.ErrInsufficientStock
	}
	return next, nil
}

// Covers indica si el stock disponible alcanza para la cantidad pedida.
func Covers(onHand, requested int) bool {
	return onHand >= requested
}
