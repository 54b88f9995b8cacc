package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrPolicyMissing = errors.New("configuración del sistema no encontrada")

	// Venta
	ErrEmptyCart            = errors.New("la venta debe tener al menos un producto")
	ErrNoPayment            = errors.New("la venta debe tener al menos un pago")
	ErrPaymentMismatch      = errors.New("el total de los pagos no coincide con el total de la venta")
	ErrRegisterClosed       = errors.New("la caja no existe o está cerrada")
	ErrProductStockMissing  = errors.New("producto sin stock en sucursal")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrSaleNotFoundOrVoided = errors.New("venta no encontrada o ya anulada")
	ErrVoidFailed           = errors.New("error al anular la venta")

	// Caja
	ErrAlreadyOpen         = errors.New("ya existe una caja abierta para este usuario")
	ErrInvalidShift        = errors.New("turno inválido")
	ErrSessionNotOpen      = errors.New("caja no existe o está cerrada")
	ErrInvalidMovementKind = errors.New("tipo de movimiento inválido")

	// Gastos
	ErrExpenseLocked = errors.New("no se puede modificar el gasto: la caja está cerrada o no pertenece al usuario")

	// Clientes
	ErrCustomerHasAccount = errors.New("el cliente tiene movimientos en cuenta corriente")
	ErrInvalidAccountKind = errors.New("tipo de movimiento de cuenta corriente inválido")
)
