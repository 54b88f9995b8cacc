package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleCajero     = "cajero"
)

// User representa un usuario del sistema (pertenece a una sucursal).
type User struct {
	ID           string
	BranchID     string
	Username     string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, supervisor, cajero
	CreatedAt    time.Time
}

// Actor identidad autenticada que ejecuta una operación.
// La sucursal siempre proviene del token, nunca del cuerpo de la petición.
type Actor struct {
	UserID   string
	BranchID string
	Role     string
}
