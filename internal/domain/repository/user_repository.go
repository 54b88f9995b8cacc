package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// UserRepository puerto de usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// FindByUsername devuelve nil si no existe.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
