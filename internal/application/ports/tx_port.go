package ports

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Nunca deja efectos parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
