package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/auth"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/infrastructure/memstore"
	pkgjwt "github.com/jhoicas/pos-backoffice/pkg/jwt"
)

const secret = "test-secret"

var admin = entity.Actor{UserID: "adm", BranchID: "suc-1", Role: entity.RoleAdmin}

func newAuth() *auth.AuthUseCase {
	store := memstore.New()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestRegisterYLogin_TokenLlevaSucursalYRol(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, admin, dto.RegisterRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "suc-1", u.BranchID, "sin sucursal usa la del admin")
	assert.Equal(t, entity.RoleCajero, u.Role, "rol por defecto")
	assert.Equal(t, "caja1", u.Name)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "suc-1", claims.BranchID)
	assert.Equal(t, entity.RoleCajero, claims.Role)
}

func TestRegister_UsuarioDuplicado(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, admin, dto.RegisterRequest{Username: "sup", Password: "secreto123", Role: "supervisor", BranchID: "suc-2"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, admin, dto.RegisterRequest{Username: "sup", Password: "otro12345"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, admin, dto.RegisterRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "no se revela si el usuario existe")
}
