package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testBranchID = "00000000-0000-0000-0000-000000000002"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, testBranchID, "supervisor", "pos-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testBranchID, claims.BranchID)
	assert.Equal(t, "supervisor", claims.Role)
	assert.Equal(t, "pos-test", claims.Issuer)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, testBranchID, "admin", "pos-test", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, testBranchID, "admin", "pos-test", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_SinSucursal_RetornaError(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, "", "admin", "pos-test", 60)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err, "un token sin sucursal no sirve para acotar operaciones")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", testUserID, testBranchID, "admin", "pos-test", 60)
	assert.Error(t, err)
}
