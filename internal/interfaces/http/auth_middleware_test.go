package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-backoffice/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testBranchID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "pos-backoffice-test"
	testExpMin    = 60
)

func token(t *testing.T, userID, branchID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, branchID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware + RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	managers := []string{entity.RoleAdmin, entity.RoleSupervisor}
	cases := []struct {
		name   string
		roles  []string
		header string
		status int
		code   string
	}{
		{"admin en ruta de gerencia", managers, token(t, testUserID, testBranchID, entity.RoleAdmin), http.StatusOK, ""},
		{"supervisor en ruta de gerencia", managers, token(t, testUserID, testBranchID, entity.RoleSupervisor), http.StatusOK, ""},
		{"cajero en ruta de gerencia", managers, token(t, testUserID, testBranchID, entity.RoleCajero), http.StatusForbidden, "FORBIDDEN"},
		{"supervisor en ruta solo admin", []string{entity.RoleAdmin}, token(t, testUserID, testBranchID, entity.RoleSupervisor), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", managers, token(t, testUserID, testBranchID, ""), http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", managers, "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto de Bearer", managers, "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", managers, "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/gerencia", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(tc.roles...), func(c *fiber.Ctx) error {
				return c.SendString(apphttp.GetRole(c))
			})
			req := httptest.NewRequest(http.MethodGet, "/gerencia", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				assert.Equal(t, tc.code, errorCode(t, resp))
			}
		})
	}
}

func TestAuthMiddleware_CargaUsuarioSucursalYRol(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"branch_id": apphttp.GetBranchID(c),
			"role":      apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	// El esquema no distingue mayúsculas.
	req.Header.Set("Authorization", "bearer "+token(t, testUserID, testBranchID, entity.RoleCajero)[len("Bearer "):])
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"user_id": testUserID, "branch_id": testBranchID, "role": entity.RoleCajero}, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles y sucursal sobre la API real
// ──────────────────────────────────────────────────────────────────────────────

func TestRutas_PermisosPorRol(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	cajero := bearer(t, cajeroID, entity.RoleCajero)
	super := bearer(t, "user-super", entity.RoleSupervisor)

	for _, path := range []string{
		"/api/reports/sales/summary",
		"/api/reports/sales/by-product",
		"/api/reports/stock-movements",
		"/api/customers/export",
	} {
		assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodGet, path, cajero, nil, nil), "cajero en %s", path)
		assert.Equal(t, http.StatusOK, api.call(t, http.MethodGet, path, super, nil, nil), "supervisor en %s", path)
	}
	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodPut, "/api/settings/system", super, dto.UpdateSystemSettingsRequest{}, nil),
		"solo admin cambia la política de venta")
}

func TestRutas_SucursalSaleDelToken(t *testing.T) {
	api := newAPI(t, entity.SystemSalePolicy{})
	local := bearer(t, cajeroID, entity.RoleCajero)

	var c dto.CustomerResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/customers", local, clienteReq("30111222"), &c))
	assert.Equal(t, sucursal, c.BranchID)

	ajeno := token(t, "user-ajeno", "suc-2", entity.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/customers/"+c.ID, ajeno, nil, nil))
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/customers/"+c.ID+"/account", ajeno, nil, nil))

	var page dto.CustomerListResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/customers", ajeno, nil, &page))
	assert.Empty(t, page.Data)

	sinSucursal := token(t, "user-x", "", entity.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, api.call(t, http.MethodGet, "/api/customers", sinSucursal, nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// WebSocketAuth
// ──────────────────────────────────────────────────────────────────────────────

func TestWebSocketAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/ws", apphttp.WebSocketAuth(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetBranchID(c))
	})
	tok := token(t, testUserID, testBranchID, entity.RoleCajero)[len("Bearer "):]

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws?token="+tok, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, testBranchID, string(body), "los eventos se filtran por la sucursal del token")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}
