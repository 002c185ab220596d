package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camacero/api-gateway/models"
)

// gateApp wires a fiber app with a login helper route so tests can mint
// a session cookie for an arbitrary principal, posted as the request
// body.
func gateApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()
	sessions := session.New()
	app := fiber.New()
	app.Post("/test/login", func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		require.NoError(t, err)
		sess.Set(SessionKeyUserData, string(c.Body()))
		require.NoError(t, sess.Save())
		return c.SendStatus(fiber.StatusOK)
	})
	return app, sessions
}

func loginAs(t *testing.T, app *fiber.App, principal *models.Principal) *http.Cookie {
	t.Helper()
	raw, err := json.Marshal(principal)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/test/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRequireAuthAnonymousCompanyFamily(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/portal/dashboard", RequireAuth(sessions, false), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/portal/dashboard?tab=perfil", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, CompanyLoginPath, body["redirect"])
	assert.Equal(t, "/portal/dashboard?tab=perfil", body["from"])
}

func TestRequireAuthAnonymousAdminFamily(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/admin/dashboard", RequireAuth(sessions, true), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, AdminLoginPath, body["redirect"])
	assert.Equal(t, "/admin/dashboard", body["from"])
}

func TestRequireAuthRestoresPrincipal(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/portal/dashboard", RequireAuth(sessions, false), func(c *fiber.Ctx) error {
		principal := c.Locals(PrincipalLocal).(*models.Principal)
		return c.JSON(fiber.Map{"email": principal.Email})
	})

	cookie := loginAs(t, app, &models.Principal{
		ID:    "1",
		Email: "admin@aceriaspaz.com",
		Role:  models.RoleAdmin,
	})

	req := httptest.NewRequest(http.MethodGet, "/portal/dashboard", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "admin@aceriaspaz.com", body["email"])
}

func TestRequireRoleRejectsCompanyPrincipal(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/admin/empresas",
		RequireAuth(sessions, true),
		RequireRole(sessions, models.RoleSuperAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	cookie := loginAs(t, app, &models.Principal{
		ID:    "1",
		Email: "admin@aceriaspaz.com",
		Role:  models.RoleAdmin,
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/empresas", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin-guarded routes bounce lesser principals to the admin login,
	// never rendering admin content.
	body := decodeBody(t, resp)
	assert.Equal(t, AdminLoginPath, body["redirect"])
}

func TestRequireRoleAllowsSuperAdmin(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/admin/empresas",
		RequireAuth(sessions, true),
		RequireRole(sessions, models.RoleSuperAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	cookie := loginAs(t, app, &models.Principal{
		ID:          "sa",
		Email:       "superadmin@camacero.com",
		Role:        models.RoleSuperAdmin,
		Permissions: []string{models.PermissionAll},
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/empresas", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermissionExactAndWildcard(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/admin/usuarios",
		RequireAuth(sessions, true),
		RequirePermission(sessions, "manage_users"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	reader := loginAs(t, app, &models.Principal{
		ID:          "4",
		Email:       "operador@sidenal.com",
		Role:        models.RoleOperator,
		Permissions: []string{"read"},
	})
	req := httptest.NewRequest(http.MethodGet, "/admin/usuarios", nil)
	req.AddCookie(reader)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, PortalDashboardPath, body["redirect"])

	wildcard := loginAs(t, app, &models.Principal{
		ID:          "sa",
		Email:       "superadmin@camacero.com",
		Role:        models.RoleSuperAdmin,
		Permissions: []string{models.PermissionAll},
	})
	req = httptest.NewRequest(http.MethodGet, "/admin/usuarios", nil)
	req.AddCookie(wildcard)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCurrentPrincipalGarbageSessionData(t *testing.T) {
	app, sessions := gateApp(t)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if CurrentPrincipal(sessions, c) == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
