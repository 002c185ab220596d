package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camacero/api-gateway/internal/auth"
	"camacero/api-gateway/internal/builder"
	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/middleware"
)

// newTestApp assembles the handler set over a seeded in-memory store
// with the gateway's route surface, mirroring the production wiring.
func newTestApp(t *testing.T) (*fiber.App, *ApplicationHandler) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	mem := store.NewMemory()
	sessions := session.New()
	h := NewApplicationHandler(log, mem, auth.NewService(mem, log), sessions, builder.NewManager())

	app := fiber.New()
	app.Post("/api/v1/auth/login", h.LoginCompany)
	app.Post("/api/v1/auth/admin/login", h.LoginAdmin)
	app.Post("/api/v1/auth/logout", h.Logout)
	app.Get("/api/v1/auth/me", h.Me)
	app.Get("/api/v1/empresas", h.ListCompanies)
	app.Get("/api/v1/empresas/:id", h.GetCompany)
	app.Post("/api/v1/admin/empresas", h.CreateCompany)
	app.Patch("/api/v1/admin/empresas/:id", h.UpdateCompany)
	app.Get("/api/v1/portal/perfil", middleware.RequireAuth(sessions, false), h.PortalProfile)
	return app, h
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func responseBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	return nil
}

func TestLoginCompanySuccessOpensSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    "admin@aceriaspaz.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	body := responseBody(t, resp)
	assert.Contains(t, body["message"], "Bienvenido Acerías Paz del Río")

	// The session restores the principal on subsequent requests.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	me := responseBody(t, meResp)
	data, ok := me["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin@aceriaspaz.com", data["email"])
	assert.Equal(t, "admin", data["role"])
}

func TestLoginCompanyInvalidCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    "admin@aceriaspaz.com",
		"password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
}

func TestLoginCompanyPendingAccount(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    "usuario@ternium.com",
		"password": "usuario123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Failed logins never mint a session.
	assert.Nil(t, sessionCookie(resp))

	body := responseBody(t, resp)
	assert.Contains(t, body["message"], "Pendiente")
}

func TestLoginCompanyMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{"email": "admin@aceriaspaz.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := responseBody(t, resp)
	assert.Equal(t, auth.ErrMissingCredentials.Error(), body["message"])
}

func TestLoginAdminLegacyCredential(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/admin/login", fiber.Map{
		"email":    "superadmin@camacero.com",
		"password": "superadmin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, sessionCookie(resp))

	body := responseBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "superadmin", data["role"])
}

func TestLoginAdminRejectsCompanyAccount(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/admin/login", fiber.Map{
		"email":    "admin@aceriaspaz.com",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutDestroysSession(t *testing.T) {
	app, _ := newTestApp(t)

	loginResp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    "admin@aceriaspaz.com",
		"password": "admin123",
	})
	cookie := sessionCookie(loginResp)
	require.NotNil(t, cookie)

	logoutResp := postJSON(t, app, "/api/v1/auth/logout", fiber.Map{}, cookie)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)
	body := responseBody(t, logoutResp)
	assert.Equal(t, "/", body["redirect"])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portal/perfil", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeAnonymous(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
