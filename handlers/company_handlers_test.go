package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patchJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestListCompaniesServesSeededDirectory(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/empresas", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := responseBody(t, resp)
	companies, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, companies, 5)
}

func TestGetCompanyIncludesProducts(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/empresas/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := responseBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	company, ok := data["company"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Acerías Paz del Río", company["name"])
	products, ok := data["products"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, products)
}

func TestGetCompanyNotFoundRedirect(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/empresas/no-existe", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := responseBody(t, resp)
	assert.Equal(t, "Empresa no encontrada", body["message"])
	assert.Equal(t, "/", body["redirect"])
}

func TestCreateCompanyAppliesDefaults(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/admin/empresas", fiber.Map{
		"name":     "Metalmecánica Andes",
		"email":    "contacto@andes.com",
		"category": "Metalmecánica",
		"size":     "Mediana",
		"contact":  fiber.Map{"email": "ventas@andes.com"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := responseBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Gratis", data["plan"])
	assert.Equal(t, "Pendiente", data["status"])
	assert.Equal(t, "user", data["role"])
	assert.ElementsMatch(t, []interface{}{"read", "write"}, data["permissions"])
}

func TestCreateCompanyRejectsBadContactEmail(t *testing.T) {
	app, h := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/admin/empresas", fiber.Map{
		"name":     "Sin Contacto",
		"email":    "cuenta@ejemplo.com",
		"category": "Servicios",
		"size":     "Pequeña",
		"contact":  fiber.Map{"email": "sin-arroba"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := responseBody(t, resp)
	assert.Equal(t, "Email de contacto válido requerido", body["message"])

	companies, err := h.Store.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Len(t, companies, 5)
}

func TestCreateCompanyMissingMandatoryFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/admin/empresas", fiber.Map{
		"name":  "Sin Categoría",
		"email": "cuenta@ejemplo.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateCompanyRejectsInvalidPatchBeforeWrite(t *testing.T) {
	app, h := newTestApp(t)

	before, err := h.Store.GetCompany(context.Background(), "1")
	require.NoError(t, err)

	resp := patchJSON(t, app, "/api/v1/admin/empresas/1", fiber.Map{
		"name": "Nombre Válido",
		"contact": fiber.Map{
			"email": "sin-arroba",
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing reached storage; the record is byte for byte the one we
	// started with.
	after, err := h.Store.GetCompany(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Contact.Email, after.Contact.Email)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestUpdateCompanyRejectsBlankedMandatoryField(t *testing.T) {
	app, _ := newTestApp(t)

	resp := patchJSON(t, app, "/api/v1/admin/empresas/1", fiber.Map{"name": "   "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := responseBody(t, resp)
	assert.Contains(t, body["message"], "name")
}

func TestUpdateCompanyMergesPartialPatch(t *testing.T) {
	app, _ := newTestApp(t)

	resp := patchJSON(t, app, "/api/v1/admin/empresas/2", fiber.Map{
		"plan": "Premium",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := responseBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Premium", data["plan"])
	assert.Equal(t, "Gerdau Diaco", data["name"])
}

func TestUpdateCompanyNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := patchJSON(t, app, "/api/v1/admin/empresas/no-existe", fiber.Map{"plan": "Premium"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := responseBody(t, resp)
	assert.Equal(t, "/admin/empresas", body["redirect"])
}
