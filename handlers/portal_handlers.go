package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// PortalDashboard summarizes the authenticated company's presence in the
// directory.
func (h *ApplicationHandler) PortalDashboard(c *fiber.Ctx) error {
	principal := h.principal(c)

	products, err := h.Store.ListProducts(c.Context(), principal.ID)
	if err != nil {
		h.Log.WithField("error", err.Error()).Warn("could not count portal products")
	}
	articles, err := h.Store.ListArticles(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Warn("could not count portal articles")
	}
	ownArticles := 0
	for _, article := range articles {
		if article.CompanyID == principal.ID {
			ownArticles++
		}
	}

	completeness := 0
	company, err := h.Store.GetCompany(c.Context(), principal.ID)
	if err == nil {
		completeness = profileCompleteness(company)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"company":              principal.Name,
		"plan":                 principal.Plan,
		"products":             len(products),
		"articles":             ownArticles,
		"profile_completeness": completeness,
	})
}

// PortalProfile returns the authenticated company's own profile record.
func (h *ApplicationHandler) PortalProfile(c *fiber.Ctx) error {
	principal := h.principal(c)
	company, err := h.Store.GetCompany(c.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Empresa no encontrada", "/portal/dashboard")
		}
		h.Log.WithField("error", err.Error()).Error("could not fetch portal profile")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo obtener el perfil")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, company)
}

// UpdatePortalProfile merges profile edits from the portal form and
// mirrors them into the session record so the shell reflects the change
// immediately.
func (h *ApplicationHandler) UpdatePortalProfile(c *fiber.Ctx) error {
	principal := h.principal(c)

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	// Portal users edit their own profile only; account fields stay
	// back-office territory.
	delete(patch, "role")
	delete(patch, "permissions")
	delete(patch, "plan")
	delete(patch, "status")

	if err := validateProfilePatch(patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	updated, err := h.Store.UpdateCompany(c.Context(), principal.ID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Empresa no encontrada", "/portal/dashboard")
		}
		h.Log.WithField("error", err.Error()).Error("could not update portal profile")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo actualizar el perfil")
	}

	h.refreshSessionPrincipal(c, updated)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "✅ Perfil Actualizado. Los cambios han sido guardados",
		"data":    updated,
	})
}

// profileCompleteness scores how much of the directory profile is filled
// in, as a percentage.
func profileCompleteness(company *models.Company) int {
	fields := []bool{
		company.Name != "",
		company.Description != nil && *company.Description != "",
		company.Category != "",
		company.Size != "",
		company.FoundedYear > 0,
		company.Employees > 0,
		company.Website != "",
		company.Logo != "",
		len(company.Gallery) > 0,
		company.Contact.Email != "",
		company.Contact.Phone != "",
		company.Contact.Address != "",
	}
	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(fields)
}
