package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// CreateCompanyRequest defines the mandatory profile fields before a
// directory entry may be saved.
type CreateCompanyRequest struct {
	Name        string         `json:"name" validate:"required"`
	Email       string         `json:"email" validate:"required,email"`
	Category    string         `json:"category" validate:"required"`
	Size        string         `json:"size" validate:"required"`
	Contact     models.Contact `json:"contact"`
	Description *string        `json:"description,omitempty"`
	Plan        string         `json:"plan,omitempty"`
	Status      string         `json:"status,omitempty"`
	Role        models.Role    `json:"role,omitempty"`
	Website     string         `json:"website,omitempty"`
	Logo        string         `json:"logo,omitempty"`
	FoundedYear int            `json:"founded_year,omitempty"`
	Employees   int            `json:"employees,omitempty"`
	Socials     models.Socials `json:"socials,omitempty"`
}

// ListCompanies serves the public directory listing.
func (h *ApplicationHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.Store.ListCompanies(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list companies")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener las empresas")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, companies)
}

// GetCompany serves a public company profile page with its products.
func (h *ApplicationHandler) GetCompany(c *fiber.Ctx) error {
	id := c.Params("id")
	company, err := h.Store.GetCompany(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Empresa no encontrada", "/")
		}
		h.Log.WithFields(map[string]interface{}{"company_id": id, "error": err.Error()}).Error("could not fetch company")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("No se pudo obtener la empresa %s", id))
	}

	products, err := h.Store.ListProducts(c.Context(), id)
	if err != nil {
		h.Log.WithFields(map[string]interface{}{"company_id": id, "error": err.Error()}).Warn("could not fetch company products")
		products = nil
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"company":  company,
		"products": products,
	})
}

// CreateCompany registers a new directory entry from the back office.
func (h *ApplicationHandler) CreateCompany(c *fiber.Ctx) error {
	req := new(CreateCompanyRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse company JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Datos de empresa inválidos",
			"errors":  utils.FormatValidationErrors(err),
		})
	}
	if !strings.Contains(req.Contact.Email, "@") {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Email de contacto válido requerido")
	}

	company := models.Company{
		Name:        req.Name,
		Email:       req.Email,
		Category:    req.Category,
		Size:        req.Size,
		Contact:     req.Contact,
		Description: req.Description,
		Plan:        req.Plan,
		Status:      req.Status,
		Role:        req.Role,
		Website:     req.Website,
		Logo:        req.Logo,
		FoundedYear: req.FoundedYear,
		Employees:   req.Employees,
		Socials:     req.Socials,
		Permissions: []string{"read", "write"},
	}
	if company.Plan == "" {
		company.Plan = "Gratis"
	}
	if company.Status == "" {
		company.Status = "Pendiente"
	}
	if company.Role == "" {
		company.Role = models.RoleUser
	}

	created, err := h.Store.CreateCompany(c.Context(), company)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not create company")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo crear la empresa")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Empresa creada correctamente",
		"data":    created,
	})
}

// validateProfilePatch rejects a profile save before any storage write
// when a mandatory field is blanked or the contact email is not valid.
func validateProfilePatch(patch map[string]interface{}) error {
	for _, field := range []string{"name", "category", "size"} {
		if val, exists := patch[field]; exists {
			s, ok := val.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return fmt.Errorf("el campo '%s' es obligatorio", field)
			}
		}
	}
	if contactVal, exists := patch["contact"]; exists {
		contact, ok := contactVal.(map[string]interface{})
		if !ok {
			return errors.New("el campo 'contact' debe ser un objeto")
		}
		if emailVal, exists := contact["email"]; exists {
			email, ok := emailVal.(string)
			if !ok || !strings.Contains(email, "@") {
				return errors.New("Email de contacto válido requerido")
			}
		}
	}
	return nil
}

// UpdateCompany merges a partial update into an existing directory entry.
func (h *ApplicationHandler) UpdateCompany(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validateProfilePatch(patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	updated, err := h.Store.UpdateCompany(c.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Empresa no encontrada", "/admin/empresas")
		}
		h.Log.WithFields(map[string]interface{}{"company_id": id, "error": err.Error()}).Error("could not update company")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("No se pudo actualizar la empresa %s", id))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "✅ Perfil Actualizado. Los cambios han sido guardados",
		"data":    updated,
	})
}

// DeleteCompany removes a directory entry. Deletion is best-effort
// against fallback storage when the remote service is unavailable.
func (h *ApplicationHandler) DeleteCompany(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Store.DeleteCompany(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Empresa no encontrada", "/admin/empresas")
		}
		h.Log.WithFields(map[string]interface{}{"company_id": id, "error": err.Error()}).Error("could not delete company")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("No se pudo eliminar la empresa %s", id))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Empresa %s eliminada", id),
	})
}

// userAccount is the back-office view of a company login.
type userAccount struct {
	ID     string      `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	Plan   string      `json:"plan"`
	Status string      `json:"status"`
}

// ListUsers lists company accounts for the back-office user management
// screen.
func (h *ApplicationHandler) ListUsers(c *fiber.Ctx) error {
	companies, err := h.Store.ListCompanies(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list user accounts")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener los usuarios")
	}
	accounts := make([]userAccount, 0, len(companies))
	for _, company := range companies {
		accounts = append(accounts, userAccount{
			ID:     company.ID,
			Email:  company.Email,
			Name:   company.Name,
			Role:   company.Role,
			Plan:   company.Plan,
			Status: company.Status,
		})
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, accounts)
}
