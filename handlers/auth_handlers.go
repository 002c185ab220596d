package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/auth"
	"camacero/api-gateway/middleware"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// LoginRequest carries the credentials of either login form. Only
// presence is validated here; everything else is the auth service's call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginCompany godoc
// @Summary Authenticate a company account
// @Description Validates company credentials (remote first, demo roster as fallback) and opens a portal session.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Session opened"
// @Failure 401 {object} map[string]interface{} "Invalid credentials or inactive account"
// @Router /auth/login [post]
func (h *ApplicationHandler) LoginCompany(c *fiber.Ctx) error {
	req := new(LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse login JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": auth.ErrMissingCredentials.Error(),
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	principal, err := h.Auth.AuthenticateCompany(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, err.Error())
	}

	if err := h.openSession(c, principal, middleware.SessionKeyCompanyAuth); err != nil {
		h.Log.WithField("error", err.Error()).Error("could not persist company session")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo iniciar la sesión")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("✅ Sesión Iniciada. Bienvenido %s", principal.Name),
		"data":    principal,
	})
}

// LoginAdmin authenticates the superadmin back-office account.
func (h *ApplicationHandler) LoginAdmin(c *fiber.Ctx) error {
	req := new(LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse login JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": auth.ErrMissingCredentials.Error(),
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	principal, err := h.Auth.AuthenticateSuperAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, err.Error())
	}

	if err := h.openSession(c, principal, middleware.SessionKeyAdminAuth); err != nil {
		h.Log.WithField("error", err.Error()).Error("could not persist admin session")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo iniciar la sesión")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "👑 Sesión de Administrador. Acceso completo al sistema",
		"data":    principal,
	})
}

// openSession writes the role-specific flag plus the shared current-user
// record. Nothing is written on failed logins; callers return before
// reaching here.
func (h *ApplicationHandler) openSession(c *fiber.Ctx, principal *models.Principal, flag string) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(principal)
	if err != nil {
		return err
	}
	sess.Set(flag, true)
	sess.Set(middleware.SessionKeyUserData, string(raw))
	return sess.Save()
}

// Logout destroys the session and sends the visitor back to the landing
// route.
func (h *ApplicationHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err == nil {
		if destroyErr := sess.Destroy(); destroyErr != nil {
			h.Log.WithField("error", destroyErr.Error()).Warn("could not destroy session")
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"message":  "👋 Sesión Cerrada. Has cerrado sesión correctamente",
		"redirect": "/",
	})
}

// Me returns the current principal, or 401 for anonymous visitors.
func (h *ApplicationHandler) Me(c *fiber.Ctx) error {
	principal := h.principal(c)
	if principal == nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "No hay sesión activa")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, principal)
}

// refreshSessionPrincipal mirrors profile changes into the stored session
// record so the portal reflects them without re-login.
func (h *ApplicationHandler) refreshSessionPrincipal(c *fiber.Ctx, company *models.Company) {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return
	}
	principal := company.Principal()
	if current := h.principal(c); current != nil {
		principal.LoginTime = current.LoginTime
	}
	raw, err := json.Marshal(principal)
	if err != nil {
		return
	}
	sess.Set(middleware.SessionKeyUserData, string(raw))
	if err := sess.Save(); err != nil {
		h.Log.WithField("error", err.Error()).Warn("could not refresh session principal")
	}
}
