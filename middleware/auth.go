package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"camacero/api-gateway/models"
)

// Session keys. The two flags mark which route family authenticated the
// session; the user record is shared.
const (
	SessionKeyCompanyAuth = "companyAuthenticated"
	SessionKeyAdminAuth   = "superAdminAuthenticated"
	SessionKeyUserData    = "userData"
)

// PrincipalLocal is the fiber.Ctx locals key the gate stores the resolved
// principal under.
const PrincipalLocal = "principal"

// Route targets used by the gate's redirect payloads.
const (
	CompanyLoginPath    = "/login"
	AdminLoginPath      = "/admin/login"
	AdminHomePath       = "/admin"
	PortalDashboardPath = "/portal/dashboard"
)

// CurrentPrincipal restores the authenticated principal from the session
// store, or returns nil when the visitor is anonymous.
func CurrentPrincipal(sessions *session.Store, c *fiber.Ctx) *models.Principal {
	sess, err := sessions.Get(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(SessionKeyUserData).(string)
	if !ok || raw == "" {
		return nil
	}
	var principal models.Principal
	if err := json.Unmarshal([]byte(raw), &principal); err != nil {
		return nil
	}
	return &principal
}

func redirectJSON(c *fiber.Ctx, status int, message, redirect string, preserveFrom bool) error {
	payload := fiber.Map{
		"status":   "error",
		"message":  message,
		"redirect": redirect,
	}
	if preserveFrom {
		payload["from"] = c.OriginalURL()
	}
	return c.Status(status).JSON(payload)
}

// RequireAuth gates a route family on an authenticated session. Anonymous
// visits are sent to the family's login route with the originating
// location preserved for the post-login redirect. On success the resolved
// principal is stored in the request locals for handlers downstream.
func RequireAuth(sessions *session.Store, adminFamily bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := CurrentPrincipal(sessions, c)
		if principal == nil {
			loginPath := CompanyLoginPath
			if adminFamily {
				loginPath = AdminLoginPath
			}
			return redirectJSON(c, fiber.StatusUnauthorized, "Inicia sesión para continuar", loginPath, true)
		}
		c.Locals(PrincipalLocal, principal)
		return c.Next()
	}
}

// RequireRole gates a route on an exact role match. Mismatches are sent to
// the admin login for admin-guarded routes and to the company dashboard
// otherwise, so admin content is never rendered to a lesser principal.
func RequireRole(sessions *session.Store, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := c.Locals(PrincipalLocal).(*models.Principal)
		if principal == nil {
			principal = CurrentPrincipal(sessions, c)
		}
		if principal == nil || principal.Role != role {
			redirect := PortalDashboardPath
			if role == models.RoleSuperAdmin {
				redirect = AdminLoginPath
			}
			return redirectJSON(c, fiber.StatusForbidden, "Acceso denegado", redirect, false)
		}
		c.Locals(PrincipalLocal, principal)
		return c.Next()
	}
}

// RequirePermission gates a route on a capability. The "all" wildcard
// always passes. Routes that demand no specific permission simply don't
// install this middleware.
func RequirePermission(sessions *session.Store, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := c.Locals(PrincipalLocal).(*models.Principal)
		if principal == nil {
			principal = CurrentPrincipal(sessions, c)
		}
		if !principal.HasPermission(permission) {
			redirect := PortalDashboardPath
			if principal.IsSuperAdmin() {
				redirect = AdminHomePath
			}
			return redirectJSON(c, fiber.StatusForbidden, "No tienes permiso para esta acción", redirect, false)
		}
		c.Locals(PrincipalLocal, principal)
		return c.Next()
	}
}
