package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"

	"camacero/api-gateway/internal/auth"
	"camacero/api-gateway/internal/builder"
	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/middleware"
	"camacero/api-gateway/models"
)

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Log      *logrus.Logger
	Store    store.Store
	Auth     *auth.Service
	Sessions *session.Store
	Builder  *builder.Manager
	Validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(log *logrus.Logger, st store.Store, authSvc *auth.Service, sessions *session.Store, builderMgr *builder.Manager) *ApplicationHandler {
	return &ApplicationHandler{
		Log:      log,
		Store:    st,
		Auth:     authSvc,
		Sessions: sessions,
		Builder:  builderMgr,
		Validate: validator.New(),
	}
}

// principal returns the authenticated principal for the request, as
// resolved by the authorization gate.
func (h *ApplicationHandler) principal(c *fiber.Ctx) *models.Principal {
	if p, ok := c.Locals(middleware.PrincipalLocal).(*models.Principal); ok {
		return p
	}
	return middleware.CurrentPrincipal(h.Sessions, c)
}
