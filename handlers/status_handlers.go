package handlers

import (
	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/config"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// SupabaseStatus reports remote connectivity for the status panel. This
// is the one place where backend absence is surfaced instead of silently
// downgraded.
func (h *ApplicationHandler) SupabaseStatus(c *fiber.Ctx) error {
	if config.SupabaseClient == nil {
		return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
			"connected": false,
			"error":     "Cliente de Supabase no inicializado",
		})
	}

	_, _, err := config.SupabaseClient.From("companies").
		Select("id", "", false).
		Limit(1, "").
		Execute()
	if err != nil {
		return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
			"connected": false,
			"error":     err.Error(),
		})
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"connected": true})
}

// CheckoutSuccess backs the post-checkout landing ("/exito").
func (h *ApplicationHandler) CheckoutSuccess(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message":  "¡Pago completado! Tu plan ha sido activado",
		"redirect": "/portal/dashboard",
	})
}

// AdminDashboard aggregates back-office stats over the directory.
func (h *ApplicationHandler) AdminDashboard(c *fiber.Ctx) error {
	companies, err := h.Store.ListCompanies(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not load dashboard companies")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener las estadísticas")
	}

	byStatus := make(map[string]int)
	for _, company := range companies {
		byStatus[company.Status]++
	}

	campaigns, err := h.Store.ListCampaigns(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Warn("could not load dashboard campaigns")
	}
	sent := 0
	for _, campaign := range campaigns {
		if campaign.Status == models.CampaignSent {
			sent++
		}
	}

	templates, err := h.Store.ListTemplates(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Warn("could not load dashboard templates")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"companies":           len(companies),
		"companies_by_status": byStatus,
		"campaigns":           len(campaigns),
		"campaigns_sent":      sent,
		"templates":           len(templates),
	})
}
