package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// CreateCampaignRequest defines a new campaign draft.
type CreateCampaignRequest struct {
	Name   string           `json:"name" validate:"required"`
	Layout []models.Element `json:"layout,omitempty"`
}

// ListCampaigns lists the marketing campaigns with their reporting
// figures.
func (h *ApplicationHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.Store.ListCampaigns(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list campaigns")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener las campañas")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, campaigns)
}

// CreateCampaign stores a new campaign as a draft. Sending is out of
// scope for the gateway.
func (h *ApplicationHandler) CreateCampaign(c *fiber.Ctx) error {
	req := new(CreateCampaignRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse campaign JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "El nombre de la campaña es obligatorio",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	created, err := h.Store.CreateCampaign(c.Context(), models.Campaign{
		Name:   req.Name,
		Status: models.CampaignDraft,
		Layout: req.Layout,
	})
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not create campaign")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar la campaña")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "✅ Campaña Guardada. Tu campaña ha sido guardada como borrador",
		"data":    created,
	})
}
