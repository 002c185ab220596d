package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// SaveSettingRequest upserts one opaque per-company setting.
type SaveSettingRequest struct {
	Key   string          `json:"key" validate:"required"`
	Value json.RawMessage `json:"value" validate:"required"`
}

// GetSettings returns the caller's settings as a key/value object.
func (h *ApplicationHandler) GetSettings(c *fiber.Ctx) error {
	principal := h.principal(c)
	settings, err := h.Store.GetUserSettings(c.Context(), principal.ID)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not fetch settings")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener los ajustes")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, settings)
}

// SaveSetting upserts one setting for the caller.
func (h *ApplicationHandler) SaveSetting(c *fiber.Ctx) error {
	principal := h.principal(c)

	req := new(SaveSettingRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse setting JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Ajuste inválido",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	if err := h.Store.SaveUserSetting(c.Context(), principal.ID, req.Key, req.Value); err != nil {
		h.Log.WithField("error", err.Error()).Error("could not save setting")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar el ajuste")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Ajuste guardado",
	})
}

// GetGeneratorConfig returns the caller's content-generator connection
// settings, or 404 when it was never configured.
func (h *ApplicationHandler) GetGeneratorConfig(c *fiber.Ctx) error {
	principal := h.principal(c)
	settings, err := h.Store.GetUserSettings(c.Context(), principal.ID)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not fetch generator config")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener los ajustes")
	}

	raw, ok := settings[models.GeneratorConfigKey]
	if !ok {
		return utils.RespondNotFound(c, "Configura tu conexión a Ollama en la página de Ajustes", "/portal/ajustes")
	}
	var cfg models.GeneratorConfig
	if err := json.Unmarshal(raw, &cfg); err != nil || cfg.URL == "" || cfg.Model == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Falta la URL o el modelo de Ollama en los ajustes")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, cfg)
}

// SaveGeneratorConfig validates and stores the content-generator
// connection settings.
func (h *ApplicationHandler) SaveGeneratorConfig(c *fiber.Ctx) error {
	principal := h.principal(c)

	cfg := new(models.GeneratorConfig)
	if err := c.BodyParser(cfg); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse config JSON: %v", err))
	}
	if err := h.Validate.Struct(cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Falta la URL o el modelo de Ollama en los ajustes",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar la configuración")
	}
	if err := h.Store.SaveUserSetting(c.Context(), principal.ID, models.GeneratorConfigKey, raw); err != nil {
		h.Log.WithField("error", err.Error()).Error("could not save generator config")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar la configuración")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Configuración guardada",
	})
}
