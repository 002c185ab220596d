package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// SaveTemplateRequest persists a layout as a named template directly,
// without going through a builder session.
type SaveTemplateRequest struct {
	Name   string           `json:"name" validate:"required"`
	Layout []models.Element `json:"layout"`
}

// ListTemplates lists the saved email templates.
func (h *ApplicationHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.Store.ListTemplates(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list templates")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener las plantillas")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, templates)
}

// GetTemplate returns one saved template with its layout.
func (h *ApplicationHandler) GetTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	template, err := h.Store.GetTemplate(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Plantilla no encontrada", "/admin/templates")
		}
		h.Log.WithFields(map[string]interface{}{"template_id": id, "error": err.Error()}).Error("could not fetch template")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("No se pudo obtener la plantilla %s", id))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, template)
}

// SaveTemplate creates or overwrites a template record. The thumbnail is
// derived from the first image block, like the builder does.
func (h *ApplicationHandler) SaveTemplate(c *fiber.Ctx) error {
	req := new(SaveTemplateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse template JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "El nombre de la plantilla es obligatorio",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	thumbnail := models.TemplatePlaceholderThumbnail
	for _, el := range req.Layout {
		if el.Type == models.ElementImage {
			thumbnail = el.Content
			break
		}
	}

	saved, err := h.Store.SaveTemplate(c.Context(), models.Template{
		ID:        c.Params("id"), // empty on POST, set on PUT /:id
		Name:      req.Name,
		Layout:    req.Layout,
		Thumbnail: thumbnail,
	})
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not save template")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar la plantilla")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "✅ Plantilla Guardada. Tu plantilla de email ha sido guardada correctamente",
		"data":    saved,
	})
}

// DeleteTemplate removes a saved template.
func (h *ApplicationHandler) DeleteTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Store.DeleteTemplate(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Plantilla no encontrada", "/admin/templates")
		}
		h.Log.WithFields(map[string]interface{}{"template_id": id, "error": err.Error()}).Error("could not delete template")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("No se pudo eliminar la plantilla %s", id))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Plantilla eliminada",
	})
}
