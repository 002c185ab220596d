package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/builder"
	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// OpenBuilderRequest starts an editing session, optionally resuming a
// saved template's layout.
type OpenBuilderRequest struct {
	TemplateID string `json:"template_id,omitempty"`
}

// InsertElementRequest drops a palette block onto the canvas.
type InsertElementRequest struct {
	Type     models.ElementKind `json:"type" validate:"required"`
	Position int                `json:"position"`
}

// ReorderRequest moves a canvas block from one position to another.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SelectRequest marks a canvas block as selected.
type SelectRequest struct {
	InstanceID string `json:"instance_id" validate:"required"`
}

// EditContentRequest mutates the selected block's payload.
type EditContentRequest struct {
	Content string `json:"content"`
}

// SaveBuilderTemplateRequest persists the session document as a template.
type SaveBuilderTemplateRequest struct {
	Name       string `json:"name" validate:"required"`
	TemplateID string `json:"template_id,omitempty"`
}

// SaveBuilderCampaignRequest persists the session document as a campaign
// draft.
type SaveBuilderCampaignRequest struct {
	Name string `json:"name" validate:"required"`
}

func builderErrorStatus(err error) int {
	switch {
	case errors.Is(err, builder.ErrSessionNotFound), errors.Is(err, builder.ErrElementNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func (h *ApplicationHandler) builderSession(c *fiber.Ctx) (*builder.Session, error) {
	return h.Builder.Get(c.Params("sid"))
}

// OpenBuilder creates a builder session on an empty canvas, or resumes a
// saved template when template_id is given.
func (h *ApplicationHandler) OpenBuilder(c *fiber.Ctx) error {
	req := new(OpenBuilderRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse builder JSON: %v", err))
		}
	}

	id, session := h.Builder.Create()

	if req.TemplateID != "" {
		template, err := h.Store.GetTemplate(c.Context(), req.TemplateID)
		if err != nil {
			h.Builder.Delete(id)
			if errors.Is(err, store.ErrNotFound) {
				return utils.RespondNotFound(c, "Plantilla no encontrada", "/admin/templates")
			}
			h.Log.WithField("error", err.Error()).Error("could not load template into builder")
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo cargar la plantilla")
		}
		session.LoadLayout(template.Layout)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"session_id": id,
			"layout":     session.Layout(),
		},
	})
}

// BuilderState returns the session's current layout and selection.
func (h *ApplicationHandler) BuilderState(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"layout":   session.Layout(),
		"selected": session.Selected(),
	})
}

// InsertElement splices a new block into the canvas at the requested
// position.
func (h *ApplicationHandler) InsertElement(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}

	req := new(InsertElementRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse element JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Datos de componente inválidos",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	element, err := session.Insert(req.Type, req.Position)
	if err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"element": element,
			"layout":  session.Layout(),
		},
	})
}

// MoveElement reorders the canvas.
func (h *ApplicationHandler) MoveElement(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}

	req := new(ReorderRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse reorder JSON: %v", err))
	}
	if err := session.Reorder(req.From, req.To); err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, session.Layout())
}

// SelectElement sets the session's selected block.
func (h *ApplicationHandler) SelectElement(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}

	req := new(SelectRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse selection JSON: %v", err))
	}
	if err := session.Select(req.InstanceID); err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, session.Selected())
}

// EditSelectedContent mutates the selected block's payload in place.
func (h *ApplicationHandler) EditSelectedContent(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}

	req := new(EditContentRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse content JSON: %v", err))
	}

	element, err := session.EditContent(req.Content)
	if err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, element)
}

// DeleteElement removes a block from the canvas and clears the selection.
func (h *ApplicationHandler) DeleteElement(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}
	if err := session.Delete(c.Params("instanceId")); err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, session.Layout())
}

// SaveBuilderTemplate serializes the session into a template record and
// discards the session.
func (h *ApplicationHandler) SaveBuilderTemplate(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}

	req := new(SaveBuilderTemplateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse save JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": builder.ErrEmptyName.Error(),
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	template, err := session.BuildTemplate(req.TemplateID, req.Name)
	if err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}

	saved, err := h.Store.SaveTemplate(c.Context(), template)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not save builder template")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar la plantilla")
	}

	h.Builder.Delete(c.Params("sid"))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"message":  "✅ Plantilla Guardada. Tu plantilla de email ha sido guardada correctamente",
		"data":     saved,
		"redirect": "/admin/templates",
	})
}

// SaveBuilderCampaign serializes the session into a campaign draft and
// discards the session.
func (h *ApplicationHandler) SaveBuilderCampaign(c *fiber.Ctx) error {
	session, err := h.builderSession(c)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	}

	req := new(SaveBuilderCampaignRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse save JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": builder.ErrEmptyName.Error(),
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	campaign, err := session.BuildCampaign(req.Name)
	if err != nil {
		return utils.RespondWithError(c, builderErrorStatus(err), err.Error())
	}

	created, err := h.Store.CreateCampaign(c.Context(), campaign)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not save builder campaign")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo guardar la campaña")
	}

	h.Builder.Delete(c.Params("sid"))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":   "success",
		"message":  "✅ Campaña Guardada. Tu campaña ha sido guardada como borrador",
		"data":     created,
		"redirect": "/admin/campaigns",
	})
}
