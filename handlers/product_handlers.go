package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// CreateProductRequest defines a new portal service/product entry.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// ListPortalProducts lists the authenticated company's own services.
func (h *ApplicationHandler) ListPortalProducts(c *fiber.Ctx) error {
	principal := h.principal(c)
	products, err := h.Store.ListProducts(c.Context(), principal.ID)
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list products")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener los servicios")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, products)
}

// CreatePortalProduct adds a service to the authenticated company's
// profile.
func (h *ApplicationHandler) CreatePortalProduct(c *fiber.Ctx) error {
	principal := h.principal(c)

	req := new(CreateProductRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse product JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Datos de servicio inválidos",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	created, err := h.Store.CreateProduct(c.Context(), models.Product{
		CompanyID:   principal.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not create product")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo crear el servicio")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Servicio creado correctamente",
		"data":    created,
	})
}

// ownedProduct resolves a product id and checks it belongs to the caller.
func (h *ApplicationHandler) ownedProduct(c *fiber.Ctx, id string) (*models.Product, error) {
	principal := h.principal(c)
	products, err := h.Store.ListProducts(c.Context(), principal.ID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// UpdatePortalProduct merges edits into one of the caller's services.
func (h *ApplicationHandler) UpdatePortalProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.ownedProduct(c, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Servicio no encontrado", "/portal/servicios")
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo obtener el servicio")
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	updated, err := h.Store.UpdateProduct(c.Context(), id, patch)
	if err != nil {
		h.Log.WithFields(map[string]interface{}{"product_id": id, "error": err.Error()}).Error("could not update product")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo actualizar el servicio")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Servicio actualizado correctamente",
		"data":    updated,
	})
}

// DeletePortalProduct removes one of the caller's services.
func (h *ApplicationHandler) DeletePortalProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.ownedProduct(c, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Servicio no encontrado", "/portal/servicios")
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo obtener el servicio")
	}

	if err := h.Store.DeleteProduct(c.Context(), id); err != nil {
		h.Log.WithFields(map[string]interface{}{"product_id": id, "error": err.Error()}).Error("could not delete product")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo eliminar el servicio")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Servicio eliminado",
	})
}
