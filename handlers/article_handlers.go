package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
	"camacero/api-gateway/utils"
)

// ListArticles serves the public news feed, newest first.
func (h *ApplicationHandler) ListArticles(c *fiber.Ctx) error {
	articles, err := h.Store.ListArticles(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list articles")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener las noticias")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, articles)
}

// GetArticle serves one news entry; unknown ids get the dedicated
// not-found message with a return link.
func (h *ApplicationHandler) GetArticle(c *fiber.Ctx) error {
	id := c.Params("id")
	article, err := h.Store.GetArticle(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondNotFound(c, "Noticia no encontrada", "/")
		}
		h.Log.WithFields(map[string]interface{}{"article_id": id, "error": err.Error()}).Error("could not fetch article")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudo obtener la noticia")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, article)
}

// ListPortalArticles lists the news entries attributed to the
// authenticated company.
func (h *ApplicationHandler) ListPortalArticles(c *fiber.Ctx) error {
	principal := h.principal(c)
	articles, err := h.Store.ListArticles(c.Context())
	if err != nil {
		h.Log.WithField("error", err.Error()).Error("could not list portal articles")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "No se pudieron obtener las noticias")
	}
	own := make([]models.Article, 0)
	for _, article := range articles {
		if article.CompanyID == principal.ID {
			own = append(own, article)
		}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, own)
}
