package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// TaxonomyHandler handles category and tag endpoints
type TaxonomyHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(services *service.Services, log zerolog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		services: services,
		log:      log.With().Str("handler", "taxonomy").Logger(),
	}
}

// ListCategories handles GET /api/categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.services.Content.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		badRequest(c, "invalid category body")
		return
	}

	id, err := h.services.Content.CreateCategory(c.Request.Context(), &category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteCategory handles DELETE /api/categories/:slug
// Linked articles survive; only the links go.
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.services.Content.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListTags handles GET /api/tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.services.Content.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if tags == nil {
		tags = []*models.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTag handles POST /api/tags
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var tag models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		badRequest(c, "invalid tag body")
		return
	}

	id, err := h.services.Content.CreateTag(c.Request.Context(), &tag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteTag handles DELETE /api/tags/:slug
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	if err := h.services.Content.DeleteTag(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
