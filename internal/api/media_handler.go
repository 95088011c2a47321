package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// MediaHandler handles the media library endpoints
type MediaHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(services *service.Services, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		services: services,
		log:      log.With().Str("handler", "media").Logger(),
	}
}

// List handles GET /api/media
func (h *MediaHandler) List(c *gin.Context) {
	media, err := h.services.Content.ListMedia(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if media == nil {
		media = []*models.Media{}
	}
	c.JSON(http.StatusOK, media)
}

// Create handles POST /api/media
// Only the reference is stored; the file itself lives elsewhere.
func (h *MediaHandler) Create(c *gin.Context) {
	var media models.Media
	if err := c.ShouldBindJSON(&media); err != nil {
		badRequest(c, "invalid media body")
		return
	}

	id, err := h.services.Content.CreateMedia(c.Request.Context(), &media)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete handles DELETE /api/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "id must be a positive integer")
		return
	}

	if err := h.services.Content.DeleteMedia(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
