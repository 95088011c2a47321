package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// SiteHandler handles the profile, settings and contact endpoints
type SiteHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(services *service.Services, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		services: services,
		log:      log.With().Str("handler", "site").Logger(),
	}
}

// GetProfile handles GET /api/profile
func (h *SiteHandler) GetProfile(c *gin.Context) {
	profile, err := h.services.Content.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile
func (h *SiteHandler) UpdateProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, "invalid profile body")
		return
	}

	if err := h.services.Content.UpdateProfile(c.Request.Context(), &profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSettings handles GET /api/settings
func (h *SiteHandler) GetSettings(c *gin.Context) {
	settings, err := h.services.Content.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if settings == nil {
		settings = map[string]string{}
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
// Body is a flat object of string values, upserted together.
func (h *SiteHandler) UpdateSettings(c *gin.Context) {
	var settings map[string]string
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "settings must be an object of string values")
		return
	}

	if err := h.services.Content.UpdateSettings(c.Request.Context(), settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SubmitContact handles POST /api/contact
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid contact body")
		return
	}

	if _, err := h.services.Content.SubmitContact(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListContacts handles GET /api/contact
func (h *SiteHandler) ListContacts(c *gin.Context) {
	submissions, err := h.services.Content.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if submissions == nil {
		submissions = []*models.ContactSubmission{}
	}
	c.JSON(http.StatusOK, submissions)
}
