package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler handles admin login
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid login body")
		return
	}

	resp, err := h.services.Auth.Login(c.Request.Context(), &req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.log.Warn().Str("username", req.Username).Str("client_ip", c.ClientIP()).Msg("Failed login")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
