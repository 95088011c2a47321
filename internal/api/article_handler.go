package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /api/articles?category=...&q=...
// Newest publication first, any status.
func (h *ArticleHandler) List(c *gin.Context) {
	filter := models.ArticleFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}

	articles, err := h.services.Content.ListArticles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}
	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Content.GetArticle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid article body")
		return
	}

	id, err := h.services.Content.CreateArticle(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info().Int64("article_id", id).Str("slug", in.Slug).Msg("Article created")
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Update handles PUT /api/articles/:slug
func (h *ArticleHandler) Update(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid article body")
		return
	}

	if err := h.services.Content.UpdateArticle(c.Request.Context(), c.Param("slug"), &in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Content.DeleteArticle(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetCategories handles PUT /api/articles/:slug/categories
// The given category slugs replace the current links.
func (h *ArticleHandler) SetCategories(c *gin.Context) {
	var body models.CategorySlugs
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid categories body")
		return
	}

	if err := h.services.Content.SetArticleCategories(c.Request.Context(), c.Param("slug"), body.Categories); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetTags handles PUT /api/articles/:slug/tags
func (h *ArticleHandler) SetTags(c *gin.Context) {
	var body models.TagSlugs
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid tags body")
		return
	}

	if err := h.services.Content.SetArticleTags(c.Request.Context(), c.Param("slug"), body.Tags); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
