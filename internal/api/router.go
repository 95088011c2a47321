package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const serviceName = "portfolio-api"

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, store HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	// Handlers
	articles := NewArticleHandler(services, log)
	taxonomy := NewTaxonomyHandler(services, log)
	site := NewSiteHandler(services, log)
	media := NewMediaHandler(services, log)
	auth := NewAuthHandler(services, log)
	imports := NewImportHandler(services, cfg, log)
	exports := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/articles", articles.List)
		api.GET("/articles/:slug", articles.Get)
		api.GET("/categories", taxonomy.ListCategories)
		api.GET("/tags", taxonomy.ListTags)
		api.GET("/profile", site.GetProfile)
		api.GET("/settings", site.GetSettings)
		api.POST("/contact", site.SubmitContact)
	}

	if cfg.Admin.Enabled {
		api.POST("/auth/login", auth.Login)

		admin := api.Group("")
		admin.Use(authMiddleware(services.Auth))
		{
			admin.POST("/articles", articles.Create)
			admin.PUT("/articles/:slug", articles.Update)
			admin.DELETE("/articles/:slug", articles.Delete)
			admin.PUT("/articles/:slug/categories", articles.SetCategories)
			admin.PUT("/articles/:slug/tags", articles.SetTags)

			admin.POST("/categories", taxonomy.CreateCategory)
			admin.DELETE("/categories/:slug", taxonomy.DeleteCategory)
			admin.POST("/tags", taxonomy.CreateTag)
			admin.DELETE("/tags/:slug", taxonomy.DeleteTag)

			admin.PUT("/profile", site.UpdateProfile)
			admin.PUT("/settings", site.UpdateSettings)
			admin.GET("/contact", site.ListContacts)

			admin.GET("/media", media.List)
			admin.POST("/media", media.Create)
			admin.DELETE("/media/:id", media.Delete)

			admin.POST("/import/:resource", imports.Upsert)
			admin.GET("/export/:resource", exports.Stream)
			admin.GET("/stats", statsHandler(services))
		}
	}

	router.NoRoute(notFound(cfg.Server.StaticDir))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, totalCountHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// healthCheck returns the health status
func healthCheck(store HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		if err := store.HealthCheck(ctx); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// statsHandler returns row counts for the main tables
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		counts := gin.H{}
		for _, resource := range []string{"articles", "categories", "tags", "users", "contact"} {
			n, err := services.Export.GetCount(ctx, resource)
			if err != nil {
				respondError(c, err)
				return
			}
			counts[resource] = n
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// notFound answers unknown API paths with JSON and, when a static
// directory is configured, serves the single-page app for everything else
func notFound(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if staticDir == "" || !isRead || path == "/api" || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
