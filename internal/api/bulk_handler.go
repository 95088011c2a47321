package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// ImportHandler handles bulk upsert endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// Upsert handles POST /api/import/:resource?key=...
// The body is a JSON array of flat records merged by the natural key.
func (h *ImportHandler) Upsert(c *gin.Context) {
	resource := c.Param("resource")
	key := c.Query("key")

	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Import.MaxBodySize)
	defer body.Close()

	result, err := h.services.Import.Upsert(c.Request.Context(), resource, key, body)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info().
		Str("resource", result.Resource).
		Str("key", result.Key).
		Int("applied", result.Applied).
		Msg("Bulk upsert applied")

	c.JSON(http.StatusOK, result)
}

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// Stream handles GET /api/export/:resource?format=json|ndjson
// Streams the export directly to the response in the bulk-load format.
func (h *ExportHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	resource := c.Param("resource")

	format := c.Query("format")
	if format == "" {
		format = service.FormatJSON
	}

	if n, err := h.services.Export.GetCount(ctx, resource); err == nil {
		c.Header(totalCountHeader, strconv.Itoa(n))
	}

	if err := h.services.Export.StreamResource(ctx, c.Writer, resource, format); err != nil {
		if !c.Writer.Written() {
			respondError(c, err)
			return
		}
		// Can't return error JSON after streaming has started
		h.log.Error().Err(err).Str("resource", resource).Msg("Export aborted mid-stream")
	}
}
