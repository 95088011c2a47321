package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/journalist-portfolio-api/internal/metrics"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/rs/zerolog"
)

// Export formats
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// recordWriter writes records as a JSON array or as NDJSON, flushing
// every 100 records
type recordWriter struct {
	w       io.Writer
	flusher http.Flusher
	format  string
	count   int
}

func newRecordWriter(w http.ResponseWriter, resource, format string) *recordWriter {
	if format == FormatNDJSON {
		w.Header().Set("Content-Type", "application/x-ndjson")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", resource, format))

	flusher, _ := w.(http.Flusher)
	return &recordWriter{w: w, flusher: flusher, format: format}
}

func (rw *recordWriter) begin() error {
	if rw.format == FormatJSON {
		_, err := io.WriteString(rw.w, "[")
		return err
	}
	return nil
}

func (rw *recordWriter) write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if rw.format == FormatJSON && rw.count > 0 {
		if _, err := io.WriteString(rw.w, ","); err != nil {
			return err
		}
	}
	if _, err := rw.w.Write(data); err != nil {
		return err
	}
	if rw.format == FormatNDJSON {
		if _, err := io.WriteString(rw.w, "\n"); err != nil {
			return err
		}
	}
	rw.count++

	if rw.count%100 == 0 && rw.flusher != nil {
		rw.flusher.Flush()
	}
	return nil
}

func (rw *recordWriter) end() error {
	if rw.format == FormatJSON {
		_, err := io.WriteString(rw.w, "]")
		return err
	}
	return nil
}

// StreamResource streams a resource in the bulk-load format so the output
// can be fed back to the import endpoint
func (s *exportService) StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	if format != FormatJSON && format != FormatNDJSON {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	var stream func(rw *recordWriter) error
	switch resource {
	case models.ResourceArticles:
		stream = func(rw *recordWriter) error {
			return s.repos.Article.StreamAll(ctx, func(rec *models.ArticleRecord) error { return rw.write(rec) })
		}
	case models.ResourceCategories:
		stream = func(rw *recordWriter) error {
			return s.repos.Category.StreamAll(ctx, func(c *models.Category) error { return rw.write(c) })
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	s.log.Info().Str("resource", resource).Str("format", format).Msg("Starting export")

	rw := newRecordWriter(w, resource, format)
	if err := rw.begin(); err != nil {
		return err
	}
	err := stream(rw)
	if endErr := rw.end(); err == nil {
		err = endErr
	}
	metrics.ObserveExport(resource, format, rw.count)

	if err != nil {
		s.log.Error().Err(err).Str("resource", resource).Int("count", rw.count).Msg("Export failed")
		return err
	}
	s.log.Info().Str("resource", resource).Int("count", rw.count).Msg("Export completed")
	return nil
}

// GetCount returns count for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case models.ResourceArticles:
		return s.repos.Article.Count(ctx)
	case models.ResourceCategories:
		return s.repos.Category.Count(ctx)
	case models.ResourceTags:
		return s.repos.Tag.Count(ctx)
	case "users":
		return s.repos.User.Count(ctx)
	case "contact":
		return s.repos.Contact.Count(ctx)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
}
