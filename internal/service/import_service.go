package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/metrics"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// ErrBatchTooLarge is returned when a batch exceeds the configured size
var ErrBatchTooLarge = errors.New("batch too large")

// BatchError carries every validation failure found in a batch. Nothing
// from the batch is applied when it is returned.
type BatchError struct {
	Errors []validation.ValidationError
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return "batch rejected: " + e.Errors[0].Error()
	}
	return fmt.Sprintf("batch rejected: %d invalid records (first: %s)", len(e.Errors), e.Errors[0].Error())
}

// importKeys lists the natural keys each bulk-loadable resource can be
// merged on
var importKeys = map[string][]string{
	models.ResourceArticles:   {"slug", "id"},
	models.ResourceCategories: {"slug", "name", "id"},
	models.ResourceTags:       {"slug", "name", "id"},
	models.ResourceProfile:    {"id"},
}

// importService is the concrete implementation of ImportService
type importService struct {
	repos *repository.Repositories
	cfg   config.ImportConfig
	log   zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, cfg config.ImportConfig, log zerolog.Logger) *importService {
	return &importService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "import").Logger(),
	}
}

// Upsert decodes a JSON array of flat records and merges it into the
// store by the natural key. The batch is validated up front and written
// in one transaction: either every record is applied or none is.
func (s *importService) Upsert(ctx context.Context, resource, key string, r io.Reader) (*models.ImportResult, error) {
	if key == "" {
		key = models.DefaultImportKey(resource)
	}
	allowed, ok := importKeys[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	if !slices.Contains(allowed, key) {
		return nil, invalidKey(key)
	}

	log := s.log.With().Str("resource", resource).Str("key", key).Logger()
	log.Info().Msg("Starting bulk upsert")

	timer := metrics.NewTimer()
	var (
		applied, total int
		err            error
	)
	switch resource {
	case models.ResourceArticles:
		total, applied, err = upsertBatch(ctx, s, r, key, articleKey, validation.ValidateArticleRecord, s.repos.Article.UpsertBatch)
	case models.ResourceCategories:
		total, applied, err = upsertBatch(ctx, s, r, key, categoryKey, validation.ValidateCategory, s.repos.Category.UpsertBatch)
	case models.ResourceTags:
		total, applied, err = upsertBatch(ctx, s, r, key, tagKey, validation.ValidateTag, s.repos.Tag.UpsertBatch)
	case models.ResourceProfile:
		total, applied, err = upsertBatch(ctx, s, r, key, profileKey, validation.ValidateProfile, s.repos.Profile.UpsertBatch)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	metrics.ObserveBulk(resource, total, err, timer.Seconds())

	if err != nil {
		log.Error().Err(err).Int("records", total).Msg("Bulk upsert failed, batch not applied")
		return nil, err
	}

	log.Info().
		Int("applied", applied).
		Float64("duration_s", timer.Seconds()).
		Msg("Bulk upsert completed")

	return &models.ImportResult{Resource: resource, Key: key, Applied: applied}, nil
}

// upsertBatch decodes, validates and writes one batch of T
func upsertBatch[T any](
	ctx context.Context,
	s *importService,
	r io.Reader,
	key string,
	keyOf func(rec *T, key string) (string, error),
	validate func(rec *T) error,
	write func(ctx context.Context, recs []*T, key string) (int, error),
) (int, int, error) {
	var records []*T
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, 0, fmt.Errorf("%w: expected a JSON array: %w", ErrInvalidPayload, err)
	}
	if len(records) > s.cfg.MaxBatchSize {
		return len(records), 0, fmt.Errorf("%w: %d records (max %d)", ErrBatchTooLarge, len(records), s.cfg.MaxBatchSize)
	}

	v := validation.NewValidator()
	var invalid []validation.ValidationError
	for i, rec := range records {
		if rec == nil {
			invalid = append(invalid, validation.ValidationError{Record: i + 1, Field: "record", Message: "must be an object"})
			continue
		}
		value, err := keyOf(rec, key)
		if err != nil {
			return len(records), 0, err
		}
		if err := v.CheckKey(i+1, key, value); err != nil {
			invalid = append(invalid, err.(validation.ValidationError))
		}
		if err := validate(rec); err != nil {
			invalid = append(invalid, validation.ToValidationErrors(i+1, err)...)
		}
	}
	if len(invalid) > 0 {
		return len(records), 0, &BatchError{Errors: invalid}
	}

	applied, err := write(ctx, records, key)
	return len(records), applied, err
}

func invalidKey(key string) error {
	return fmt.Errorf("%w %q", repository.ErrInvalidKey, key)
}

func articleKey(rec *models.ArticleRecord, key string) (string, error) {
	switch key {
	case "slug":
		return rec.Slug, nil
	case "id":
		return strconv.FormatInt(rec.ID, 10), nil
	}
	return "", invalidKey(key)
}

func categoryKey(rec *models.Category, key string) (string, error) {
	switch key {
	case "slug":
		return rec.Slug, nil
	case "name":
		return rec.Name, nil
	case "id":
		return strconv.FormatInt(rec.ID, 10), nil
	}
	return "", invalidKey(key)
}

func tagKey(rec *models.Tag, key string) (string, error) {
	switch key {
	case "slug":
		return rec.Slug, nil
	case "name":
		return rec.Name, nil
	case "id":
		return strconv.FormatInt(rec.ID, 10), nil
	}
	return "", invalidKey(key)
}

// profileKey targets the single profile row when the record carries no id
func profileKey(rec *models.Profile, key string) (string, error) {
	if key != "id" {
		return "", invalidKey(key)
	}
	if rec.ID == 0 {
		rec.ID = models.ProfileID
	}
	return strconv.FormatInt(rec.ID, 10), nil
}
