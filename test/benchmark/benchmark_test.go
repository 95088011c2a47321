package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/database/dbtest"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/journalist-portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

const batchSize = 1000

func articleBatch(n int) []byte {
	records := make([]models.ArticleRecord, n)
	for i := range records {
		records[i] = models.ArticleRecord{
			Title:           fmt.Sprintf("Dispatch %d", i),
			Slug:            fmt.Sprintf("dispatch-%d", i),
			Content:         "Field notes from the coast.",
			Excerpt:         "Field notes.",
			Status:          models.StatusPublished,
			PublicationDate: "2024-02-01",
		}
	}
	data, _ := json.Marshal(records)
	return data
}

func newServices(b *testing.B) *service.Services {
	cfg := config.Default()
	cfg.Import.MaxBatchSize = batchSize
	return service.NewServices(repository.New(dbtest.Open(b)), cfg, zerolog.Nop())
}

// BenchmarkUpsertArticles benchmarks a full bulk upsert; after the first
// iteration every record takes the update path
func BenchmarkUpsertArticles(b *testing.B) {
	services := newServices(b)
	body := articleBatch(batchSize)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := services.Import.Upsert(ctx, models.ResourceArticles, "slug", bytes.NewReader(body)); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(batchSize*b.N)/b.Elapsed().Seconds(), "records/sec")
}

// BenchmarkExportArticles benchmarks streaming export performance
func BenchmarkExportArticles(b *testing.B) {
	services := newServices(b)
	ctx := context.Background()
	if _, err := services.Import.Upsert(ctx, models.ResourceArticles, "slug", bytes.NewReader(articleBatch(batchSize))); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		if err := services.Export.StreamResource(ctx, w, models.ResourceArticles, service.FormatNDJSON); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(batchSize*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkValidateArticleRecord benchmarks per-record validation
func BenchmarkValidateArticleRecord(b *testing.B) {
	rec := &models.ArticleRecord{
		Title:           "Dispatch",
		Slug:            "dispatch",
		Status:          models.StatusPublished,
		PublicationDate: "2024-02-01",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = validation.ValidateArticleRecord(rec)
	}
}

// BenchmarkCheckKey benchmarks duplicate detection across a batch
func BenchmarkCheckKey(b *testing.B) {
	keys := make([]string, batchSize)
	for i := range keys {
		keys[i] = fmt.Sprintf("dispatch-%d", i)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		v := validation.NewValidator()
		for j, k := range keys {
			_ = v.CheckKey(j+1, "slug", k)
		}
	}
}
