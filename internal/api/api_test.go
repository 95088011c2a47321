package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/journalist-portfolio-api/internal/api"
	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/database/dbtest"
	"github.com/journalist-portfolio-api/internal/mocks"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/seed"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Admin.JWTSecret = "0123456789abcdef0123456789abcdef"
	return cfg
}

// testServer is a router over a freshly seeded in-memory store
type testServer struct {
	router   *gin.Engine
	services *service.Services
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	db := dbtest.Open(t)
	_, err := seed.Run(context.Background(), db, seed.Options{
		AdminUsername: cfg.Admin.Username,
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
		PasswordCost:  bcrypt.MinCost,
	}, zerolog.Nop())
	require.NoError(t, err)

	services := service.NewServices(repository.New(db), cfg, zerolog.Nop())
	return &testServer{
		router:   api.NewRouter(services, db, cfg, zerolog.Nop()),
		services: services,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := srv.do(t, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "portfolio-api", resp["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthEndpoint_Unhealthy(t *testing.T) {
	cfg := testConfig()
	services := &service.Services{Export: mocks.NewMockExportService()}
	router := api.NewRouter(services, &mocks.MockHealthChecker{Err: errors.New("down")}, cfg, zerolog.Nop())

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"), "caller's request id is echoed")
}

func TestRequestLog_NamesActingAdmin(t *testing.T) {
	cfg := testConfig()
	srv := newTestServer(t, cfg)
	token := srv.login(t)

	var buf bytes.Buffer
	router := api.NewRouter(srv.services, &mocks.MockHealthChecker{}, cfg, zerolog.New(&buf))

	req := httptest.NewRequest("PUT", "/api/settings", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entry map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "Request completed" {
			break
		}
	}
	assert.Equal(t, "admin", entry["admin"])
	assert.EqualValues(t, 1, entry["admin_id"])
	assert.Equal(t, "/api/settings", entry["path"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())
	srv.do(t, "GET", "/api/articles", "", nil)

	w := srv.do(t, "GET", "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")
}

func TestListArticles_SeededOrder(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := srv.do(t, "GET", "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	articles := decode[[]models.Article](t, w)
	require.Len(t, articles, 3)
	assert.Equal(t, "Urban Greenery: The Mental Health Benefits of City Parks", articles[0].Title)
	assert.Equal(t, "Renewable Resilience: How Coastal Towns are Fighting Back", articles[1].Title)
	assert.Equal(t, "The Silent Crisis: Water Scarcity in Rural Communities", articles[2].Title)
	assert.Equal(t, "Environment", articles[1].Categories)
}

func TestListArticles_Filters(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := srv.do(t, "GET", "/api/articles?category=environment", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	articles := decode[[]models.Article](t, w)
	require.Len(t, articles, 1)
	assert.Equal(t, "renewable-resilience-coastal-towns", articles[0].Slug)

	w = srv.do(t, "GET", "/api/articles?q=water", "", nil)
	articles = decode[[]models.Article](t, w)
	require.Len(t, articles, 1)
	assert.Equal(t, "silent-crisis-water-scarcity", articles[0].Slug)

	w = srv.do(t, "GET", "/api/articles?category=sports", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetArticle(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := srv.do(t, "GET", "/api/articles/urban-greenery-mental-health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Social Issues", decode[models.Article](t, w).Categories)

	w = srv.do(t, "GET", "/api/articles/no-such-article", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := srv.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, w.Body.String())

	w = srv.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.LoginResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "admin", resp.User.Username)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, w.Body.String(), "password")

	w = srv.do(t, "POST", "/api/auth/login", "", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t, testConfig())

	routes := []struct{ method, path string }{
		{"POST", "/api/articles"},
		{"PUT", "/api/articles/urban-greenery-mental-health"},
		{"DELETE", "/api/articles/urban-greenery-mental-health"},
		{"PUT", "/api/settings"},
		{"GET", "/api/contact"},
		{"GET", "/api/media"},
		{"POST", "/api/import/categories"},
		{"GET", "/api/export/articles"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := srv.do(t, r.method, r.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = srv.do(t, r.method, r.path, "forged.token.value", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	// the write never happened
	w := srv.do(t, "GET", "/api/articles", "", nil)
	assert.Len(t, decode[[]models.Article](t, w), 3)
}

func TestAdminDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.Enabled = false
	srv := newTestServer(t, cfg)

	w := srv.do(t, "POST", "/api/auth/login", "", models.LoginRequest{Username: "admin", Password: "admin123"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, "DELETE", "/api/articles/urban-greenery-mental-health", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, "GET", "/api/articles", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "public reads stay up")
}

func TestArticleLifecycle(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	input := models.ArticleInput{
		Title:           "Flood Maps",
		Slug:            "flood-maps",
		Excerpt:         "Who gets counted",
		Status:          models.StatusPublished,
		PublicationDate: "2024-03-01",
	}
	w := srv.do(t, "POST", "/api/articles", token, input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Positive(t, decode[map[string]int64](t, w)["id"])

	w = srv.do(t, "POST", "/api/articles", token, input)
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate slug")

	w = srv.do(t, "GET", "/api/articles/flood-maps", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Article](t, w)
	assert.Equal(t, "Flood Maps", got.Title)
	assert.Equal(t, "Who gets counted", got.Excerpt)
	assert.Equal(t, models.StatusPublished, got.Status)

	w = srv.do(t, "PUT", "/api/articles/flood-maps/categories", token, models.CategorySlugs{Categories: []string{"environment", "features"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, "GET", "/api/articles?category=features", "", nil)
	articles := decode[[]models.Article](t, w)
	require.Len(t, articles, 1)
	assert.Equal(t, "flood-maps", articles[0].Slug)

	w = srv.do(t, "PUT", "/api/articles/flood-maps/categories", token, models.CategorySlugs{Categories: []string{"sports"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	input.Status = models.StatusDraft
	w = srv.do(t, "PUT", "/api/articles/flood-maps", token, input)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, "DELETE", "/api/articles/flood-maps", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, "GET", "/api/articles/flood-maps", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, "DELETE", "/api/articles/flood-maps", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateArticle_ValidationError(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "POST", "/api/articles", token, models.ArticleInput{Title: "", Slug: "Bad Slug"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[struct {
		Error   string `json:"error"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}](t, w)
	assert.Equal(t, "validation failed", resp.Error)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "slug", resp.Details[0].Field)
	assert.Equal(t, "title", resp.Details[1].Field)
}

func TestTags(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "POST", "/api/tags", token, models.Tag{Name: "Water", Slug: "water"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, "PUT", "/api/articles/silent-crisis-water-scarcity/tags", token, models.TagSlugs{Tags: []string{"water"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, "GET", "/api/tags", "", nil)
	tags := decode[[]models.Tag](t, w)
	require.Len(t, tags, 1)
	assert.Equal(t, "water", tags[0].Slug)

	w = srv.do(t, "DELETE", "/api/tags/water", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, "DELETE", "/api/tags/water", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategory_KeepsArticles(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "DELETE", "/api/categories/environment", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, "GET", "/api/articles/renewable-resilience-coastal-towns", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.Article](t, w).Categories)

	w = srv.do(t, "GET", "/api/categories", "", nil)
	assert.Len(t, decode[[]models.Category](t, w), 3)

	w = srv.do(t, "POST", "/api/categories", token, models.Category{Name: "Investigative", Slug: "investigative"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCategoryNameWithComma_Rejected(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "POST", "/api/categories", token, models.Category{Name: "Arts, Culture", Slug: "arts-culture"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, "POST", "/api/import/categories", token, `[{"name":"Arts, Culture","slug":"arts-culture"}]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, "GET", "/api/categories", "", nil)
	assert.Len(t, decode[[]models.Category](t, w), 4)
}

func TestProfileAndSettings(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "GET", "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[models.Profile](t, w)
	assert.Equal(t, "Investigative Journalist", profile.ProfessionalTitle)

	profile.BioShort = "Reporting on water and land."
	profile.SocialLinks = `{"twitter":"@reporter"}`
	w = srv.do(t, "PUT", "/api/profile", token, profile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = srv.do(t, "GET", "/api/profile", "", nil)
	assert.Equal(t, "Reporting on water and land.", decode[models.Profile](t, w).BioShort)

	w = srv.do(t, "PUT", "/api/settings", token, map[string]string{"site_title": "New Title", "theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = srv.do(t, "GET", "/api/settings", "", nil)
	settings := decode[map[string]string](t, w)
	assert.Equal(t, "New Title", settings["site_title"])
	assert.Equal(t, "dark", settings["theme"])
	assert.Equal(t, "Journalism with Purpose", settings["site_tagline"], "untouched keys survive")

	w = srv.do(t, "PUT", "/api/settings", token, `{"count": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "values must be strings")
}

func TestContactAndMedia(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "POST", "/api/contact", "", models.ContactRequest{
		Name: "Reader", Email: "reader@example.com", Subject: "Tip", Message: "Check the permits.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = srv.do(t, "POST", "/api/contact", "", models.ContactRequest{Name: "Reader", Email: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, "GET", "/api/contact", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	submissions := decode[[]models.ContactSubmission](t, w)
	require.Len(t, submissions, 1)
	assert.Equal(t, models.ContactStatusUnread, submissions[0].Status)

	w = srv.do(t, "POST", "/api/media", token, models.Media{Filename: "dam.jpg", URL: "https://cdn.example/dam.jpg", Type: "image"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode[map[string]int64](t, w)["id"]

	w = srv.do(t, "GET", "/api/media", token, nil)
	assert.Len(t, decode[[]models.Media](t, w), 1)

	w = srv.do(t, "DELETE", "/api/media/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, "DELETE", "/api/media/"+strconv.FormatInt(id, 10), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImport_UpsertKeepsCount(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	body := `[{"name":"Environment","slug":"environment","description":"Climate and land","color":"#00AA00"}]`
	w := srv.do(t, "POST", "/api/import/categories?key=slug", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ImportResult{Resource: "categories", Key: "slug", Applied: 1}, decode[models.ImportResult](t, w))

	w = srv.do(t, "GET", "/api/categories", "", nil)
	categories := decode[[]models.Category](t, w)
	require.Len(t, categories, 4)
	for _, c := range categories {
		if c.Slug == "environment" {
			assert.Equal(t, "Climate and land", c.Description)
			assert.Equal(t, "#00AA00", c.Color)
		}
	}
}

func TestImport_Errors(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown resource", "/api/import/comments", `[]`, http.StatusBadRequest},
		{"bad key", "/api/import/categories?key=color", `[{"name":"X","slug":"x"}]`, http.StatusBadRequest},
		{"not an array", "/api/import/categories", `{"name":"X"}`, http.StatusBadRequest},
		{"duplicate in batch", "/api/import/tags", `[{"name":"A","slug":"a"},{"name":"B","slug":"a"}]`, http.StatusBadRequest},
		{"unknown category", "/api/import/articles", `[{"title":"T","slug":"t","categories":"Sports"}]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, "POST", tt.path, token, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	w := srv.do(t, "GET", "/api/tags", "", nil)
	assert.JSONEq(t, "[]", w.Body.String(), "rejected batches write nothing")
}

func TestImport_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Import.MaxBodySize = 64
	srv := newTestServer(t, cfg)
	token := srv.login(t)

	body := `[{"name":"` + strings.Repeat("x", 200) + `","slug":"x"}]`
	w := srv.do(t, "POST", "/api/import/categories", token, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestExport_RoundTrip(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "GET", "/api/export/articles", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))

	var records []models.ArticleRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 3)

	// the export is a valid import
	w = srv.do(t, "POST", "/api/import/articles", token, w.Body.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 3, decode[models.ImportResult](t, w).Applied)

	w = srv.do(t, "GET", "/api/articles", "", nil)
	assert.Len(t, decode[[]models.Article](t, w), 3)

	w = srv.do(t, "GET", "/api/export/categories?format=ndjson", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))
	assert.Len(t, strings.Split(strings.TrimSpace(w.Body.String()), "\n"), 4)

	w = srv.do(t, "GET", "/api/export/categories?format=xml", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t, testConfig())
	token := srv.login(t)

	w := srv.do(t, "GET", "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Database map[string]int `json:"database"`
	}](t, w)
	assert.Equal(t, 3, resp.Database["articles"])
	assert.Equal(t, 4, resp.Database["categories"])
	assert.Equal(t, 1, resp.Database["users"])
}

func TestMockedServices_ErrorMapping(t *testing.T) {
	cfg := testConfig()
	importSvc := mocks.NewMockImportService()
	exportSvc := mocks.NewMockExportService()
	auth := mocks.NewMockAuthService()
	services := &service.Services{Auth: auth, Import: importSvc, Export: exportSvc}
	router := api.NewRouter(services, &mocks.MockHealthChecker{}, cfg, zerolog.Nop())

	call := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader("[]"))
		req.Header.Set("Authorization", "Bearer "+auth.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"too large", service.ErrBatchTooLarge, http.StatusRequestEntityTooLarge},
		{"conflict", repository.ErrConflict, http.StatusConflict},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importSvc.UpsertFunc = func(ctx context.Context, resource, key string, r io.Reader) (*models.ImportResult, error) {
				return nil, tt.err
			}
			w := call("POST", "/api/import/categories")
			assert.Equal(t, tt.code, w.Code)
			assert.NotContains(t, w.Body.String(), "disk on fire", "internal errors are not leaked")
		})
	}

	t.Run("mid-stream failure keeps partial body", func(t *testing.T) {
		exportSvc.StreamFunc = func(ctx context.Context, w http.ResponseWriter, resource, format string) error {
			io.WriteString(w, "[")
			return errors.New("connection lost")
		}
		w := call("GET", "/api/export/articles")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[", w.Body.String())
	})

	t.Run("panic is recovered", func(t *testing.T) {
		importSvc.UpsertFunc = func(ctx context.Context, resource, key string, r io.Reader) (*models.ImportResult, error) {
			panic("boom")
		}
		w := call("POST", "/api/import/categories")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

func TestNoRoute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := testConfig()
	cfg.Server.StaticDir = dir
	srv := newTestServer(t, cfg)

	w := srv.do(t, "GET", "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())

	w = srv.do(t, "GET", "/app.js", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = srv.do(t, "GET", "/articles/some-client-route", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")
}
