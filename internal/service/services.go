package service

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnknownResource is returned for an import/export resource name
	// that is not supported
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnsupportedFormat is returned for an unknown export format
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidPayload is returned when a bulk body cannot be decoded
	ErrInvalidPayload = errors.New("invalid payload")
)

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	ParseToken(token string) (*Claims, error)
}

// ContentService defines the interface for content reads and writes
type ContentService interface {
	ListArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	GetArticle(ctx context.Context, slug string) (*models.Article, error)
	CreateArticle(ctx context.Context, in *models.ArticleInput) (int64, error)
	UpdateArticle(ctx context.Context, slug string, in *models.ArticleInput) error
	DeleteArticle(ctx context.Context, slug string) error
	SetArticleCategories(ctx context.Context, slug string, categorySlugs []string) error
	SetArticleTags(ctx context.Context, slug string, tagSlugs []string) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (int64, error)
	DeleteCategory(ctx context.Context, slug string) error

	ListTags(ctx context.Context) ([]*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) (int64, error)
	DeleteTag(ctx context.Context, slug string) error

	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error

	GetSettings(ctx context.Context) (map[string]string, error)
	UpdateSettings(ctx context.Context, settings map[string]string) error

	SubmitContact(ctx context.Context, req *models.ContactRequest) (int64, error)
	ListContacts(ctx context.Context) ([]*models.ContactSubmission, error)

	ListMedia(ctx context.Context) ([]*models.Media, error)
	CreateMedia(ctx context.Context, media *models.Media) (int64, error)
	DeleteMedia(ctx context.Context, id int64) error
}

// ImportService defines the interface for bulk natural-key upserts
type ImportService interface {
	Upsert(ctx context.Context, resource, key string, r io.Reader) (*models.ImportResult, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Content ContentService
	Import  ImportService
	Export  ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:    newAuthService(repos.User, cfg.Admin, log),
		Content: newContentService(repos, log),
		Import:  newImportService(repos, cfg.Import, log),
		Export:  newExportService(repos, log),
	}
}
