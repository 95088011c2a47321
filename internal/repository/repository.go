package repository

import (
	"context"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) (int64, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Update(ctx context.Context, slug string, article *models.Article) (bool, error)
	Delete(ctx context.Context, slug string) (bool, error)
	SetCategories(ctx context.Context, articleID int64, categoryIDs []int64) error
	SetTags(ctx context.Context, articleID int64, tagIDs []int64) error
	UpsertBatch(ctx context.Context, records []*models.ArticleRecord, key string) (int, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.ArticleRecord) error) error
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) (int64, error)
	List(ctx context.Context) ([]*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Delete(ctx context.Context, slug string) (bool, error)
	IDsBySlugs(ctx context.Context, slugs []string) (map[string]int64, error)
	UpsertBatch(ctx context.Context, categories []*models.Category, key string) (int, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Category) error) error
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) (int64, error)
	List(ctx context.Context) ([]*models.Tag, error)
	Delete(ctx context.Context, slug string) (bool, error)
	IDsBySlugs(ctx context.Context, slugs []string) (map[string]int64, error)
	UpsertBatch(ctx context.Context, tags []*models.Tag, key string) (int, error)
	Count(ctx context.Context) (int, error)
}

// MediaRepository defines the interface for media library operations
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) (int64, error)
	List(ctx context.Context) ([]*models.Media, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ProfileRepository defines the interface for the single profile row
type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) (bool, error)
	UpsertBatch(ctx context.Context, profiles []*models.Profile, key string) (int, error)
}

// SettingsRepository defines the interface for key/value settings
type SettingsRepository interface {
	All(ctx context.Context) (map[string]string, error)
	UpsertAll(ctx context.Context, settings []models.Setting) error
}

// ContactRepository defines the interface for contact form submissions
type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) (int64, error)
	List(ctx context.Context) ([]*models.ContactSubmission, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Article  ArticleRepository
	Category CategoryRepository
	Tag      TagRepository
	Media    MediaRepository
	Profile  ProfileRepository
	Settings SettingsRepository
	Contact  ContactRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Article:  NewArticleRepo(db),
		Category: NewCategoryRepo(db),
		Tag:      NewTagRepo(db),
		Media:    NewMediaRepo(db),
		Profile:  NewProfileRepo(db),
		Settings: NewSettingsRepo(db),
		Contact:  NewContactRepo(db),
	}
}
