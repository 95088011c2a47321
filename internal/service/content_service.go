package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/journalist-portfolio-api/internal/metrics"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newContentService(repos *repository.Repositories, log zerolog.Logger) *contentService {
	return &contentService{
		repos: repos,
		log:   log.With().Str("service", "content").Logger(),
	}
}

// Articles

func (s *contentService) ListArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	return s.repos.Article.List(ctx, filter)
}

func (s *contentService) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repos.Article.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// CreateArticle inserts an article. Slug uniqueness is left to the store,
// which reports a duplicate as repository.ErrConflict.
func (s *contentService) CreateArticle(ctx context.Context, in *models.ArticleInput) (int64, error) {
	if err := validation.ValidateArticle(in); err != nil {
		return 0, err
	}

	id, err := s.repos.Article.Create(ctx, in.ToArticle())
	metrics.ObserveWrite(models.ResourceArticles, err)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("article_id", id).Str("slug", in.Slug).Msg("Article created")
	return id, nil
}

func (s *contentService) UpdateArticle(ctx context.Context, slug string, in *models.ArticleInput) error {
	if err := validation.ValidateArticle(in); err != nil {
		return err
	}

	found, err := s.repos.Article.Update(ctx, slug, in.ToArticle())
	metrics.ObserveWrite(models.ResourceArticles, err)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}

	s.log.Info().Str("slug", slug).Str("status", in.Status).Msg("Article updated")
	return nil
}

func (s *contentService) DeleteArticle(ctx context.Context, slug string) error {
	found, err := s.repos.Article.Delete(ctx, slug)
	metrics.ObserveWrite(models.ResourceArticles, err)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	s.log.Info().Str("slug", slug).Msg("Article deleted")
	return nil
}

// resolveSlugs maps every slug to an id or reports the unknown ones
func resolveSlugs(field string, slugs []string, ids map[string]int64) ([]int64, error) {
	var (
		resolved []int64
		missing  []string
	)
	for _, slug := range slugs {
		id, ok := ids[slug]
		if !ok {
			missing = append(missing, slug)
			continue
		}
		resolved = append(resolved, id)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, validation.ValidationError{Field: field, Message: fmt.Sprintf("unknown slugs: %v", missing)}
	}
	return resolved, nil
}

func (s *contentService) SetArticleCategories(ctx context.Context, slug string, categorySlugs []string) error {
	article, err := s.GetArticle(ctx, slug)
	if err != nil {
		return err
	}

	ids, err := s.repos.Category.IDsBySlugs(ctx, categorySlugs)
	if err != nil {
		return err
	}
	categoryIDs, err := resolveSlugs("categories", categorySlugs, ids)
	if err != nil {
		return err
	}

	err = s.repos.Article.SetCategories(ctx, article.ID, categoryIDs)
	metrics.ObserveWrite("article_categories", err)
	return err
}

func (s *contentService) SetArticleTags(ctx context.Context, slug string, tagSlugs []string) error {
	article, err := s.GetArticle(ctx, slug)
	if err != nil {
		return err
	}

	ids, err := s.repos.Tag.IDsBySlugs(ctx, tagSlugs)
	if err != nil {
		return err
	}
	tagIDs, err := resolveSlugs("tags", tagSlugs, ids)
	if err != nil {
		return err
	}

	err = s.repos.Article.SetTags(ctx, article.ID, tagIDs)
	metrics.ObserveWrite("article_tags", err)
	return err
}

// Categories and tags

func (s *contentService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Category.List(ctx)
}

func (s *contentService) CreateCategory(ctx context.Context, category *models.Category) (int64, error) {
	if err := validation.ValidateCategory(category); err != nil {
		return 0, err
	}
	id, err := s.repos.Category.Create(ctx, category)
	metrics.ObserveWrite(models.ResourceCategories, err)
	return id, err
}

// DeleteCategory removes a category. Linked articles are kept; only the
// join rows go.
func (s *contentService) DeleteCategory(ctx context.Context, slug string) error {
	found, err := s.repos.Category.Delete(ctx, slug)
	metrics.ObserveWrite(models.ResourceCategories, err)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *contentService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.repos.Tag.List(ctx)
}

func (s *contentService) CreateTag(ctx context.Context, tag *models.Tag) (int64, error) {
	if err := validation.ValidateTag(tag); err != nil {
		return 0, err
	}
	id, err := s.repos.Tag.Create(ctx, tag)
	metrics.ObserveWrite(models.ResourceTags, err)
	return id, err
}

func (s *contentService) DeleteTag(ctx context.Context, slug string) error {
	found, err := s.repos.Tag.Delete(ctx, slug)
	metrics.ObserveWrite(models.ResourceTags, err)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Profile and settings

func (s *contentService) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.repos.Profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// UpdateProfile overwrites every editable field of the profile row
func (s *contentService) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	if profile.SocialLinks == "" {
		profile.SocialLinks = "{}"
	}
	if err := validation.ValidateProfile(profile); err != nil {
		return err
	}

	found, err := s.repos.Profile.Update(ctx, profile)
	metrics.ObserveWrite(models.ResourceProfile, err)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *contentService) GetSettings(ctx context.Context) (map[string]string, error) {
	return s.repos.Settings.All(ctx)
}

// UpdateSettings upserts every pair in one transaction, in sorted key order
func (s *contentService) UpdateSettings(ctx context.Context, settings map[string]string) error {
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]models.Setting, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, models.Setting{Key: k, Value: settings[k]})
	}

	err := s.repos.Settings.UpsertAll(ctx, pairs)
	metrics.ObserveWrite("settings", err)
	if err != nil {
		return err
	}
	s.log.Info().Strs("keys", keys).Msg("Settings updated")
	return nil
}

// Contact submissions

func (s *contentService) SubmitContact(ctx context.Context, req *models.ContactRequest) (int64, error) {
	if err := validation.ValidateContact(req); err != nil {
		return 0, err
	}

	id, err := s.repos.Contact.Create(ctx, &models.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	metrics.ObserveWrite("contact", err)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("submission_id", id).Msg("Contact submission received")
	return id, nil
}

func (s *contentService) ListContacts(ctx context.Context) ([]*models.ContactSubmission, error) {
	return s.repos.Contact.List(ctx)
}

// Media library

func (s *contentService) ListMedia(ctx context.Context) ([]*models.Media, error) {
	return s.repos.Media.List(ctx)
}

func (s *contentService) CreateMedia(ctx context.Context, media *models.Media) (int64, error) {
	if err := validation.ValidateMedia(media); err != nil {
		return 0, err
	}
	id, err := s.repos.Media.Create(ctx, media)
	metrics.ObserveWrite("media", err)
	return id, err
}

func (s *contentService) DeleteMedia(ctx context.Context, id int64) error {
	found, err := s.repos.Media.Delete(ctx, id)
	metrics.ObserveWrite("media", err)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
