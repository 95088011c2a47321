package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

const articleColumns = `a.id, a.title, a.subtitle, a.slug, a.content, a.excerpt, a.featured_image,
	a.status, a.publication_date, a.external_link, a.author_id, a.views_count, a.created_at, a.updated_at`

// articleUpsertColumns lists the columns written by a bulk upsert, in
// placeholder order
var articleUpsertColumns = []string{
	"title", "subtitle", "slug", "content", "excerpt", "featured_image",
	"status", "publication_date", "external_link", "author_id",
}

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// categoryAggregate joins linked category names into one comma separated string
func (r *articleRepo) categoryAggregate() string {
	if r.db.Dialect == database.Postgres {
		return `COALESCE(string_agg(c.name, ',' ORDER BY c.id), '')`
	}
	return `COALESCE(group_concat(c.name), '')`
}

func (r *articleRepo) selectSQL(where string) string {
	return fmt.Sprintf(`
		SELECT %s, %s AS categories
		FROM articles a
		LEFT JOIN article_categories ac ON ac.article_id = a.id
		LEFT JOIN categories c ON c.id = ac.category_id
		%s
		GROUP BY a.id`, articleColumns, r.categoryAggregate(), where)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var (
		article      models.Article
		externalLink sql.NullString
		authorID     sql.NullInt64
	)
	err := row.Scan(
		&article.ID, &article.Title, &article.Subtitle, &article.Slug, &article.Content,
		&article.Excerpt, &article.FeaturedImage, &article.Status, &article.PublicationDate,
		&externalLink, &authorID, &article.ViewsCount,
		timeValue{&article.CreatedAt}, timeValue{&article.UpdatedAt},
		&article.Categories,
	)
	if err != nil {
		return nil, err
	}
	article.ExternalLink = stringPtr(externalLink)
	article.AuthorID = int64Ptr(authorID)
	return &article, nil
}

// Create inserts a new article and returns its generated id. A duplicate
// slug fails with ErrConflict.
func (r *articleRepo) Create(ctx context.Context, article *models.Article) (int64, error) {
	query := `
		INSERT INTO articles (title, subtitle, slug, content, excerpt, featured_image,
			status, publication_date, external_link, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Subtitle, article.Slug, article.Content, article.Excerpt,
		article.FeaturedImage, article.Status, article.PublicationDate,
		nullString(article.ExternalLink), nullInt64(article.AuthorID),
	).Scan(&id)
	if err != nil {
		return 0, translateError(err)
	}
	article.ID = id
	return id, nil
}

// List returns articles newest first with their category names aggregated
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf(`a.id IN (
			SELECT fac.article_id FROM article_categories fac
			JOIN categories fc ON fc.id = fac.category_id
			WHERE fc.name = $%d OR fc.slug = $%d)`, len(args), len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(q))+"%")
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(a.title) LIKE $%d ESCAPE '\' OR LOWER(a.excerpt) LIKE $%d ESCAPE '\')`, len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	query := r.selectSQL(where) + " ORDER BY a.publication_date DESC, a.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := scanArticle(r.db.QueryRowContext(ctx, r.selectSQL("WHERE a.slug = $1"), slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Update overwrites every editable field of the article identified by slug
func (r *articleRepo) Update(ctx context.Context, slug string, article *models.Article) (bool, error) {
	query := `
		UPDATE articles SET
			title = $1, subtitle = $2, slug = $3, content = $4, excerpt = $5,
			featured_image = $6, status = $7, publication_date = $8,
			external_link = $9, author_id = $10, updated_at = CURRENT_TIMESTAMP
		WHERE slug = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		article.Title, article.Subtitle, article.Slug, article.Content, article.Excerpt,
		article.FeaturedImage, article.Status, article.PublicationDate,
		nullString(article.ExternalLink), nullInt64(article.AuthorID), slug,
	)
	if err != nil {
		return false, translateError(err)
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// Delete removes an article; its join rows cascade
func (r *articleRepo) Delete(ctx context.Context, slug string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// SetCategories replaces the article's category links
func (r *articleRepo) SetCategories(ctx context.Context, articleID int64, categoryIDs []int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return replaceLinks(ctx, tx, "article_categories", "category_id", articleID, categoryIDs)
	})
}

// SetTags replaces the article's tag links
func (r *articleRepo) SetTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return replaceLinks(ctx, tx, "article_tags", "tag_id", articleID, tagIDs)
	})
}

func replaceLinks(ctx context.Context, q querier, table, column string, articleID int64, ids []int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE article_id = $1", articleID); err != nil {
		return err
	}
	insert := fmt.Sprintf("INSERT INTO %s (article_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", table, column)
	for _, id := range ids {
		if _, err := q.ExecContext(ctx, insert, articleID, id); err != nil {
			return err
		}
	}
	return nil
}

// UpsertBatch inserts or updates articles by slug or id inside one
// transaction. Records carrying a categories string get their category
// links replaced; an unknown category name fails the whole batch.
func (r *articleRepo) UpsertBatch(ctx context.Context, records []*models.ArticleRecord, key string) (int, error) {
	if err := checkKey(key, "slug", "id"); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	columns := articleUpsertColumns
	if key == "id" {
		columns = append([]string{"id"}, articleUpsertColumns...)
	}
	query := upsertSQL("articles", columns, key)

	applied := 0
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, rec := range records {
			if key == "id" && rec.ID <= 0 {
				return fmt.Errorf("record %d: id is required when upserting by id", i)
			}

			status := rec.Status
			if status == "" {
				status = models.StatusDraft
			}
			args := []any{
				rec.Title, rec.Subtitle, rec.Slug, rec.Content, rec.Excerpt, rec.FeaturedImage,
				status, rec.PublicationDate, nullString(rec.ExternalLink), nullInt64(rec.AuthorID),
			}
			if key == "id" {
				args = append([]any{rec.ID}, args...)
			}

			var id int64
			if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
				return fmt.Errorf("record %d (%s): %w", i, rec.Slug, translateError(err))
			}

			if rec.Categories != nil {
				categoryIDs, err := categoryIDsByNames(ctx, tx, splitNames(*rec.Categories))
				if err != nil {
					return fmt.Errorf("record %d (%s): %w", i, rec.Slug, err)
				}
				if err := replaceLinks(ctx, tx, "article_categories", "category_id", id, categoryIDs); err != nil {
					return fmt.Errorf("record %d (%s): %w", i, rec.Slug, err)
				}
			}
			applied++
		}
		if key == "id" {
			return syncSequence(ctx, tx, r.db.Dialect, "articles")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// likeEscaper makes LIKE wildcards in user text match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func splitNames(joined string) []string {
	var names []string
	for _, name := range strings.Split(joined, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func categoryIDsByNames(ctx context.Context, q querier, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var id int64
		err := q.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: category %q", ErrUnknownReference, name)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "articles")
}

// StreamAll streams every article in bulk-load form, ordered by id
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.ArticleRecord) error) error {
	rows, err := r.db.QueryContext(ctx, r.selectSQL("")+" ORDER BY a.id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return err
		}

		categories := article.Categories
		record := &models.ArticleRecord{
			ID:              article.ID,
			Title:           article.Title,
			Subtitle:        article.Subtitle,
			Slug:            article.Slug,
			Content:         article.Content,
			Excerpt:         article.Excerpt,
			FeaturedImage:   article.FeaturedImage,
			Status:          article.Status,
			PublicationDate: article.PublicationDate,
			ExternalLink:    article.ExternalLink,
			AuthorID:        article.AuthorID,
			Categories:      &categories,
		}
		if err := callback(record); err != nil {
			return err
		}
	}

	return rows.Err()
}
