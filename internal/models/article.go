package models

import (
	"time"
)

// Article statuses. Any status may be set by a direct update; there is no
// enforced transition order.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Article represents a portfolio piece. Categories is a read-model
// projection: the comma-joined names of the linked categories.
type Article struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Subtitle        string    `json:"subtitle" db:"subtitle"`
	Slug            string    `json:"slug" db:"slug"`
	Content         string    `json:"content" db:"content"`
	Excerpt         string    `json:"excerpt" db:"excerpt"`
	FeaturedImage   string    `json:"featured_image" db:"featured_image"`
	Status          string    `json:"status" db:"status"`
	PublicationDate string    `json:"publication_date" db:"publication_date"`
	ExternalLink    *string   `json:"external_link" db:"external_link"`
	AuthorID        *int64    `json:"author_id" db:"author_id"`
	ViewsCount      int       `json:"views_count" db:"views_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	Categories      string    `json:"categories" db:"-"`
}

// ArticleInput is the flat field set accepted by POST /articles and
// PUT /articles/:slug
type ArticleInput struct {
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle"`
	Slug            string  `json:"slug"`
	Content         string  `json:"content"`
	Excerpt         string  `json:"excerpt"`
	FeaturedImage   string  `json:"featured_image"`
	Status          string  `json:"status"`
	PublicationDate string  `json:"publication_date"`
	ExternalLink    *string `json:"external_link"`
	AuthorID        *int64  `json:"author_id"`
}

// ToArticle converts the input into an article, defaulting the status
func (in *ArticleInput) ToArticle() *Article {
	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	return &Article{
		Title:           in.Title,
		Subtitle:        in.Subtitle,
		Slug:            in.Slug,
		Content:         in.Content,
		Excerpt:         in.Excerpt,
		FeaturedImage:   in.FeaturedImage,
		Status:          status,
		PublicationDate: in.PublicationDate,
		ExternalLink:    in.ExternalLink,
		AuthorID:        in.AuthorID,
	}
}

// ArticleFilter narrows the article listing. The zero value lists everything.
type ArticleFilter struct {
	Category string // category name or slug
	Query    string // case-insensitive substring of title or excerpt
}

// ArticleRecord is one element of a bulk-load file. Categories, when set,
// is the comma-joined list of category names the article is linked to.
type ArticleRecord struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle"`
	Slug            string  `json:"slug"`
	Content         string  `json:"content"`
	Excerpt         string  `json:"excerpt"`
	FeaturedImage   string  `json:"featured_image"`
	Status          string  `json:"status"`
	PublicationDate string  `json:"publication_date"`
	ExternalLink    *string `json:"external_link,omitempty"`
	AuthorID        *int64  `json:"author_id,omitempty"`
	Categories      *string `json:"categories,omitempty"`
}
