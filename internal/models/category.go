package models

// Category groups articles; name and slug are both unique
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	Color       string `json:"color" db:"color"`
}

// Tag labels articles; name and slug are both unique
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// CategorySlugs is the body of PUT /articles/:slug/categories
type CategorySlugs struct {
	Categories []string `json:"categories"`
}

// TagSlugs is the body of PUT /articles/:slug/tags
type TagSlugs struct {
	Tags []string `json:"tags"`
}
