package models

// Bulk-loadable resources
const (
	ResourceArticles   = "articles"
	ResourceCategories = "categories"
	ResourceTags       = "tags"
	ResourceProfile    = "profile"
)

// ImportResult is returned after a bulk batch has been applied
type ImportResult struct {
	Resource string `json:"resource"`
	Key      string `json:"key"`
	Applied  int    `json:"applied"`
}

// DefaultImportKey returns the natural key used when the caller names none
func DefaultImportKey(resource string) string {
	if resource == ResourceProfile {
		return "id"
	}
	return "slug"
}
