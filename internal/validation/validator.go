package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/journalist-portfolio-api/internal/models"
)

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	// category names are joined with commas in article reads and bulk files
	noCommaRegex = regexp.MustCompile(`^[^,]*$`)

	validStatus = []interface{}{models.StatusDraft, models.StatusPublished, models.StatusArchived}
)

// ValidationError represents a single validation error
type ValidationError struct {
	Record  int    `json:"record,omitempty"` // 1-based position in a bulk batch
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("record %d: %s: %s", e.Record, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// slugRules are shared by every resource addressed by slug
func slugRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("slug is required"),
		validation.Length(1, 200),
		validation.Match(slugRegex).Error("slug must be kebab-case (lowercase letters, numbers, hyphens)"),
	}
}

// publicationDate accepts YYYY-MM-DD or RFC 3339
var publicationDate = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return errors.New("must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
})

// jsonObject requires a serialized JSON object when set
var jsonObject = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return errors.New("must be a JSON object")
	}
	return nil
})

// ValidateLogin validates a login request
func ValidateLogin(req *models.LoginRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.Required.Error("username is required")),
		validation.Field(&req.Password, validation.Required.Error("password is required")),
	)
}

// ValidateArticle validates the editable article fields
func ValidateArticle(in *models.ArticleInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required.Error("title is required"), validation.Length(1, 500)),
		validation.Field(&in.Slug, slugRules()...),
		validation.Field(&in.Status, validation.In(validStatus...).Error("status must be one of: draft, published, archived")),
		validation.Field(&in.PublicationDate, publicationDate),
		validation.Field(&in.ExternalLink, validation.NilOrNotEmpty, is.URL),
	)
}

// ValidateArticleRecord validates one article of a bulk batch
func ValidateArticleRecord(rec *models.ArticleRecord) error {
	return validation.ValidateStruct(rec,
		validation.Field(&rec.Title, validation.Required.Error("title is required")),
		validation.Field(&rec.Slug, slugRules()...),
		validation.Field(&rec.Status, validation.In(validStatus...).Error("status must be one of: draft, published, archived")),
		validation.Field(&rec.PublicationDate, publicationDate),
		validation.Field(&rec.ExternalLink, validation.NilOrNotEmpty, is.URL),
	)
}

// ValidateCategory validates a category
func ValidateCategory(c *models.Category) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
			validation.Match(noCommaRegex).Error("name must not contain a comma"),
		),
		validation.Field(&c.Slug, slugRules()...),
		validation.Field(&c.Color, validation.Match(colorRegex).Error("color must be a hex value like #2D5016")),
	)
}

// ValidateTag validates a tag
func ValidateTag(t *models.Tag) error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
		validation.Field(&t.Slug, slugRules()...),
	)
}

// ValidateMedia validates a media library entry
func ValidateMedia(m *models.Media) error {
	return validation.ValidateStruct(m,
		validation.Field(&m.URL, validation.Required.Error("url is required"), is.URL),
		validation.Field(&m.Filename, validation.Length(0, 255)),
	)
}

// ValidateProfile validates the profile fields
func ValidateProfile(p *models.Profile) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ContactEmail, is.EmailFormat),
		validation.Field(&p.SocialLinks, jsonObject),
	)
}

// ValidateContact validates a contact form submission
func ValidateContact(req *models.ContactRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required.Error("name is required"), validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required.Error("email is required"), is.EmailFormat),
		validation.Field(&req.Subject, validation.Length(0, 300)),
		validation.Field(&req.Message, validation.Required.Error("message is required"), validation.Length(1, 10000)),
	)
}

// ValidateSettings rejects empty keys
func ValidateSettings(settings map[string]string) error {
	if len(settings) == 0 {
		return validation.Errors{"settings": errors.New("at least one key is required")}
	}
	for key := range settings {
		if key == "" {
			return validation.Errors{"key": errors.New("setting keys must not be empty")}
		}
	}
	return nil
}

// ToValidationErrors flattens ozzo errors into a sorted list. record is
// the 1-based batch position, or 0 outside a batch.
func ToValidationErrors(record int, err error) []ValidationError {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Record: record, Field: "record", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for field, fe := range fieldErrs {
		out = append(out, ValidationError{Record: record, Field: field, Message: fe.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// IsValidationError reports whether err came from a validation rule
func IsValidationError(err error) bool {
	var fieldErrs validation.Errors
	var single ValidationError
	return errors.As(err, &fieldErrs) || errors.As(err, &single)
}

// Validator tracks natural keys across one bulk batch so a key cannot
// appear twice in the same batch
type Validator struct {
	seen map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{seen: make(map[string]bool)}
}

// CheckKey records value for the batch and fails when it was already seen
func (v *Validator) CheckKey(record int, key, value string) error {
	if value == "" || value == "0" {
		return ValidationError{Record: record, Field: key, Message: key + " is required"}
	}
	if v.seen[value] {
		return ValidationError{Record: record, Field: key, Message: fmt.Sprintf("duplicate %s %q in batch", key, value)}
	}
	v.seen[value] = true
	return nil
}
