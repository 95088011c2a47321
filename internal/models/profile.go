package models

// ProfileID is the id of the single logical profile row
const ProfileID int64 = 1

// Profile holds the journalist's public bio. SocialLinks is a serialized
// JSON object kept as text.
type Profile struct {
	ID                int64  `json:"id" db:"id"`
	UserID            *int64 `json:"user_id" db:"user_id"`
	BioShort          string `json:"bio_short" db:"bio_short"`
	BioLong           string `json:"bio_long" db:"bio_long"`
	ProfessionalTitle string `json:"professional_title" db:"professional_title"`
	ProfilePhoto      string `json:"profile_photo" db:"profile_photo"`
	ContactEmail      string `json:"contact_email" db:"contact_email"`
	ContactPhone      string `json:"contact_phone" db:"contact_phone"`
	SocialLinks       string `json:"social_links" db:"social_links"`
}

// Setting is a single key/value pair
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}
