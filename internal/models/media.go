package models

import "time"

// Media is an externally hosted asset referenced by URL
type Media struct {
	ID         int64     `json:"id" db:"id"`
	Filename   string    `json:"filename" db:"filename"`
	URL        string    `json:"url" db:"url"`
	Type       string    `json:"type" db:"type"`
	AltText    string    `json:"alt_text" db:"alt_text"`
	Caption    string    `json:"caption" db:"caption"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}
