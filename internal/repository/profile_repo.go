package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

// profileRepo manages the single logical profile row (id 1)
type profileRepo struct {
	db *database.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *database.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// Get returns profile id 1, or nil when it has not been created
func (r *profileRepo) Get(ctx context.Context) (*models.Profile, error) {
	query := `
		SELECT id, user_id, bio_short, bio_long, professional_title, profile_photo,
			contact_email, contact_phone, social_links
		FROM profile WHERE id = $1
	`
	var (
		p      models.Profile
		userID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, models.ProfileID).Scan(
		&p.ID, &userID, &p.BioShort, &p.BioLong, &p.ProfessionalTitle, &p.ProfilePhoto,
		&p.ContactEmail, &p.ContactPhone, &p.SocialLinks,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.UserID = int64Ptr(userID)
	return &p, nil
}

// Update overwrites the editable profile fields of id 1. It reports false
// when the row does not exist.
func (r *profileRepo) Update(ctx context.Context, p *models.Profile) (bool, error) {
	query := `
		UPDATE profile SET
			bio_short = $1, bio_long = $2, professional_title = $3, profile_photo = $4,
			contact_email = $5, contact_phone = $6, social_links = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		p.BioShort, p.BioLong, p.ProfessionalTitle, p.ProfilePhoto,
		p.ContactEmail, p.ContactPhone, p.SocialLinks, models.ProfileID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// UpsertBatch inserts or updates profile rows by id in one transaction.
// A record without an id targets the single profile row.
func (r *profileRepo) UpsertBatch(ctx context.Context, profiles []*models.Profile, key string) (int, error) {
	if err := checkKey(key, "id"); err != nil {
		return 0, err
	}
	if len(profiles) == 0 {
		return 0, nil
	}

	query := upsertSQL("profile", []string{
		"id", "user_id", "bio_short", "bio_long", "professional_title", "profile_photo",
		"contact_email", "contact_phone", "social_links",
	}, key)

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, p := range profiles {
			if p.ID == 0 {
				p.ID = models.ProfileID
			}
			if p.SocialLinks == "" {
				p.SocialLinks = "{}"
			}
			err := tx.QueryRowContext(ctx, query,
				p.ID, nullInt64(p.UserID), p.BioShort, p.BioLong, p.ProfessionalTitle, p.ProfilePhoto,
				p.ContactEmail, p.ContactPhone, p.SocialLinks,
			).Scan(&p.ID)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, translateError(err))
			}
		}
		return syncSequence(ctx, tx, r.db.Dialect, "profile")
	})
	if err != nil {
		return 0, err
	}
	return len(profiles), nil
}
