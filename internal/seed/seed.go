// Package seed populates an empty store with the default admin account,
// profile, settings, categories and sample articles.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Options controls the seeded admin account
type Options struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	PasswordCost  int // bcrypt cost, defaults to bcrypt.DefaultCost
}

// Run seeds the store once. The admin username is the guard: when it
// already exists Run returns (false, nil) without writing anything.
// Everything happens in a single transaction, so a failed run leaves no
// partial data and the next run tries again.
func Run(ctx context.Context, db *database.DB, opts Options, log zerolog.Logger) (bool, error) {
	log = log.With().Str("component", "seed").Logger()

	cost := opts.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), cost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	seeded := false
	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, opts.AdminUsername,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check seed guard: %w", err)
		}
		if exists {
			return nil
		}

		var adminID int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`,
			opts.AdminUsername, opts.AdminEmail, string(hash), models.DefaultRole,
		).Scan(&adminID)
		if err != nil {
			return fmt.Errorf("failed to insert admin user: %w", err)
		}

		if err := insertProfile(ctx, tx, adminID, opts.AdminEmail); err != nil {
			return err
		}

		for _, s := range defaultSettings {
			if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES ($1, $2)`, s.Key, s.Value); err != nil {
				return fmt.Errorf("failed to insert setting %s: %w", s.Key, err)
			}
		}

		categoryIDs := make([]int64, 0, len(defaultCategories))
		for _, c := range defaultCategories {
			var id int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO categories (name, slug, description, color) VALUES ($1, $2, $3, $4) RETURNING id`,
				c.Name, c.Slug, c.Description, c.Color,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to insert category %s: %w", c.Slug, err)
			}
			categoryIDs = append(categoryIDs, id)
		}

		for i, a := range sampleArticles {
			var id int64
			err := tx.QueryRowContext(ctx, `
				INSERT INTO articles (title, subtitle, slug, excerpt, content, status, publication_date, author_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id`,
				a.Title, a.Subtitle, a.Slug, a.Excerpt, a.Content, a.Status, a.PublicationDate, adminID,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to insert article %s: %w", a.Slug, err)
			}

			categoryID := categoryIDs[i%len(categoryIDs)]
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO article_categories (article_id, category_id) VALUES ($1, $2)`, id, categoryID,
			); err != nil {
				return fmt.Errorf("failed to link article %s: %w", a.Slug, err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Seeding failed, nothing was written")
		return false, err
	}

	if seeded {
		log.Info().
			Str("admin", opts.AdminUsername).
			Int("categories", len(defaultCategories)).
			Int("articles", len(sampleArticles)).
			Msg("Store seeded")
	} else {
		log.Debug().Msg("Store already seeded, skipping")
	}
	return seeded, nil
}

func insertProfile(ctx context.Context, tx *sql.Tx, adminID int64, email string) error {
	p := defaultProfile
	_, err := tx.ExecContext(ctx, `
		INSERT INTO profile (user_id, bio_short, bio_long, professional_title, contact_email, contact_phone, social_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		adminID, p.BioShort, p.BioLong, p.ProfessionalTitle, email, p.ContactPhone, p.SocialLinks,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}
