package repository

import (
	"context"

	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/models"
)

type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact submission repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

// Create appends a submission with status unread
func (r *contactRepo) Create(ctx context.Context, s *models.ContactSubmission) (int64, error) {
	if s.Status == "" {
		s.Status = models.ContactStatusUnread
	}
	query := `
		INSERT INTO contact_submissions (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, s.Name, s.Email, s.Subject, s.Message, s.Status).Scan(&id); err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}

// List returns submissions newest first
func (r *contactRepo) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at, status
		FROM contact_submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]*models.ContactSubmission, 0)
	for rows.Next() {
		var s models.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, timeValue{&s.CreatedAt}, &s.Status); err != nil {
			return nil, err
		}
		submissions = append(submissions, &s)
	}
	return submissions, rows.Err()
}

func (r *contactRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "contact_submissions")
}
