package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dailytrivia/backend/models"
	"github.com/sirupsen/logrus"
)

// FeedbackService persists visitor feedback
type FeedbackService struct {
	db *sql.DB
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(db *sql.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// SubmitFeedback stores one feedback entry
func (s *FeedbackService) SubmitFeedback(ctx context.Context, input *models.FeedbackInput) error {
	query := `INSERT INTO feedback (name, email, feedback) VALUES ($1, $2, $3)`

	if _, err := s.db.ExecContext(ctx, query, input.Name, input.Email, input.Feedback); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	logrus.WithField("name", input.Name).Info("Stored feedback entry")
	return nil
}

// RecentFeedback returns the newest feedback entries, capped at limit
func (s *FeedbackService) RecentFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	query := `
		SELECT id, name, email, feedback, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	entries := make([]models.Feedback, 0)
	for rows.Next() {
		var entry models.Feedback
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Email, &entry.Feedback, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}

	return entries, nil
}
