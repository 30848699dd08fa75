package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dailytrivia/backend/models"
	"github.com/sirupsen/logrus"
)

// ErrInvalidQuestionInput flags a question payload that cannot be stored;
// handlers map it to a 400 rather than a store failure.
var ErrInvalidQuestionInput = errors.New("invalid question input")

// QuestionService provides storage access for trivia questions. Questions are
// scheduled by calendar day (datetoshow) and filtered on the not-yet-done
// flag. A served question stays available for the whole day; nothing marks it
// done on read, so every visitor sees the same daily question.
type QuestionService struct {
	db  *sql.DB
	now func() time.Time
}

// NewQuestionService creates a new question service
func NewQuestionService(db *sql.DB) *QuestionService {
	return &QuestionService{db: db, now: time.Now}
}

// TodayQuestions returns the questions scheduled for the current UTC day that
// have not been retired. Returns an empty slice when none are scheduled.
func (s *QuestionService) TodayQuestions(ctx context.Context) ([]models.Question, error) {
	today := s.now().UTC().Format(dateLayout)

	query := `
		SELECT id, question, answer, options, isdone, datetoshow, created_at, updated_at
		FROM questions
		WHERE datetoshow = $1 AND isdone = FALSE
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question rows: %w", err)
	}

	return questions, nil
}

// InsertQuestions persists a batch of questions with isdone=false, returning
// the inserted rows with their options re-expanded. Options containing the
// delimiter cannot round-trip through the at-rest encoding and are rejected
// with ErrInvalidQuestionInput. The batch is all-or-nothing: a failure on any
// row rolls back the rows inserted before it, so a client retry after an
// error cannot duplicate part of the batch.
func (s *QuestionService) InsertQuestions(ctx context.Context, inputs []models.QuestionInput) ([]models.Question, error) {
	for _, input := range inputs {
		for _, option := range input.Options {
			if strings.Contains(option, ",") {
				return nil, fmt.Errorf("%w: option %q contains the delimiter and cannot be stored", ErrInvalidQuestionInput, option)
			}
		}
	}

	query := `
		INSERT INTO questions (question, answer, options, isdone, datetoshow)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id, question, answer, options, isdone, datetoshow, created_at, updated_at
	`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin questions transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := make([]models.Question, 0, len(inputs))
	for _, input := range inputs {
		row := tx.QueryRowContext(ctx, query,
			input.Question, input.Answer, models.EncodeOptions(input.Options), input.DateToShow)

		question, err := scanQuestion(row)
		if err != nil {
			return nil, fmt.Errorf("failed to insert question: %w", err)
		}
		inserted = append(inserted, *question)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit questions batch: %w", err)
	}

	logrus.WithField("count", len(inserted)).Info("Inserted questions")
	return inserted, nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(scanner rowScanner) (*models.Question, error) {
	var question models.Question
	var options string
	var dateToShow sql.NullTime

	err := scanner.Scan(
		&question.ID, &question.Question, &question.Answer, &options,
		&question.IsDone, &dateToShow, &question.CreatedAt, &question.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan question row: %w", err)
	}

	question.Options = models.DecodeOptions(options)
	if dateToShow.Valid {
		question.DateToShow = dateToShow.Time.Format(dateLayout)
	}

	return &question, nil
}
