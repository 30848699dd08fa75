package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Question is a trivia question as served over the API. Options are stored in
// Postgres as a single comma-delimited string and expanded on the way out.
type Question struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Options    []string  `json:"options"`
	IsDone     bool      `json:"isdone"`
	DateToShow string    `json:"datetoshow"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// QuestionInput is the wire shape accepted by POST /questions
type QuestionInput struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Options    []string `json:"options"`
	DateToShow string   `json:"dateToShow"`
}

// EncodeOptions joins an option list into the at-rest delimited form
func EncodeOptions(options []string) string {
	return strings.Join(options, ", ")
}

// DecodeOptions expands the at-rest delimited form back into an option list,
// trimming incidental whitespace around each entry. An empty stored value
// decodes to an empty list.
func DecodeOptions(stored string) []string {
	if stored == "" {
		return []string{}
	}

	parts := strings.Split(stored, ",")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		options = append(options, strings.TrimSpace(part))
	}
	return options
}
