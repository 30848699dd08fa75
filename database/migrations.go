package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dailytrivia/backend/shared"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultMigrationFiles is the fixed, ordered list of schema migrations.
// Order is the correctness contract: each step may assume the effects of every
// step before it, and every step is written to be safe to reapply.
var DefaultMigrationFiles = []string{
	"create_questions_table.sql",
	"add_options_column.sql",
	"add_is_done_column.sql",
	"create_feedback_table.sql",
	"add_date_to_show_column.sql",
}

// MigrationStep is a single named schema-change statement
type MigrationStep struct {
	Name string
	SQL  string
}

// LoadMigrationSteps reads the ordered migration files from dir
func LoadMigrationSteps(dir string, files []string) ([]MigrationStep, error) {
	steps := make([]MigrationStep, 0, len(files))
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		steps = append(steps, MigrationStep{Name: name, SQL: string(content)})
	}
	return steps, nil
}

// MigrationRunner applies the migration sequence lazily, at most once per
// process lifetime. Concurrent cold-start callers share a single in-flight
// apply via singleflight; a step failure aborts the sequence and leaves the
// runner un-applied so the next caller retries from the first step.
type MigrationRunner struct {
	db    *sql.DB
	steps []MigrationStep

	mutex   sync.RWMutex
	applied bool
	sf      singleflight.Group
}

// NewMigrationRunner creates a runner over a fixed ordered step list
func NewMigrationRunner(db *sql.DB, steps []MigrationStep) *MigrationRunner {
	return &MigrationRunner{db: db, steps: steps}
}

// Applied reports whether the full sequence has completed in this process
func (r *MigrationRunner) Applied() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.applied
}

// EnsureReady applies the migration sequence if it has not completed yet.
// Safe to call from every request handler that touches the store: after the
// first success it is a cheap flag check.
func (r *MigrationRunner) EnsureReady(ctx context.Context) error {
	if r.Applied() {
		return nil
	}

	_, err, _ := r.sf.Do("migrate", func() (interface{}, error) {
		// A caller that queued behind a successful apply must not re-run it.
		if r.Applied() {
			return nil, nil
		}
		if err := r.apply(ctx); err != nil {
			return nil, err
		}
		r.mutex.Lock()
		r.applied = true
		r.mutex.Unlock()
		return nil, nil
	})
	return err
}

func (r *MigrationRunner) apply(ctx context.Context) error {
	for _, step := range r.steps {
		if _, err := r.db.ExecContext(ctx, step.SQL); err != nil {
			logrus.WithFields(logrus.Fields{
				"migration_step": step.Name,
			}).WithError(err).Error("Migration step failed")
			return &shared.MigrationError{Step: step.Name, Err: err}
		}
		logrus.WithField("migration_step", step.Name).Info("Applied migration step")
	}

	logrus.WithField("steps", len(r.steps)).Info("All migrations completed successfully")
	return nil
}
