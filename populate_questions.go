//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dailytrivia/backend/config"
	"github.com/dailytrivia/backend/database"
	"github.com/dailytrivia/backend/models"
	"github.com/dailytrivia/backend/services"
)

// Bulk-loads trivia questions from trivia_questions.json into the store.
// Run with: go run populate_questions.go
func main() {
	cfg := config.LoadConfig()

	data, err := os.ReadFile("trivia_questions.json")
	if err != nil {
		fmt.Printf("Failed to read questions file: %v\n", err)
		os.Exit(1)
	}

	var questions []models.QuestionInput
	if err := json.Unmarshal(data, &questions); err != nil {
		fmt.Printf("Failed to parse questions file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d questions to insert\n", len(questions))

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx := context.Background()

	steps, err := database.LoadMigrationSteps(cfg.MigrationsDir, database.DefaultMigrationFiles)
	if err != nil {
		fmt.Printf("Failed to load migrations: %v\n", err)
		os.Exit(1)
	}
	migrations := database.NewMigrationRunner(db, steps)
	if err := migrations.EnsureReady(ctx); err != nil {
		fmt.Printf("Failed to apply migrations: %v\n", err)
		os.Exit(1)
	}

	questionService := services.NewQuestionService(db)

	// Insert in batches to avoid overwhelming the database
	batchSize := 100
	for i := 0; i < len(questions); i += batchSize {
		end := i + batchSize
		if end > len(questions) {
			end = len(questions)
		}

		if _, err := questionService.InsertQuestions(ctx, questions[i:end]); err != nil {
			fmt.Printf("Error inserting batch %d: %v\n", i/batchSize+1, err)
		} else {
			fmt.Printf("Successfully inserted batch %d\n", i/batchSize+1)
		}
	}

	fmt.Println("Finished populating questions")
}
