//go:build ignore

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dailytrivia/backend/config"
	"github.com/dailytrivia/backend/database"
	"github.com/dailytrivia/backend/services"
	"github.com/dailytrivia/backend/shared"
)

func main() {
	fmt.Printf("Daily Trivia Health Check - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println(strings.Repeat("=", 50))

	cfg := config.LoadConfig()
	ctx := context.Background()

	healthScore := 0
	totalTests := 3

	// Test 1: History upstream API
	fmt.Print("History API: ")
	historyConfig := shared.NewDefaultServiceConfiguration().HistoryAPI
	historyConfig.URL = cfg.HistoryAPIURL
	historyService := services.NewHistoryServiceWithConfig(&historyConfig)
	if events, _, err := historyService.TodayEvents(ctx); err != nil {
		fmt.Printf("FAILED (%v)\n", err)
	} else {
		fmt.Printf("OK (%d events)\n", len(events))
		healthScore++
	}

	// Test 2: Database
	fmt.Print("Database: ")
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("FAILED (%v)\n", err)
	} else {
		fmt.Println("OK")
		healthScore++

		// Test 3: Today's questions
		fmt.Print("Today's questions: ")
		steps, err := database.LoadMigrationSteps(cfg.MigrationsDir, database.DefaultMigrationFiles)
		if err != nil {
			fmt.Printf("FAILED (%v)\n", err)
		} else {
			migrations := database.NewMigrationRunner(db, steps)
			if err := migrations.EnsureReady(ctx); err != nil {
				fmt.Printf("FAILED (%v)\n", err)
			} else {
				questionService := services.NewQuestionService(db)
				if questions, err := questionService.TodayQuestions(ctx); err != nil {
					fmt.Printf("FAILED (%v)\n", err)
				} else {
					fmt.Printf("OK (%d questions)\n", len(questions))
					healthScore++
				}
			}
		}
		database.Close(db)
	}

	// Overall health
	fmt.Println(strings.Repeat("-", 50))
	healthPercent := float64(healthScore) / float64(totalTests) * 100

	if healthScore == totalTests {
		fmt.Printf("SYSTEM HEALTHY: %d/%d tests passed (%.0f%%)\n", healthScore, totalTests, healthPercent)
	} else if healthScore >= totalTests/2 {
		fmt.Printf("SYSTEM DEGRADED: %d/%d tests passed (%.0f%%)\n", healthScore, totalTests, healthPercent)
	} else {
		fmt.Printf("SYSTEM UNHEALTHY: %d/%d tests passed (%.0f%%)\n", healthScore, totalTests, healthPercent)
	}
}
