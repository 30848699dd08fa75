package main

import (
	"log"
	"time"

	"github.com/dailytrivia/backend/config"
	"github.com/dailytrivia/backend/database"
	"github.com/dailytrivia/backend/handlers"
	"github.com/dailytrivia/backend/jobs"
	"github.com/dailytrivia/backend/services"
	"github.com/dailytrivia/backend/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Load the ordered migration steps; they are applied lazily by the first
	// request that touches the store.
	steps, err := database.LoadMigrationSteps(cfg.MigrationsDir, database.DefaultMigrationFiles)
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}
	migrations := database.NewMigrationRunner(db, steps)

	// Initialize services
	historyConfig := shared.NewDefaultServiceConfiguration().HistoryAPI
	historyConfig.URL = cfg.HistoryAPIURL
	historyConfig.FetchTimeout = cfg.GetHistoryFetchTimeout()

	historyService := services.NewHistoryServiceWithConfig(&historyConfig)
	questionService := services.NewQuestionService(db)
	feedbackService := services.NewFeedbackService(db)
	emailValidator := services.NewEmailValidatorWithOptions(cfg.EmailMXCheckEnabled())

	log.Println("Daily trivia backend services initialized:")
	log.Printf("  - History service (upstream: %s, timeout: %v)", historyConfig.URL, historyConfig.FetchTimeout)
	log.Printf("  - Migration runner (%d steps, lazy)", len(steps))
	log.Printf("  - Email validator (mx check: %v)", cfg.EmailMXCheckEnabled())

	// Initialize handlers
	historyHandler := handlers.NewHistoryHandler(historyService)
	questionHandler := handlers.NewQuestionHandler(questionService, migrations)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, emailValidator, migrations)

	// Initialize jobs
	warmupJob := jobs.NewHistoryWarmupJob(historyService)

	// Start background jobs: warm the cache on startup, then re-prime hourly.
	// The cache is keyed by day, so ticks within a day are cheap hits and the
	// first tick after midnight UTC refreshes the slot.
	go func() {
		go warmupJob.Run()

		warmupTicker := time.NewTicker(1 * time.Hour)
		for range warmupTicker.C {
			warmupJob.Run()
		}
	}()

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		stats := database.GetConnectionStats(db)
		return c.JSON(fiber.Map{
			"status":             "ok",
			"timestamp":          time.Now().Unix(),
			"migrations_applied": migrations.Applied(),
			"history_cache":      historyService.Metrics().Snapshot(),
			"db_open_conns":      stats.OpenConnections,
		})
	})

	// Routes
	api := app.Group("/api/v1")

	// History Routes
	api.Get("/history", historyHandler.GetTodayHistory)
	api.Get("/history/random", historyHandler.GetRandomHistory)

	// Question Routes
	api.Get("/questions", questionHandler.GetTodayQuestions)
	api.Post("/questions", questionHandler.CreateQuestions)

	// Feedback Route
	api.Post("/feedback", feedbackHandler.SubmitFeedback)

	// Admin Routes
	admin := api.Group("/admin")
	// TODO: Add auth middleware
	admin.Get("/feedback", feedbackHandler.ListFeedback)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
