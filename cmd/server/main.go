package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/tamaki/restaurant-ops-api/internal/config"
	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/database"
	"github.com/tamaki/restaurant-ops-api/internal/handlers"
	"github.com/tamaki/restaurant-ops-api/internal/middleware"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default service periods on first boot. Fails fast if any
	// stored period carries a malformed clock.
	if err := database.SeedPeriods(); err != nil {
		log.Fatalf("Failed to seed periods: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	taskRepo := repository.NewTaskDefinitionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	missingRepo := repository.NewMissingTaskRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	periodService := services.NewPeriodService(periodRepo)
	taskService := services.NewTaskService(taskRepo, periodRepo)
	submissionService := services.NewSubmissionService(taskRepo, submissionRepo, cfg.BusinessDayCutoffHour)
	checklistService := services.NewChecklistService(periodRepo, taskRepo, submissionRepo, cfg.BusinessDayCutoffHour)
	dashboardService := services.NewDashboardService(periodRepo, taskRepo, submissionRepo, missingRepo)
	backfillService := services.NewBackfillService(periodRepo, taskRepo, submissionRepo, missingRepo, cfg.BusinessDayCutoffHour)
	inventoryService := services.NewInventoryService(inventoryRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	periodHandler := handlers.NewPeriodHandler(periodService)
	taskHandler := handlers.NewTaskHandler(taskService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Nightly settle: once the business day rolls over, record the
	// previous date's missing tasks.
	scheduler := cron.New()
	backfillSpec := fmt.Sprintf("5 %d * * *", cfg.BusinessDayCutoffHour)
	if _, err := scheduler.AddFunc(backfillSpec, func() {
		if err := backfillService.RunForClosedDate(time.Now()); err != nil {
			log.Printf("Backfill failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule backfill: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Restaurant Ops API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		executiveOnly := middleware.RequireRole(models.RoleExecutive)

		// Period routes: readable by any staff, managed by executives.
		periods := api.Group("/periods")
		periods.Use(middleware.RequireAuth())
		{
			periods.GET("", periodHandler.ListPeriods)
			periods.POST("", executiveOnly, periodHandler.CreatePeriod)
			periods.PATCH("/:id", executiveOnly, periodHandler.UpdatePeriod)
			periods.DELETE("/:id", executiveOnly, periodHandler.DeletePeriod)
		}

		// Task catalog routes: readable by any staff, managed by executives.
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", executiveOnly, taskHandler.CreateTask)
			tasks.PATCH("/:id", executiveOnly, taskHandler.UpdateTask)
			tasks.DELETE("/:id", executiveOnly, taskHandler.DeleteTask)
		}

		// Submission routes (any authenticated staff; role checks live
		// in the service).
		submissions := api.Group("/submissions")
		submissions.Use(middleware.RequireAuth(), middleware.RequireRole(models.AllRoles()...))
		{
			submissions.POST("", submissionHandler.CreateSubmission)
			submissions.GET("", submissionHandler.ListSubmissions)
			submissions.POST("/:id/review", submissionHandler.ReviewSubmission)
		}

		// Checklist routes
		checklist := api.Group("/checklist")
		checklist.Use(middleware.RequireAuth(), middleware.RequireRole(models.AllRoles()...))
		{
			checklist.GET("/snapshot", checklistHandler.GetSnapshot)
			checklist.GET("/board", checklistHandler.GetBoard)
		}

		// Dashboard routes (executives only)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth(), executiveOnly)
		{
			dashboard.GET("/history", dashboardHandler.GetHistory)
			dashboard.GET("/missing", dashboardHandler.GetMissing)
			dashboard.GET("/export", dashboardHandler.ExportHistory)
		}

		// Inventory routes (managers and executives)
		inventory := api.Group("/inventory")
		inventory.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleManager, models.RoleExecutive))
		{
			inventory.GET("/items", inventoryHandler.ListItems)
			inventory.POST("/items", inventoryHandler.CreateItem)
			inventory.POST("/items/:id/batches", inventoryHandler.AddBatch)
			inventory.POST("/items/:id/consume", inventoryHandler.Consume)
			inventory.GET("/items/:id/cost", inventoryHandler.GetCost)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
