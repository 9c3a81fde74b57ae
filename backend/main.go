package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-board/backend/internal/cache"
	"habit-board/backend/internal/config"
	"habit-board/backend/internal/database"
	"habit-board/backend/internal/handlers"
	"habit-board/backend/internal/middleware"
	"habit-board/backend/internal/monitoring"
	"habit-board/backend/internal/repositories"
	"habit-board/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Application holds all application dependencies and state
type Application struct {
	Config *config.Config
	Pool   *database.DatabasePool
	Cache  cache.Cache
	Redis  *redis.Client
	Router *gin.Engine
	Server *http.Server

	// Services
	TaskService       services.TaskService
	CompletionService services.CompletionService
	DailyNoteService  services.DailyNoteService
	NoteService       services.NoteService
	AuthService       services.AuthService
	RegisterService   services.RegisterService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing Habit Board Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	pool, err := database.NewDatabasePool(database.PoolConfigFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.Pool = pool

	migrationConfig := &repositories.MigrationConfig{
		MigrationsPath: "file://migrations",
		DBName:         cfg.Database.Name,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
	if err := repositories.RunMigrations(pool.DB, migrationConfig); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unavailable: %v (memory cache keeps serving, circuit breaker guards L2)", err)
		redisClient = nil
	} else {
		app.Redis = redisClient
		log.Println("✅ Redis connected")
	}

	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	app.Cache = cache.NewMultiLevelCache(redisCache)
	log.Println("✅ Multi-level cache initialized (Memory L1 + Redis L2)")

	// Services
	app.AuthService = services.NewAuthService(cfg.Auth)
	app.RegisterService = services.NewRegisterService()
	app.DailyNoteService = services.NewDailyNoteService()
	app.NoteService = services.NewNoteService()

	app.TaskService = services.NewCachedTaskService(services.NewTaskService(), app.Cache)
	app.CompletionService = services.NewCachedCompletionService(services.NewCompletionService(), app.Cache)
	log.Println("✅ All services initialized")

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return pool.Health()
	})
	monitoring.RegisterHealthCheck("cache", func(ctx context.Context) error {
		return app.Cache.Health()
	})

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(middleware.RecoveryWithLog())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.SecureHeader())

	rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
	if app.Redis != nil {
		limiter := middleware.NewDistributedRateLimiter(app.Redis)
		r.Use(limiter.CreateMiddleware("api", &middleware.RateLimit{
			Rate:    app.Config.RateLimit.RequestsPerMin,
			Window:  time.Minute,
			KeyFunc: middleware.IPKeyFunc,
		}))
	} else {
		r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health and monitoring endpoints (no auth required)
	r.GET("/health", app.healthHandler())
	r.GET("/ready", app.readinessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	api := r.Group("/api")

	// Public authentication routes
	authRoutes := api.Group("/auth")
	{
		authHandler := handlers.NewAuthHandler(app.Pool.DB, app.AuthService)
		registrationHandler := handlers.NewRegisterHandler(app.Pool.DB, app.RegisterService)

		authRoutes.POST("/register", registrationHandler.Registration)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.Auth(middleware.AuthConfig{JWTSecret: app.Config.Auth.JWTSecret}))
	{
		taskHandler := handlers.NewTaskHandler(app.Pool.DB, app.TaskService)
		taskRoutes := protected.Group("/tasks")
		{
			taskRoutes.GET("", taskHandler.ListTasks)
			taskRoutes.POST("", taskHandler.CreateTask)
			taskRoutes.PUT("/reorder", taskHandler.ReorderTasks)
			taskRoutes.GET("/:id", taskHandler.GetTask)
			taskRoutes.PATCH("/:id", taskHandler.UpdateTask)
			taskRoutes.DELETE("/:id", taskHandler.DeleteTask)
		}

		completionHandler := handlers.NewCompletionHandler(app.Pool.DB, app.CompletionService)
		protected.GET("/completions", completionHandler.ListCompletions)
		protected.POST("/completions", completionHandler.ToggleCompletion)

		dailyNoteHandler := handlers.NewDailyNoteHandler(app.Pool.DB, app.DailyNoteService)
		protected.GET("/notes", dailyNoteHandler.GetNote)
		protected.POST("/notes", dailyNoteHandler.SaveNote)
		protected.DELETE("/notes", dailyNoteHandler.DeleteNote)

		noteHandler := handlers.NewNoteHandler(app.Pool.DB, app.NoteService)
		noteRoutes := protected.Group("/user-notes")
		{
			noteRoutes.GET("", noteHandler.ListNotes)
			noteRoutes.POST("", noteHandler.CreateNote)
			noteRoutes.GET("/:id", noteHandler.GetNote)
			noteRoutes.PUT("/:id", noteHandler.UpdateNote)
			noteRoutes.DELETE("/:id", noteHandler.DeleteNote)
		}

		cacheHandler := handlers.NewCacheHandler(app.Cache)
		cacheRoutes := protected.Group("/cache")
		{
			cacheRoutes.GET("/stats", cacheHandler.GetCacheStats)
			cacheRoutes.GET("/health", cacheHandler.GetCacheHealth)
			cacheRoutes.DELETE("/clear", cacheHandler.ClearCache)
		}
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			log.Printf("⚠️  Error closing cache: %v", err)
		}
	}

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if app.Pool != nil {
		if err := app.Pool.Close(); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}

func (app *Application) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "habit-board-backend",
		}

		if err := app.Pool.Health(); err != nil {
			health["status"] = "unhealthy"
			health["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		health["database"] = "up"

		checks := monitoring.RunHealthChecks()
		for name, check := range checks {
			health[name] = check.Status
		}

		c.JSON(http.StatusOK, health)
	}
}

func (app *Application) readinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Pool.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"reason": "database not ready",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ready": true,
		})
	}
}
