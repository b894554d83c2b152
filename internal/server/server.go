// Package server contains the HTTP handlers for the blog's endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/credentials"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Manager
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	authService    *service.AuthService
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Sessions live in Redis when it is reachable. A single-process
	// deployment falls back to the in-memory store, matching the legacy
	// system's process-local sessions.
	var redisClient *redis.Client
	var store session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			middleware.Logger.Warn("redis unreachable, falling back to in-memory sessions",
				"addr", cfg.RedisURL, "error", err)
			_ = client.Close()
		} else {
			redisClient = client
			store = session.NewRedisStore(client)
		}
	}

	return NewServerWithDeps(cfg, db, redisClient, store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store session.Store) (*Server, error) {
	scheme, err := credentials.ForName(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	prom := middleware.InitMetrics("inkwell")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		sessions: session.NewManager(store, cfg.SessionSecret,
			time.Duration(cfg.SessionTTLHours)*time.Hour),
		userRepo: userRepo,
		postRepo: postRepo,
	}
	server.authService = service.NewAuthService(userRepo, scheme)
	server.postService = service.NewPostService(postRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Tracing spans for every request
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173,http://localhost:3000",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	// Resolve the session cookie into the current user for every route.
	app.Use(s.WithUser())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public pages
	app.Get("/", s.Index)
	app.Get("/register", s.RegisterPage)
	app.Post("/register", s.Register)
	app.Get("/login", s.LoginPage)
	app.Post("/login", s.Login)
	app.Get("/post/:id", s.ShowPost)
	app.Get("/user/:username", s.AuthorPosts)
	app.Get("/stats", s.Stats)

	protected := app.Group("", s.LoginRequired())
	protected.Get("/logout", s.LogoutPage)
	protected.Post("/logout", s.Logout)
	protected.Get("/create", s.CreatePage)
	protected.Post("/create", s.CreatePost)
	protected.Get("/edit/:id", s.EditPage)
	protected.Post("/edit/:id", s.EditPost)
	protected.Post("/delete/:id", s.DeletePost)
}

// WithUser resolves the session cookie into the acting user and stores it
// in locals. Resolution never fails a request; anonymous visitors simply
// carry no user.
func (s *Server) WithUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.sessions.Resolve(c)
		if !ok {
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			// Stale session for a user that no longer exists.
			return c.Next()
		}

		c.Locals(localsUserKey, user)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// LoginRequired redirects anonymous visitors to the login page. Must run
// after WithUser.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return redirectWithMessage(c, "/login", "Please log in to access this page")
		}
		return c.Next()
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	sessionStatus := "healthy"
	if err := s.sessions.Ping(c); err != nil {
		sessionStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || sessionStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"sessions": sessionStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell Blog",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
