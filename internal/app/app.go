package app

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "jobmarket_backend/docs"

	"jobmarket_backend/database"
	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/email"
	"jobmarket_backend/internal/handlers"
	"jobmarket_backend/internal/logger"
	"jobmarket_backend/internal/middleware"
	"jobmarket_backend/internal/models"
	"jobmarket_backend/internal/ratelimit"
	"jobmarket_backend/internal/repositories"
	"jobmarket_backend/internal/routes"
	"jobmarket_backend/internal/services"
	"jobmarket_backend/internal/storage"
	"jobmarket_backend/internal/validator"
	"jobmarket_backend/internal/workers"
	"jobmarket_backend/pkg/apperrors"
	"jobmarket_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Deps are the connections SetupRouter builds on. Run opens them from the
// configuration; tests pass their own.
type Deps struct {
	DB      *gorm.DB
	Storage storage.Storage
	Mailer  services.AccountMailer
	// Redis backs the rate limiters when the configured store is "redis".
	// Nil falls back to in-process buckets.
	Redis *redis.Client
	Clock auth.Clock
}

// Server is the wired application. The hub is not started; call
// Hub.Run before accepting WebSocket connections.
type Server struct {
	Router   *gin.Engine
	Services *services.ServiceContainer
	Hub      *ws.Manager
	// Pruners are the in-process rate limit stores the cleanup worker sweeps.
	Pruners []ratelimit.Pruner
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.Configure(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	storageInstance, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	mailer, err := initializeMailer(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email", "error", err)
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.Store == "redis" {
		redisClient, err = ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	srv := SetupRouter(cfg, Deps{
		DB:      db,
		Storage: storageInstance,
		Mailer:  mailer,
		Redis:   redisClient,
	})
	go srv.Hub.Run(ctx)

	cleanup := workers.NewCleanupWorker(
		db,
		repositories.NewSessionRepository(),
		repositories.NewPasswordResetRepository(),
		cfg.Workers.CleanupInterval.Std(),
		srv.Pruners...,
	)
	go cleanup.Start(ctx)

	httpServer := &http.Server{
		Addr:              cfg.Address(),
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", cfg.Address())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Pending verification and reset emails.
	srv.Services.Async.Wait()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server exited")
}

// SetupRouter wires services, handlers, guards and middleware onto a new
// gin engine.
func SetupRouter(cfg *config.Config, deps Deps) *Server {
	hub := ws.NewManager()

	container := services.NewServiceContainer(services.Dependencies{
		Config:   cfg,
		Storage:  deps.Storage,
		Mailer:   deps.Mailer,
		Notifier: hub,
		Clock:    deps.Clock,
	})

	appHandlers := initializeHandlers(container)
	authenticator := middleware.NewAuthenticator(container.Tokens, repositories.NewUserRepository())

	limiters := initializeRateLimiters(cfg, deps.Redis)
	guards := handlers.Guards{
		Auth:        authenticator.RequireAuth(),
		Candidate:   []gin.HandlerFunc{authenticator.RequireAuth(), middleware.RequireRoles(models.UserRoleCandidate)},
		Employer:    []gin.HandlerFunc{authenticator.RequireAuth(), middleware.RequireRoles(models.UserRoleEmployer)},
		AuthLimiter: limiters.auth,
	}

	origins := append([]string{cfg.FrontendURL}, cfg.CORS.AllowedOrigins...)
	ginRouter := initializeGinRouter(cfg, deps.DB, origins)

	if local, ok := deps.Storage.(*storage.LocalStorage); ok {
		ginRouter.Static(staticPrefix(cfg.Storage.BaseURL), local.BasePath())
	}

	if cfg.Server.EnableSwagger && !cfg.IsProduction() {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	wsHandler := ws.NewHandler(hub, authenticator, origins)
	routes.RegisterRoutes(ginRouter, appHandlers, guards, wsHandler, routes.Options{
		Version:       cfg.Version,
		APIMiddleware: limiters.global,
	})

	return &Server{
		Router:   ginRouter,
		Services: container,
		Hub:      hub,
		Pruners:  limiters.pruners,
	}
}

func initializeMailer(cfg *config.Config) (*email.Mailer, error) {
	provider, err := email.NewProvider(cfg.Email)
	if err != nil {
		return nil, err
	}
	templates := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := templates.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			return nil, err
		}
	}
	logger.Info("Email initialized", "provider", provider.Name())
	return email.NewMailer(provider, templates, cfg.FrontendURL), nil
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, container.AuthService),
		CandidateHandler: handlers.NewCandidateHandler(baseHandler, container.CandidateService, container.ClaimService),
		EmployerHandler:  handlers.NewEmployerHandler(baseHandler, container.EmployerService, container.JobService, container.ClaimService),
		VideoHandler:     handlers.NewVideoHandler(baseHandler, container.VideoService),
		QuestionHandler:  handlers.NewQuestionHandler(baseHandler, container.QuestionService),
	}
}

type rateLimiters struct {
	global  []gin.HandlerFunc
	auth    []gin.HandlerFunc
	pruners []ratelimit.Pruner
}

func initializeRateLimiters(cfg *config.Config, redisClient *redis.Client) rateLimiters {
	var out rateLimiters
	if !cfg.RateLimit.Enabled {
		return out
	}

	globalPolicy := ratelimit.Policy{
		Max:    cfg.RateLimit.MaxRequests,
		Window: cfg.RateLimit.Window.Std(),
	}
	authPolicy := ratelimit.Policy{
		Max:      cfg.RateLimit.AuthMax,
		Window:   cfg.RateLimit.AuthWindow.Std(),
		BlockFor: cfg.RateLimit.AuthBlockFor.Std(),
	}

	var globalStore, authStore ratelimit.Store
	if redisClient != nil {
		globalStore = ratelimit.NewRedisStore(redisClient, "ratelimit:global:", globalPolicy)
		authStore = ratelimit.NewRedisStore(redisClient, "ratelimit:auth:", authPolicy)
	} else {
		globalMem := ratelimit.NewMemoryStore(globalPolicy)
		authMem := ratelimit.NewMemoryStore(authPolicy)
		globalStore, authStore = globalMem, authMem
		out.pruners = []ratelimit.Pruner{globalMem, authMem}
	}

	out.global = []gin.HandlerFunc{ratelimit.Middleware(globalStore, ratelimit.MessageGlobal)}
	out.auth = []gin.HandlerFunc{ratelimit.Middleware(authStore, ratelimit.MessageAuth)}
	return out
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, origins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(origins))
	router.Use(middleware.TimeoutMiddleware(cfg.Server.RequestTimeout.Std()))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// staticPrefix takes the path of a base url such as
// "http://localhost:3001/uploads".
func staticPrefix(baseURL string) string {
	prefix := "/uploads"
	if u, err := url.Parse(baseURL); err == nil && u.Path != "" {
		prefix = u.Path
	}
	return "/" + strings.Trim(prefix, "/")
}
