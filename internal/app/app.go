package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/http-api/handler"
	"yamdb/internal/http-api/middleware"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/http-api/service"
	"yamdb/internal/mailer"
	"yamdb/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "yamdb/docs" // swagger docs
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg         *config.Config
	log         *slog.Logger
	db          *gorm.DB
	redisClient *redis.Client
	router      *gin.Engine
	httpServer  *http.Server
}

// NewApp connects to the backing stores and wires every layer of the API.
func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db, log); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	a := &App{cfg: cfg, log: log, db: db}

	// Redis only backs rate limiting, so the API runs without it.
	if cfg.RedisURL != "" {
		client, err := connectRedis(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, rate limiting disabled", "error", err)
		} else {
			a.redisClient = client
		}
	}

	router, err := a.buildRouter()
	if err != nil {
		a.closeStores()
		return nil, err
	}
	a.router = router
	return a, nil
}

func connectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (a *App) buildRouter() (*gin.Engine, error) {
	accessTokens, err := token.NewJWTService(a.cfg.JWTSecret, a.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	confirmations, err := token.NewConfirmationService(a.cfg.JWTSecret, a.cfg.ConfirmationCodeTTL)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(a.db)
	categoryRepo := repository.NewCategoryRepository(a.db)
	genreRepo := repository.NewGenreRepository(a.db)
	titleRepo := repository.NewTitleRepository(a.db)
	reviewRepo := repository.NewReviewRepository(a.db)
	commentRepo := repository.NewCommentRepository(a.db)

	// Initialize services
	authService := service.NewAuthService(userRepo, confirmations, accessTokens, mailer.New(a.cfg, a.log), a.log)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, service.NewYearValidator(a.cfg.TitleYearHorizon))
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.WithLogger(a.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", a.health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1", middleware.Authenticate(authService))

	var authLimit []gin.HandlerFunc
	if a.redisClient != nil {
		authLimit = append(authLimit, middleware.RateLimitMiddleware(
			middleware.NewRedisCounter(a.redisClient),
			a.cfg.RateLimitRequests,
			a.cfg.RateLimitWindow,
			a.log,
		))
	}
	handler.NewAuthHandler(authService).RegisterRoutes(api, authLimit...)
	handler.NewUserHandler(userService).RegisterRoutes(api)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api)
	handler.NewGenreHandler(genreService).RegisterRoutes(api)
	handler.NewTitleHandler(titleService).RegisterRoutes(api)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api)
	handler.NewCommentHandler(commentService).RegisterRoutes(api)

	return r, nil
}

func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	if a.redisClient == nil {
		status["redis"] = "disabled"
	} else if err := a.redisClient.Ping(ctx).Err(); err != nil {
		status["redis"] = "unreachable"
	} else {
		status["redis"] = "ok"
	}
	c.JSON(code, status)
}

// Run starts serving in the background.
func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("api server starting", "addr", a.httpServer.Addr, "env", a.cfg.GoEnv)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// surface immediate bind failures
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
	case <-time.After(100 * time.Millisecond):
	}
	return nil
}

// Wait blocks until SIGINT or SIGTERM.
func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("shutting down", "signal", sig.String())
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if a.httpServer != nil {
		if err = a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("server forced to shutdown", "error", err)
		}
	}
	a.closeStores()
	a.log.Info("api server exited")
	return err
}

func (a *App) closeStores() {
	if err := database.Close(a.db); err != nil {
		a.log.Error("error closing database", "error", err)
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("error closing redis", "error", err)
		}
	}
}
