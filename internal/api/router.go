package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinetrack/movie-system/internal/api/handler"
	"github.com/cinetrack/movie-system/internal/api/middleware"
	"github.com/cinetrack/movie-system/internal/core/service"
	"github.com/cinetrack/movie-system/internal/infrastructure/config"
	mongodb "github.com/cinetrack/movie-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cinetrack/movie-system/internal/infrastructure/db/redis"
	"github.com/cinetrack/movie-system/internal/infrastructure/tmdb"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("moviesystem"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	provider := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	watchlistService := service.NewWatchlistService(userRepo, log)
	reviewService := service.NewReviewService(reviewRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	mediaHandler := handler.NewMediaHandler(provider)

	authMW := middleware.Auth(cfg.JWTSecret)

	var rateMW echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Burst, cfg.RateLimit.RefillEvery)
		rateMW = middleware.RateLimit(limiter, log)
	} else {
		rateMW = middleware.RateLimit(nil, log)
	}

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register, rateMW)
	users.POST("/login", authHandler.Login, rateMW)
	users.GET("/profile", authHandler.Profile, authMW)
	users.GET("/watchlist", watchlistHandler.List, authMW)
	users.POST("/watchlist", watchlistHandler.Add, authMW)
	users.DELETE("/watchlist/:mediaId", watchlistHandler.Remove, authMW)

	// --- Review routes ---
	reviews := e.Group("/api/reviews", authMW)
	reviews.POST("", reviewHandler.Create)
	reviews.GET("", reviewHandler.List)
	reviews.DELETE("/:id", reviewHandler.Delete)

	// --- Metadata gateway (public) ---
	movies := e.Group("/api/movies")
	movies.GET("/popular", mediaHandler.Popular)
	movies.GET("/trending/:window", mediaHandler.Trending)
	movies.GET("/search", mediaHandler.Search)
	movies.GET("/movie/:id/reviews", mediaHandler.MovieReviews)
	movies.GET("/tv/popular", mediaHandler.TVPopular)
	movies.GET("/tv/:id", mediaHandler.TVDetails)
	movies.GET("/tv/:id/reviews", mediaHandler.TVReviews)
	movies.GET("/:id", mediaHandler.Details)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
