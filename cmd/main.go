// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/handlers"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/repository"
	"go_gpa_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("../configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(tempLogger)
	log.Println("Log Config Loaded...")

	// Configファイルの読み込み完了後、アプリケーション全体のデフォルトロガーを設定
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.Cfg.App.Name))

	// 1. Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 2. 要望フォームのレート制限。Redis が設定されていれば複数プロセスで共有する
	var limiter service.RateLimiter
	if addr := config.Cfg.Feedback.RedisAddr; addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.Cfg.Feedback.RedisPassword,
			DB:       config.Cfg.Feedback.RedisDB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// 制限はフェイルオープンなので起動は続ける
			slog.Warn("Redis is not reachable, feedback rate limit will fail open", slog.String("addr", addr), slog.Any("error", err))
		}
		cancel()
		limiter = service.NewRedisRateLimiter(rdb, config.AppName+":ratelimit:")
		slog.Info("Using Redis rate limiter", slog.String("addr", addr))
	} else {
		limiter = service.NewMemoryRateLimiter()
		slog.Info("Using in-memory rate limiter")
	}

	// 3. Dependency Injection
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()
	profileRepo := repository.NewGormProfileRepository()
	semesterRepo := repository.NewGormSemesterRepository()
	courseRepo := repository.NewGormCourseRepository()
	goalRepo := repository.NewGormGoalRepository()
	suggestionRepo := repository.NewGormSuggestionRepository()

	mailer := service.NewMailer(&config.Cfg)
	extractor := service.NewHTTPCourseExtractor(&config.Cfg.Scan)

	authService := service.NewAuthService(db, userRepo, tokenRepo, profileRepo, mailer, &config.Cfg)
	semesterService := service.NewSemesterService(db, semesterRepo, courseRepo, profileRepo)
	courseService := service.NewCourseService(db, semesterRepo, courseRepo, profileRepo)
	goalService := service.NewGoalService(db, goalRepo, profileRepo)
	settingsService := service.NewSettingsService(db, profileRepo)
	dashboardService := service.NewDashboardService(db, semesterRepo, goalRepo, profileRepo)
	whatIfService := service.NewWhatIfService(db, semesterRepo, profileRepo)
	transcriptService := service.NewTranscriptService(db, semesterRepo, profileRepo)
	scanService := service.NewScanService(extractor, &config.Cfg.Scan)
	feedbackService := service.NewFeedbackService(db, userRepo, suggestionRepo, limiter, mailer, &config.Cfg.Feedback)

	h := &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Semester:  handlers.NewSemesterHandler(semesterService),
		Course:    handlers.NewCourseHandler(courseService),
		Goal:      handlers.NewGoalHandler(goalService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Dashboard: handlers.NewDashboardHandler(dashboardService, whatIfService, transcriptService),
		Scan:      handlers.NewScanHandler(scanService, &config.Cfg.Scan),
		Feedback:  handlers.NewFeedbackHandler(feedbackService),
	}
	healthHandler := handlers.NewHealthHandler(db)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	r.Use(cors.New(corsOptions).Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.Cfg.Server.RequestTimeout))

	var authMiddleware func(http.Handler) http.Handler
	if config.Cfg.Auth.Enabled {
		slog.Info("Applying JWT authentication middleware")
		authMiddleware = middleware.JWTAuthMiddleware(&config.Cfg)
	} else {
		slog.Warn("Authentication is disabled, X-User-ID header will be trusted")
		authMiddleware = middleware.DevUserContextMiddleware
	}

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		h.Routes(r, authMiddleware)
	})

	// Health Check
	r.Get("/health", healthHandler.Health)

	// 5. Start Server
	server := &http.Server{
		Addr:        config.Cfg.Server.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// 画像読み取りは外部推論を待つため、リクエストタイムアウトより長くとる
		WriteTimeout: config.Cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1) // Listen失敗は致命的
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は設定のログレベルと APP_ENV に応じてハンドラを選びます
func newLogger(tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo) // 不明な場合はInfo
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}
