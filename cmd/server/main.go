package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/victor-romero-martinez/api-agendapp/internal/auth"
	"github.com/victor-romero-martinez/api-agendapp/internal/config"
	"github.com/victor-romero-martinez/api-agendapp/internal/constants"
	"github.com/victor-romero-martinez/api-agendapp/internal/database"
	"github.com/victor-romero-martinez/api-agendapp/internal/handlers"
	"github.com/victor-romero-martinez/api-agendapp/internal/logs"
	"github.com/victor-romero-martinez/api-agendapp/internal/metrics"
	"github.com/victor-romero-martinez/api-agendapp/internal/middleware"
	"github.com/victor-romero-martinez/api-agendapp/internal/repository"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logs.Logger.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logs.Init(logs.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}); err != nil {
		logs.Logger.Fatalf("Failed to initialize logger: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN, !cfg.IsProduction())
	if err != nil {
		logs.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logs.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordScheme, cfg.Auth.CipherSecret)
	if err != nil {
		logs.Logger.Fatalf("Failed to create password hasher: %v", err)
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logs.Logger.Fatalf("Failed to create token issuer: %v", err)
	}

	// Initialize AI service; left nil when no key is configured
	var generator services.TaskGenerator
	if cfg.OpenAI.APIKey != "" {
		generator = services.NewAIService(cfg.OpenAI.APIKey)
	}

	store := repository.NewStore(db)
	svc := handlers.Services{
		Users: services.NewUserService(store, hasher, tokens, services.NewLogMailer(), services.UserServiceOptions{
			EmailTokenTTL: cfg.Auth.EmailTokenTTL,
			VerifyURL:     cfg.Server.BaseURL + "/api/" + cfg.Server.APIVersion + "/verify",
		}),
		Dashboards: services.NewDashboardService(store),
		Tasks:      services.NewTaskService(store, generator),
		Teams:      services.NewTeamService(store),
		Tokens:     tokens,
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		logs.Logger.Fatalf("Failed to create session store: %v", err)
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.MustRegister(registry)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	handlers.RegisterRoutes(r, svc, cfg.Server.APIVersion)
	r.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	var handler http.Handler = r
	handler = httprate.LimitByIP(cfg.RateLimit.PerMinute, time.Minute)(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", constants.HeaderRequestID},
		ExposedHeaders:   []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logs.Logger.Infof("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logs.Logger.Fatalf("Server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logs.Logger.Info("Server stopped")
}

// newSessionStore returns the cookie store, or a redis-backed store when configured.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.Session.Store != "redis" {
		return cookie.NewStore([]byte(cfg.Session.Secret)), nil
	}

	return redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		cfg.Redis.Password,
		[]byte(cfg.Session.Secret), // authentication key
	)
}
