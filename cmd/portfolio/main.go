package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/cache"
	"github.com/Skotchmaster/portfolio/internal/es"
	"github.com/Skotchmaster/portfolio/internal/httpserver"
	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/mykafka"
	"github.com/Skotchmaster/portfolio/internal/repo"
	"github.com/Skotchmaster/portfolio/internal/service"
	"github.com/Skotchmaster/portfolio/pkg/config"
	pkgdb "github.com/Skotchmaster/portfolio/pkg/db"
	"github.com/Skotchmaster/portfolio/pkg/logging"
	middleware "github.com/Skotchmaster/portfolio/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/portfolio/pkg/middleware/logging"
	"github.com/Skotchmaster/portfolio/pkg/tokens"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.MustValid(config.Load())

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.Database.URL)
	if err == nil && cfg.Database.AutoMigrate {
		err = pkgdb.Migrate(ctx, db, models.All()...)
	}
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	producer := mykafka.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka disabled", "reason", "KAFKA_BROKERS is empty")
	}

	storage := repo.New(db, cfg.StorageTimeout)
	projects := &service.ProjectService{Repo: storage, Cache: cache.Nop{}, Events: producer}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewClient(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("project cache disabled", "error", err)
		} else {
			projects.Cache = cache.NewProjectList(redisClient, cfg.CacheTTL)
		}
	}

	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 5*time.Second)
		esClient, err := es.NewClient(esCtx, es.Config{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		esCancel()
		if err != nil {
			logger.Warn("search index disabled", "error", err)
		} else {
			projects.Index = es.NewProjectIndex(esClient, cfg.ESIndex)
		}
	}

	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	httpserver.Register(e, &httpserver.Deps{
		Health:   &httpserver.HealthHTTP{DB: db},
		Auth:     &httpserver.AuthHTTP{Svc: &service.AuthService{Admin: cfg.Admin, Issuer: issuer}},
		Projects: &httpserver.ProjectHTTP{Svc: projects},
		Skills:   &httpserver.SkillHTTP{Svc: &service.SkillService{Repo: storage, Events: producer}},
		Messages: &httpserver.MessageHTTP{Svc: &service.MessageService{Repo: storage, Events: producer}},
		Ratings:  &httpserver.RatingHTTP{Svc: &service.RatingService{Repo: storage, Events: producer, Projects: projects}},
		Gate:     middleware.NewGate(issuer),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("portfolio listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close error", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("portfolio stopped")
}
