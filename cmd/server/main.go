// @title        LiD-MAR Site API
// @version      1.0
// @description  Pages with owner-only editing, site content and product catalogue.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/lidmar/site-api/internal/api"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/core/service"
	"github.com/lidmar/site-api/internal/infrastructure/config"
	"github.com/lidmar/site-api/internal/infrastructure/db/mongo"
	"github.com/lidmar/site-api/internal/infrastructure/db/postgres"
	"github.com/lidmar/site-api/internal/infrastructure/db/redis"
	"github.com/lidmar/site-api/internal/infrastructure/queue"
	"github.com/lidmar/site-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "site-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- PostgreSQL (users, pages, content, products) ---
	var (
		pool        *pgxpool.Pool
		userRepo    ports.AuthRepository
		pageRepo    ports.PageRepository
		contentRepo ports.ContentRepository
		productRepo ports.ProductRepository
	)
	if cfg.Postgres.URL == "" {
		log.Warn().Msg("DATABASE_URL not set: page, auth, content and product operations will answer 503")
	} else {
		p, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return err
		}
		defer p.Close()
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(ctx, p); err != nil {
				return err
			}
			log.Info().Msg("database migrations applied")
		}
		pool = p
		userRepo = postgres.NewUserRepository(p)
		pageRepo = postgres.NewPageRepository(p)
		contentRepo = postgres.NewContentRepository(p)
		productRepo = postgres.NewProductRepository(p)
	}

	// --- MongoDB (audit trail) ---
	var (
		mongoDB *mongodriver.Database
		auditor ports.AuditRecorder
	)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if cfg.Mongo.URI == "" {
		log.Warn().Msg("MONGO_URI not set: forbidden attempts are logged but not persisted")
	} else {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		db := store.DB

		auditRepo := mongo.NewAuditRepository(db)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit index creation failed")
		}

		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component(log, "audit"))
		dispatcher.Start(workerCtx)
		defer func() {
			stopWorkers()
			dispatcher.Wait()
		}()

		mongoDB = db
		auditor = dispatcher
	}

	// --- Redis (public read cache) ---
	var (
		redisClient *goredis.Client
		cache       ports.ReadCache
	)
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set: content and products are read straight from the database")
	} else {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		cache = redis.NewReadCache(client)
	}

	// --- Services ---
	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET not set: login and authenticated routes will answer 503")
	}
	issuer := service.NewSessionIssuer(cfg.Session.Secret, cfg.Session.TTL)
	authService := service.NewAuthService(userRepo, issuer, logger.Component(log, "auth"))
	gate := service.NewGate(pageRepo, auditor, logger.Component(log, "gate"))
	pageService := service.NewPageService(pageRepo, gate, logger.Component(log, "pages"))
	contentService := service.NewContentService(contentRepo, cache, cfg.Cache.TTL, logger.Component(log, "content"))
	productService := service.NewProductService(productRepo, cache, cfg.Cache.TTL, logger.Component(log, "products"))

	contentService.StartRefresher(workerCtx, cfg.Cache.Refresh)
	productService.StartRefresher(workerCtx, cfg.Cache.Refresh)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:      log,
		Sessions: issuer,
		Auth:     authService,
		Pages:    pageService,
		Content:  contentService,
		Products: productService,
		Postgres: pool,
		Mongo:    mongoDB,
		Redis:    redisClient,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(e)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	// In-flight requests are done; let the audit workers drain.
	stopWorkers()
	return nil
}
