package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/service"
	"github.com/lidmar/site-api/internal/infrastructure/config"
	"github.com/lidmar/site-api/internal/infrastructure/db/postgres"
	"github.com/lidmar/site-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "Email of the user to create")
	password := flag.String("password", "", "Password of the user to create")
	name := flag.String("name", "", "Display name of the user")
	role := flag.String("role", domain.RoleEditor, "Role of the user (admin or editor)")
	withContent := flag.Bool("content", false, "Store the default site content when none exists")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "site-seed"})

	if cfg.Postgres.URL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	if *email == "" && !*withContent {
		flag.Usage()
		os.Exit(2)
	}

	if err := seed(ctx, cfg, log, *email, *password, *name, *role, *withContent); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func seed(ctx context.Context, cfg *config.Config, log zerolog.Logger, email, password, name, role string, withContent bool) error {
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	if email != "" {
		auth := service.NewAuthService(postgres.NewUserRepository(pool), nil, log)
		user, err := auth.Register(ctx, email, password, name, role)
		switch {
		case errors.Is(err, domain.ErrUserExists):
			log.Info().Str("email", domain.NormalizeEmail(email)).Msg("user already exists, skipped")
		case err != nil:
			return err
		default:
			log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Str("role", user.Role).Msg("user created")
		}
	}

	if withContent {
		repo := postgres.NewContentRepository(pool)
		if _, err := repo.Load(ctx); err == nil {
			log.Info().Msg("site content already present, skipped")
			return nil
		} else if !errors.Is(err, domain.ErrContentNotFound) {
			return err
		}

		content := service.NewContentService(repo, nil, 0, log)
		if _, err := content.Replace(ctx, domain.DefaultSiteContent()); err != nil {
			return err
		}
		log.Info().Msg("default site content stored")
	}
	return nil
}
