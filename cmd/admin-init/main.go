// Command admin-init provisions the initial administrator account.
//
// It is run once by an operator, out-of-band from the server, with
// ADMIN_INIT_EMAIL and ADMIN_INIT_PASSWORD set in the environment. The run
// is idempotent: an existing account is promoted to admin, an already-admin
// account is left alone.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/credilinea/intake-system/internal/core/service"
	"github.com/credilinea/intake-system/internal/infrastructure/config"
	mongodb "github.com/credilinea/intake-system/internal/infrastructure/db/mongo"
	"github.com/credilinea/intake-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_INIT_EMAIL and ADMIN_INIT_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, nil, "", cfg.AdminEmail, 0, log)

	if err := authService.ProvisionAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin provisioning failed")
	}

	fmt.Println("admin init completed")
}
