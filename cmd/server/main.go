package main

import (
	"approval-api/internal/app"
	"approval-api/internal/config"
	"approval-api/internal/logging"
	"approval-api/internal/notifier"
	"approval-api/internal/repositories"
	"approval-api/internal/services"
	"approval-api/pkg/apiErrors"
	"approval-api/pkg/db/postgres"
	"approval-api/pkg/db/redis"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatalf("Failed to init logging: %v", err)
	}
	log.Println("Starting approval API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	if cfg.SeedSamples {
		if err := repositories.SeedSamples(ctx, store); err != nil {
			log.Fatalf("Failed to seed sample approvals: %v", err)
		}
	}

	var n notifier.Notifier = notifier.Nop{}
	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to redis init: %v", err)
		}
		defer rdb.Close()
		n = notifier.NewRedisNotifier(rdb)
	}

	service := services.NewApprovalService(store, n)
	if err := app.NewApp(cfg.Server, service).Run(); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg *config.Config) (repositories.ApprovalStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repositories.NewRegistry(nil), func() {}, nil
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewPostgresStore(db), func() {
			if err := postgres.Close(db); err != nil {
				log.WithError(err).Warn("failed to close postgres")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apiErrors.ErrUnknownStoreDriver, cfg.StoreDriver)
	}
}
