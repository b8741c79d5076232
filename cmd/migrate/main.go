package main

import (
	"context"
	"time"

	mongoMigration "digilist/internal/migrations/mongo"
	"digilist/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")
	defer cfg.GracefulShutdown()
	migrateMongo(ctx, cfg)
	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(ctx context.Context, cfg *config.Config) {
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}
