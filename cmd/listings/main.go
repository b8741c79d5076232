package main

import (
	"context"

	"digilist/internal/listings/handler"
	"digilist/internal/listings/repository"
	"digilist/internal/listings/service"
	"digilist/internal/listings/validator"
	"digilist/pkg/app"
	"digilist/pkg/config"
)

const ServiceName = "listings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Listings service")
	listingService := initServices(cfg)
	serverApp := app.NewApplication(cfg, handler.NewListingHandler(listingService, cfg.Log))
	serverApp.OnShutdown(func(_ context.Context) { cfg.GracefulShutdown() })
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ListingService {
	listingService := service.NewListingService(
		repository.NewMongoListingRepository(cfg),
		validator.NewListingValidator(),
		cfg,
	)

	cfg.Log.Info("Listing service initialized", "database", cfg.MongoDatabaseName)
	return listingService
}
