package main

import (
	"context"

	"digilist/internal/bookings/events"
	"digilist/internal/bookings/handler"
	"digilist/internal/bookings/repository"
	"digilist/internal/bookings/service"
	"digilist/internal/bookings/validator"
	"digilist/pkg/app"
	"digilist/pkg/client"
	"digilist/pkg/config"
	"digilist/pkg/kafka"
	kafka_config "digilist/pkg/kafka/config"
	"digilist/pkg/kafka/middleware"
	"digilist/pkg/sealer"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")

	producer, metrics := initProducer(cfg)
	bookingService := initServices(cfg, events.NewKafkaPublisher(producer))

	serverApp := app.NewApplication(cfg, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.OnShutdown(func(_ context.Context) {
		if metrics != nil {
			metrics.Log(cfg.Log)
		}
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close event producer", "error", err)
		}
		cfg.GracefulShutdown()
	})
	serverApp.Run()
}

func initProducer(cfg *config.Config) (*kafka.Producer, *middleware.Metrics) {
	kcfg := kafka_config.Load(cfg.Log)
	producer, err := kafka.NewProducer(kcfg, kcfg.BookingEventsTopic, kcfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}

	if !kcfg.EnableMiddleware {
		return producer, nil
	}
	metrics := middleware.NewMetrics()
	producer.Use(middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(metrics.ProducerMiddleware())
	return producer, metrics
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	var listings repository.ListingReader
	if cfg.ListingsServiceURL != "" {
		listings = repository.NewHTTPListingReader(client.NewListingClient(client.Config{
			BaseURL: cfg.ListingsServiceURL,
			Timeout: cfg.RequestTimeout,
		}))
	} else {
		listings = repository.NewMongoListingReader(cfg)
	}

	var receipts service.ReceiptSealer
	if cfg.ReceiptSealKey != "" {
		s, err := sealer.New(cfg.ReceiptSealKey)
		if err != nil {
			cfg.Log.Fatal("Invalid receipt seal key", "error", err)
		}
		receipts = s
	} else {
		cfg.Log.Warn("RECEIPT_SEAL_KEY not set, receipts are disabled")
	}

	bookingService := service.NewBookingService(
		repository.NewMongoBookingRepository(cfg),
		listings,
		validator.NewBookingValidator(),
		receipts,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"listings_over_http", cfg.ListingsServiceURL != "",
		"receipts_enabled", receipts != nil,
	)
	return bookingService
}
