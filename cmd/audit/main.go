package main

import (
	"context"
	"errors"

	"digilist/internal/audit/consumer"
	"digilist/internal/audit/handler"
	"digilist/internal/audit/store"
	"digilist/pkg/app"
	"digilist/pkg/config"
	"digilist/pkg/kafka"
	kafka_config "digilist/pkg/kafka/config"
	"digilist/pkg/kafka/middleware"
)

const ServiceName = "audit"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Audit service")
	auditStore := store.NewMongoAuditStore(cfg)

	kcfg := kafka_config.Load(cfg.Log)
	eventHandler := consumer.NewHandler(auditStore, cfg.Log)
	eventConsumer, err := kafka.NewConsumer(kcfg, kcfg.BookingEventsTopic, kcfg.AuditConsumerGroup, kcfg.BookingEventsDLQTopic, eventHandler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create event consumer", "error", err)
	}

	var metrics *middleware.Metrics
	if kcfg.EnableMiddleware {
		metrics = middleware.NewMetrics()
		eventConsumer.Use(middleware.LoggingConsumerMiddleware(cfg.Log))
		eventConsumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		cfg.Log.Info("Consuming booking events", "topic", kcfg.BookingEventsTopic, "group", kcfg.AuditConsumerGroup)
		if err := eventConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Event consumer stopped", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg, handler.NewAuditHandler(auditStore, cfg.Log))
	serverApp.OnShutdown(func(_ context.Context) {
		cancel()
		if err := eventConsumer.Close(); err != nil {
			cfg.Log.Error("Failed to close event consumer", "error", err)
		}
		if metrics != nil {
			metrics.Log(cfg.Log)
		}
		cfg.GracefulShutdown()
	})
	serverApp.Run()
}
