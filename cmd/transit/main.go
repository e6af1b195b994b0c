package main

import (
	"context"

	cataloghandler "campusmove/internal/catalog/handler"
	catalogrepo "campusmove/internal/catalog/repository"
	catalogservice "campusmove/internal/catalog/service"
	"campusmove/internal/rentals/events"
	rentalhandler "campusmove/internal/rentals/handler"
	rentalrepo "campusmove/internal/rentals/repository"
	rentalservice "campusmove/internal/rentals/service"
	"campusmove/internal/rentals/validator"
	"campusmove/pkg/app"
	"campusmove/pkg/config"
	mongotx "campusmove/pkg/db/mongo"
	"campusmove/pkg/kafka"
	kafka_config "campusmove/pkg/kafka/config"
	kafka_middleware "campusmove/pkg/kafka/middleware"
)

const ServiceName = "transit"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Transit service")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	catalogService, rentalService := initServices(cfg, publisher)

	serverApp.SetApp(
		[]app.ReadinessCheck{{Name: "mongo", Check: func(ctx context.Context) error {
			return cfg.Client.Mongo.Ping(ctx, nil)
		}}},
		cataloghandler.NewCatalogHandler(catalogService, cfg.Log),
		rentalhandler.NewRentalHandler(rentalService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (catalogservice.CatalogService, rentalservice.RentalService) {
	catalogService := catalogservice.NewCatalogService(catalogrepo.NewMongoCatalogRepository(cfg), cfg)

	var txManager mongotx.TransactionManager
	if cfg.RentConsistency == config.RentConsistencySequential {
		cfg.Log.Warn("Rentals run without transactions; a failed user update leaves the decrement in place")
		txManager = mongotx.NewSequentialManager()
	} else {
		txManager = mongotx.NewTransactionManager(cfg.Client.Mongo)
	}

	rentalService := rentalservice.NewRentalService(
		rentalrepo.NewMongoRentalRepository(cfg, txManager),
		validator.NewRentValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Transit services initialized",
		"database", cfg.MongoDatabaseName,
		"rent_consistency", cfg.RentConsistency,
	)
	return catalogService, rentalService
}

// initPublisher wires rental events to Kafka when brokers are configured.
func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, rental events disabled")
		return events.NewNoopPublisher()
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.RentalTopic, kafkaCfg.RentalDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown("kafka-producer", producer.Close)

	return events.NewKafkaPublisher(producer)
}
