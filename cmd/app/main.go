package main

import (
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/adapters/out/postgres/incidentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the environment file")
	pflag.Parse()

	configs := getConfigs(*envFile)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	publisher := mustCreatePublisher(configs, logger)

	systemActorID, err := kernel.UUIDFromString(configs.SystemActorID)
	if err != nil {
		log.Fatalf("Invalid SYSTEM_ACTOR_ID: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := app.CreateJobManager(systemActorID)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs(envFile string) cmd.Config {
	if err := godotenv.Load(envFile); err != nil {
		log.Fatalf("Error loading env file %s: %v", envFile, err)
	}

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		OpenAPIContractPath:    envOrDefault("OPENAPI_CONTRACT_PATH", "api/openapi.yml"),
		SystemActorID:          os.Getenv("SYSTEM_ACTOR_ID"),
		NotifyAfter:            cast.ToDuration(envOrDefault("NOTIFY_AFTER", "10m")),
		StaleAfter:             cast.ToDuration(envOrDefault("STALE_AFTER", "45m")),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&historyrepo.EntryDTO{},
		&incidentrepo.ReportDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

// mustCreatePublisher connects the Kafka producer. An empty KAFKA_HOST
// disables event publishing; transitions still commit and land in history.
func mustCreatePublisher(configs cmd.Config, logger *slog.Logger) ports.OrderEventPublisher {
	if configs.KafkaHost == "" {
		logger.Warn("KAFKA_HOST not set, order events will not be published")
		return nil
	}

	publisher, err := kafka.NewOrderProducer(
		[]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic)
	if err != nil {
		log.Fatalf("Failed to connect to kafka: %v", err)
	}
	return publisher
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	validator, err := httpin.NewOpenAPIValidator(configs.OpenAPIContractPath)
	if err != nil {
		log.Fatalf("Failed to load API contract: %v", err)
	}
	e.Use(validator)

	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
