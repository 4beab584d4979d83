package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/adapters/out/postgres/storerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() { _ = root.Close() }()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		WarehouseAddress:        goDotEnvVariable("WAREHOUSE_ADDRESS"),
		CourierBaseURL:          goDotEnvVariable("COURIER_BASE_URL"),
		CourierClientID:         goDotEnvVariable("COURIER_CLIENT_ID"),
		CourierClientSecret:     goDotEnvVariable("COURIER_CLIENT_SECRET"),
		PaymentsBaseURL:         goDotEnvVariable("PAYMENTS_BASE_URL"),
		PaymentsAPIKey:          goDotEnvVariable("PAYMENTS_API_KEY"),
		NotificationsBaseURL:    goDotEnvVariable("NOTIFICATIONS_BASE_URL"),
		NotificationsAPIKey:     goDotEnvVariable("NOTIFICATIONS_API_KEY"),
		MerchantEmail:           goDotEnvVariable("MERCHANT_EMAIL"),
		MerchantPhone:           goDotEnvVariable("MERCHANT_PHONE"),
		CustomerDirectoryURL:    goDotEnvVariable("CUSTOMER_DIRECTORY_URL"),
		CustomerDirectoryAPIKey: goDotEnvVariable("CUSTOMER_DIRECTORY_API_KEY"),
		RedisURL:                goDotEnvVariable("REDIS_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&returnrepo.ReturnDTO{},
		&returnrepo.RefundRecordDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.QuoteDTO{},
		&deliveryrepo.JobRecordDTO{},
		&storerepo.StoreDTO{},
		&storerepo.MappingDTO{},
		&notificationrepo.NotificationLogDTO{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			logger.Info("http server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Error shutting down server: %v", err)
	}
}
