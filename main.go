package main

import (
	"log"
	"net/http"

	"roomradar/config"
	"roomradar/jobs"
	"roomradar/mq"
	"roomradar/routes"
	"roomradar/services"
	"roomradar/services/logger"
	"roomradar/services/notification"
	"roomradar/storage"

	"github.com/gin-gonic/gin"
)

func main() {

	config.LoadEnv()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load app config: %v", err)
	}

	router, m, c, err := config.InitApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)

	// Môi trường local chạy toàn bộ trên store trong bộ nhớ
	var store storage.Store
	if cfg.Env == "local" {
		store = storage.NewMemoryStore()
		log.Println("Running with in-memory store")
	} else {
		gormStore := storage.NewGormStore(config.DB)
		if err := gormStore.Migrate(); err != nil {
			log.Fatalf("Failed to migrate tables: %v", err)
		}
		store = gormStore
	}

	xenditCfg, err := services.LoadXenditConfig()
	if err != nil {
		log.Printf("Warning: xendit config incomplete, gateway calls will fail: %v", err)
	}
	gateway := services.NewXenditClient(xenditCfg)

	var events services.EventPublisher
	if cfg.AmqpURL != "" {
		publisher, err := mq.NewPublisher(cfg.AmqpURL)
		if err != nil {
			log.Printf("Warning: không kết nối được RabbitMQ, bỏ qua publish event: %v", err)
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	notifier := notification.NewMelodyService(m)

	ledgerService := services.NewLedgerService(store, appLogger)
	listingService := services.NewListingService(store, appLogger)
	userService := services.NewUserService(store, appLogger)
	notificationService := services.NewNotificationService(store, appLogger)
	bookingService := services.NewBookingService(store, appLogger, notifier, events)
	walletService := services.NewWalletService(store, gateway, ledgerService, appLogger, notifier, events)

	jobs.SetStaleBookingNotifier(bookingService)
	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, routes.Deps{
		Redis:         config.RedisClient,
		Logger:        appLogger,
		Booking:       bookingService,
		Listing:       listingService,
		Wallet:        walletService,
		Ledger:        ledgerService,
		Notifications: notificationService,
		Users:         userService,
		Melody:        m,
	})

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	log.Println("Server starting on port " + cfg.Port + "...")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
