package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	httpapi "restaurant-ordering/internal/api/http"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/events"
	"restaurant-ordering/internal/service"
	"restaurant-ordering/internal/storage"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const menuCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	menuCache := storage.NewMenuCache(redisClient, menuCacheTTL)

	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Kafka.Broker),
		Topic:    cfg.Kafka.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaReader.Close()
	consumer := events.NewConsumer(kafkaReader, storage.NewStatsCounter(redisClient))
	go consumer.Start(context.Background())

	pricer := service.NewPricingEngine(repo, cfg.Fees)
	assigner := newDriverAssigner(cfg, repo)
	qrGen := service.TrackingQRGenerator{BaseURL: cfg.QRBaseURL}

	authSvc := service.NewAuthService(repo)
	catalogSvc := service.NewCatalogService(repo, repo, menuCache)
	orderSvc := service.NewOrderService(pricer, repo, assigner, qrGen, publisher)
	deliverySvc := service.NewDeliveryService(repo)
	revenueSvc := service.NewRevenueService(repo)

	handler := httpapi.NewHandler(authSvc, catalogSvc, orderSvc, deliverySvc, revenueSvc, repo)
	router := httpapi.NewRouter(handler)

	addr := ":" + cfg.HTTPPort
	log.Printf("Restaurant ordering service starting on %s (driver mode: %s)", addr, cfg.DriverMode)
	log.Fatal(http.ListenAndServe(addr, router))
}

func newDriverAssigner(cfg *config.Config, drivers service.DriverRepository) service.DriverAssigner {
	if cfg.DriverMode == "fixed" {
		return service.FixedDriver{DriverID: cfg.FixedDriverID}
	}
	return service.PoolAssigner{Drivers: drivers}
}
