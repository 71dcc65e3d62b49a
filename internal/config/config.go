package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	// QRBaseURL is the public URL prefix encoded into order tracking QR codes.
	QRBaseURL string

	// DriverMode selects the delivery driver assigner: "fixed" or "pool".
	DriverMode    string
	FixedDriverID int

	Fees Fees
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type RedisConfig struct {
	Host string
	Port string
}

type KafkaConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

// Fees holds the platform fee schedule. Rates are injected so tests and
// deployments can vary them without code edits.
type Fees struct {
	TaxRate              decimal.Decimal
	CommissionRate       decimal.Decimal
	DeliveryPlatformRate decimal.Decimal
	DeliveryFee          decimal.Decimal
	ServiceFee           decimal.Decimal
}

func DefaultFees() Fees {
	return Fees{
		TaxRate:              decimal.NewFromFloat(0.08),
		CommissionRate:       decimal.NewFromFloat(0.15),
		DeliveryPlatformRate: decimal.NewFromFloat(0.15),
		DeliveryFee:          decimal.NewFromFloat(3.99),
		ServiceFee:           decimal.NewFromFloat(2.99),
	}
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	fixedDriverID, err := strconv.Atoi(getEnv("FIXED_DRIVER_ID", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid FIXED_DRIVER_ID: %w", err)
	}

	fees, err := loadFees()
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "restaurant_ordering"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_ORDER_TOPIC", "orders"),
			GroupID: getEnv("KAFKA_GROUP_ID", "order-stats"),
		},
		QRBaseURL:     getEnv("QR_BASE_URL", "http://localhost:3000"),
		DriverMode:    getEnv("DRIVER_MODE", "pool"),
		FixedDriverID: fixedDriverID,
		Fees:          fees,
	}, nil
}

func loadFees() (Fees, error) {
	fees := DefaultFees()

	overrides := []struct {
		key    string
		target *decimal.Decimal
	}{
		{"TAX_RATE", &fees.TaxRate},
		{"COMMISSION_RATE", &fees.CommissionRate},
		{"DELIVERY_PLATFORM_RATE", &fees.DeliveryPlatformRate},
		{"DELIVERY_FEE", &fees.DeliveryFee},
		{"SERVICE_FEE", &fees.ServiceFee},
	}

	for _, o := range overrides {
		raw := os.Getenv(o.key)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return fees, fmt.Errorf("invalid %s value %q: %w", o.key, raw, err)
		}
		*o.target = value
	}

	return fees, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
