package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config вся конфигурация приложения
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	Environment string `validate:"oneof=development production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	OfferSource     string        `validate:"oneof=memory graphql"`
	GraphQLEndpoint string        `validate:"required_if=OfferSource graphql"`
	GraphQLToken    string        `json:"-"`
	GraphQLTimeout  time.Duration `validate:"gt=0"`
	CatalogSeedPath string

	OfferCacheTTL      time.Duration `validate:"gt=0"`
	CheckoutSessionTTL time.Duration `validate:"gt=0"`
	DeliveryPrice      decimal.Decimal
	DefaultCurrency    string `validate:"len=3,alpha"`
	AnalogsConcurrency int    `validate:"min=1,max=32"`

	MetricsExporter   string `validate:"oneof=scraper grpc"`
	OrdersDatabaseURL string `json:"-"`

	// EnvFileLoaded сообщает, был ли прочитан .env
	EnvFileLoaded bool
}

var validate = validator.New()

// Load читает конфигурацию из .env и переменных окружения.
// Уже заданные переменные окружения важнее .env.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	var errs []error
	cfg := &Config{
		Port:               getEnvAsInt("PORT", 9091, &errs),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		OfferSource:        getEnvWithDefault("OFFER_SOURCE", "memory"),
		GraphQLEndpoint:    os.Getenv("GRAPHQL_ENDPOINT"),
		GraphQLToken:       os.Getenv("GRAPHQL_TOKEN"),
		GraphQLTimeout:     getEnvAsDuration("GRAPHQL_TIMEOUT", 10*time.Second, &errs),
		CatalogSeedPath:    os.Getenv("CATALOG_SEED_PATH"),
		OfferCacheTTL:      getEnvAsDuration("OFFER_CACHE_TTL", 30*time.Second, &errs),
		CheckoutSessionTTL: getEnvAsDuration("CHECKOUT_SESSION_TTL", 15*time.Minute, &errs),
		DeliveryPrice:      getEnvAsDecimal("DELIVERY_PRICE", decimal.NewFromInt(39), &errs),
		DefaultCurrency:    getEnvWithDefault("DEFAULT_CURRENCY", "RUB"),
		AnalogsConcurrency: getEnvAsInt("ANALOGS_CONCURRENCY", 4, &errs),
		MetricsExporter:    getEnvWithDefault("METRICS_EXPORTER", "scraper"),
		OrdersDatabaseURL:  os.Getenv("ORDERS_DATABASE_URL"),
		EnvFileLoaded:      loaded,
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет ограничения полей
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.DeliveryPrice.IsNegative() {
		return errors.New("invalid configuration: DELIVERY_PRICE must not be negative")
	}
	return nil
}

// IsDevelopment true для окружения development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Log пишет действующую конфигурацию без секретов
func (c *Config) Log(log *zap.Logger) {
	if !c.EnvFileLoaded {
		log.Warn("could not load .env file, continuing with system environment variables only")
	}
	log.Info("configuration loaded",
		zap.Int("port", c.Port),
		zap.String("environment", c.Environment),
		zap.String("log_level", c.LogLevel),
		zap.String("offer_source", c.OfferSource),
		zap.String("graphql_endpoint", c.GraphQLEndpoint),
		zap.Duration("graphql_timeout", c.GraphQLTimeout),
		zap.String("catalog_seed_path", c.CatalogSeedPath),
		zap.Duration("offer_cache_ttl", c.OfferCacheTTL),
		zap.Duration("checkout_session_ttl", c.CheckoutSessionTTL),
		zap.Stringer("delivery_price", c.DeliveryPrice),
		zap.String("default_currency", c.DefaultCurrency),
		zap.Int("analogs_concurrency", c.AnalogsConcurrency),
		zap.String("metrics_exporter", c.MetricsExporter),
		zap.Bool("orders_in_postgres", c.OrdersDatabaseURL != ""))
}

// getEnvWithDefault переменная окружения или значение по умолчанию
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal, errs *[]error) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}
