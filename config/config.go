package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
	RateLimit RateLimitConfig
	Shop      ShopConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds the purchase history database; an empty URL disables it
type DatabaseConfig struct {
	URL string
}

type SessionConfig struct {
	Backend string
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds the storefront event stream; no brokers disables it
type KafkaConfig struct {
	Brokers       []string
	TopicEvents   string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type ShopConfig struct {
	DefaultUsername   string
	DiscountPercent   int64
	PaymentBank       string
	PaymentCardNumber string
	PaymentRecipient  string
	SupportHandle     string
	ReviewsHandle     string
}

const defaultDiscountPercent = 20

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_SECONDS", "86400"))
	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	discount := parsePercent("DISCOUNT_PERCENT", defaultDiscountPercent)

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", SessionBackendMemory),
			TTL:     time.Duration(sessionTTL) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			TopicEvents:   getEnv("KAFKA_TOPIC_STOREFRONT_EVENTS", "storefront-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "rocketshop-purchases"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
		Shop: ShopConfig{
			DefaultUsername:   getEnv("DEFAULT_USERNAME", "Игрок"),
			DiscountPercent:   discount,
			PaymentBank:       getEnv("PAYMENT_BANK", "СберБанк"),
			PaymentCardNumber: getEnv("PAYMENT_CARD_NUMBER", "2202208395853485"),
			PaymentRecipient:  getEnv("PAYMENT_RECIPIENT", "Никита Владимирович Т."),
			SupportHandle:     getEnv("SUPPORT_HANDLE", "RocketShopSeller"),
			ReviewsHandle:     getEnv("REVIEWS_HANDLE", "RocketShopRate"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, sessions=%s", cfg.Server.Env, cfg.Server.Port, cfg.Session.Backend)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// parsePercent reads a whole percent in 0..100. Malformed or out of range
// values are logged and replaced by def.
func parsePercent(key string, def int64) int64 {
	raw := getEnv(key, strconv.FormatInt(def, 10))
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 || v > 100 {
		log.Printf("Invalid %s=%q, want a whole percent in 0..100; using %d", key, raw, def)
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
