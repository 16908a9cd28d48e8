package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rocketshop/config"
	"rocketshop/internal/api"
	"rocketshop/internal/broker"
	"rocketshop/internal/catalog"
	"rocketshop/internal/checkout"
	"rocketshop/internal/profile"
	"rocketshop/internal/redisclient"
	"rocketshop/internal/session"
	"rocketshop/internal/store"
	"rocketshop/internal/util"
	"rocketshop/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionLockTTL     = 5 * time.Second
	sessionSweepPeriod = time.Minute
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting rocketshop")

	tp, err := util.InitTracer("rocketshop", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	ctx := context.Background()
	readiness := map[string]api.Pinger{}

	var db *store.Store
	var purchases profile.PurchaseSource = profile.EmptySource{}
	if cfg.Database.URL != "" {
		db, err = store.NewStore(cfg.Database.URL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		purchases = db
		readiness["postgres"] = db
		logger.Info("Database connected")
	}

	cat, err := loadCatalog(ctx, db, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var sessions session.Store
	var locker session.Locker
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
		locker = session.NewRedisLocker(redisClient, sessionLockTTL)
		readiness["redis"] = redisClient
		logger.Info("Redis connected")
	default:
		memory := session.NewMemoryStore(cfg.Session.TTL)
		go sweepSessions(workerCtx, memory, logger)
		sessions = memory
		locker = session.NewMemoryLocker()
	}

	var publisher session.EventPublisher = session.NopPublisher{}
	var purchaseWorker *worker.PurchaseWorker
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))

		if db != nil {
			consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
			purchaseWorker = worker.NewPurchaseWorker(consumer, db)
			go func() {
				if err := purchaseWorker.Start(workerCtx); err != nil && err != context.Canceled {
					logger.Error("Purchase worker error", zap.Error(err))
				}
			}()
		}
	}

	sessionService := session.NewService(sessions, locker, cat, publisher, session.Settings{
		DefaultUsername: cfg.Shop.DefaultUsername,
		DiscountPercent: cfg.Shop.DiscountPercent,
		Payment: checkout.PaymentDetails{
			Bank:          cfg.Shop.PaymentBank,
			CardNumber:    cfg.Shop.PaymentCardNumber,
			Recipient:     cfg.Shop.PaymentRecipient,
			SupportHandle: cfg.Shop.SupportHandle,
		},
	})

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(sessionService, purchases, api.Options{
		DefaultUsername: cfg.Shop.DefaultUsername,
		SupportHandle:   cfg.Shop.SupportHandle,
		ReviewsHandle:   cfg.Shop.ReviewsHandle,
		RateLimitRPS:    cfg.RateLimit.RPS,
		RateLimitBurst:  cfg.RateLimit.Burst,
		Readiness:       readiness,
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if purchaseWorker != nil {
		if err := purchaseWorker.Stop(); err != nil {
			logger.Error("Error stopping purchase worker", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}

// loadCatalog prefers the products table when it has rows and falls back
// to the embedded catalog
func loadCatalog(ctx context.Context, db *store.Store, logger *zap.Logger) (*catalog.Catalog, error) {
	if db != nil {
		products, err := db.GetProducts(ctx)
		if err != nil {
			logger.Warn("Failed to load products from database, using embedded catalog", zap.Error(err))
		} else if len(products) > 0 {
			logger.Info("Catalog loaded from database", zap.Int("products", len(products)))
			return catalog.New(products)
		}
	}
	return catalog.Default()
}

func sweepSessions(ctx context.Context, memory *session.MemoryStore, logger *zap.Logger) {
	ticker := time.NewTicker(sessionSweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := memory.Sweep(); n > 0 {
				logger.Debug("Expired sessions removed", zap.Int("count", n))
			}
		}
	}
}
