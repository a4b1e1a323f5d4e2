package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/fjod/agromarket/internal/auth"
	c "github.com/fjod/agromarket/internal/cache"
	"github.com/fjod/agromarket/internal/config"
	h "github.com/fjod/agromarket/internal/http"
	"github.com/fjod/agromarket/internal/logger"
	"github.com/fjod/agromarket/internal/publisher"
	"github.com/fjod/agromarket/internal/repository"
	s "github.com/fjod/agromarket/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	// Continue the caller's trace so log lines carry its trace_id.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Set up MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		cancel()
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	if err := repository.CreateIndexes(ctx, mongoDB); err != nil {
		cancel()
		log.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	cancel()
	log.Info("connected to MongoDB", "database", cfg.MongoDBName)

	users := repository.NewUserRepository(mongoDB)
	products := repository.NewProductRepository(mongoDB)
	blogs := repository.NewBlogRepository(mongoDB)
	shops := repository.NewShopRepository(mongoDB)
	prices := repository.NewMarketPriceRepository(mongoDB)
	trainings := repository.NewTrainingRepository(mongoDB)
	carts := repository.NewCartRepository(mongoDB)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Reads fall through to MongoDB until the breaker sees Redis again.
		log.Warn("redis ping failed, cart cache degraded", "addr", cfg.RedisAddr, "error", err)
	} else {
		log.Info("redis ping succeeded", "addr", cfg.RedisAddr)
	}
	pingCancel()
	cartCache := c.NewBreakerCache(c.NewRedisCache(redisClient), log)

	var transport publisher.Publisher = publisher.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		transport = publisher.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		log.Info("publishing cart events", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}
	// Runs after srv.Shutdown, so events of drained requests are flushed.
	events := publisher.NewAsyncPublisher(transport, 1024, log)
	defer func() {
		if err := events.Close(); err != nil {
			log.Error("failed to close event publisher", "error", err)
		}
	}()

	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	cartService := s.NewCartService(carts, products, users, cartCache, events, log)
	accountService := s.NewAccountService(users, tokens)
	blogService := s.NewBlogService(blogs, users)

	router := h.NewRouter(h.Handlers{
		Accounts:     h.NewAccountHandler(accountService, cfg.RequestTimeout, log),
		Blogs:        h.NewBlogHandler(blogs, blogService, cfg.RequestTimeout, log),
		Products:     h.NewProductHandler(products, cartService, cfg.RequestTimeout, log),
		Shops:        h.NewShopHandler(shops, cfg.RequestTimeout, log),
		MarketPrices: h.NewMarketPriceHandler(prices, cfg.RequestTimeout, log),
		Trainings:    h.NewTrainingHandler(trainings, cfg.RequestTimeout, log),
		Cart:         h.NewCartHandler(cartService, cfg.RequestTimeout, log),
	}, h.RouterOptions{
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxUploadBytes,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(router, "agromarket"),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Error("failed to disconnect MongoDB", "error", err)
	}

	log.Info("server exited")
}
