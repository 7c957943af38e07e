package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/cart"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/checkout"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/config"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/db"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/events"
	httpapi "github.com/RahatDev11/anys-beauty-corner-sub000/internal/http"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/notification"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/order"

	bannerpkg "github.com/RahatDev11/anys-beauty-corner-sub000/internal/banner"
	catalogpkg "github.com/RahatDev11/anys-beauty-corner-sub000/internal/catalog"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Str("service", "storefront").Logger()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres
	if err := db.RunMigrations(cfg.DatabaseDSN); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	pool := db.MustOpenPool(ctx, cfg.DatabaseDSN)
	defer pool.Close()

	// Redis
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("ping redis")
	}

	// RabbitMQ
	rabbitConn := events.MustDial(cfg.RabbitURL)
	defer rabbitConn.Close()

	// Repositories
	cartRepo := cart.NewPostgresRepository(pool)
	orderRepo := order.NewPostgresRepository(pool)
	productRepo := catalogpkg.NewPostgresRepository(pool)
	bannerRepo := bannerpkg.NewPostgresRepository(pool)
	notificationRepo := notification.NewPostgresRepository(pool)
	sequenceRepo := events.NewSequenceRepository(pool)

	// Eventing
	publisher, err := events.NewPublisher(rabbitConn, sequenceRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("create publisher")
	}
	defer publisher.Close()

	if err := events.StartOrderPlacedConsumer(ctx, rabbitConn, notificationRepo); err != nil {
		log.Fatal().Err(err).Msg("start notification consumer")
	}

	// Core services
	redisStore := cart.NewRedisStore(redisClient)
	engine := cart.NewEngine(redisStore, cartRepo, redisStore)
	checkoutService := checkout.NewService(engine, orderRepo, publisher)
	orderService := order.NewService(orderRepo)

	router := httpapi.NewRouter(httpapi.Deps{
		Engine:           engine,
		Checkout:         checkoutService,
		Orders:           orderService,
		Products:         productRepo,
		Banners:          bannerRepo,
		Notifications:    notificationRepo,
		AdminToken:       cfg.AdminToken,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()
}
