// README: Entry point; loads config, wires module services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"campuseats/internal/config"
	httptransport "campuseats/internal/http"
	"campuseats/internal/infra"
	"campuseats/internal/modules/dasher"
	"campuseats/internal/modules/order"
	"campuseats/internal/modules/payment"
	"campuseats/internal/modules/rating"
	"campuseats/internal/modules/shop"
	"campuseats/internal/modules/wallet"
	"campuseats/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("CAMPUSEATS_JWT_SECRET is required")
	}
	verifier := infra.NewJWTVerifier(cfg.Auth.JWTSecret)

	var (
		orderStore   order.Store
		walletStore  wallet.Store
		ratingStore  rating.Store
		shopStore    shop.Store
		dasherStore  dasher.Store
		paymentStore payment.Store
	)
	var redisClient *redis.Client

	switch cfg.Store.Driver {
	case "memory":
		orderStore = order.NewMemoryStore()
		walletStore = wallet.NewMemoryStore()
		ratingStore = rating.NewMemoryStore()
		shopStore = shop.NewMemoryStore()
		dasherStore = dasher.NewMemoryStore()
		paymentStore = payment.NewMemoryStore()
	default:
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		redisClient = infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		orderStore = order.NewPostgresStore(dbPool)
		walletStore = wallet.NewPostgresStore(dbPool)
		ratingStore = rating.NewPostgresStore(dbPool)
		shopStore = shop.NewPostgresStore(dbPool)
		dasherStore = dasher.NewPostgresStore(dbPool)
		paymentStore = payment.NewPostgresStore(dbPool)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if redisClient != nil {
		notifier = notify.NewRedisNotifier(redisClient, cfg.Notify.Channel)
	}
	dispatcher := notify.NewDispatcher(notifier)

	walletSvc := wallet.NewService(walletStore)
	ratingSvc := rating.NewService(ratingStore, redisClient)
	shopSvc := shop.NewService(shopStore)
	dasherSvc := dasher.NewService(dasherStore)
	orderSvc := order.NewService(orderStore, walletSvc, dispatcher)
	paymentSvc := payment.NewService(paymentStore, orderSvc, walletSvc, ratingSvc, shopSvc, dasherSvc)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Order:    orderSvc,
		Payment:  paymentSvc,
		Rating:   ratingSvc,
		Wallet:   walletSvc,
		Shop:     shopSvc,
		Dasher:   dasherSvc,
		Verifier: verifier,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("campuseats api listening on %s (store=%s)", cfg.HTTP.Addr, cfg.Store.Driver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
