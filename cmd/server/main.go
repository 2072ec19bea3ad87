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

	"github.com/ErlanBelekov/bookstore-catalog/config"
	"github.com/ErlanBelekov/bookstore-catalog/internal/bootstrap"
	"github.com/ErlanBelekov/bookstore-catalog/internal/credential"
	"github.com/ErlanBelekov/bookstore-catalog/internal/email"
	"github.com/ErlanBelekov/bookstore-catalog/internal/health"
	"github.com/ErlanBelekov/bookstore-catalog/internal/metrics"
	"github.com/ErlanBelekov/bookstore-catalog/internal/stats"
	httptransport "github.com/ErlanBelekov/bookstore-catalog/internal/transport/http"
	"github.com/ErlanBelekov/bookstore-catalog/internal/transport/http/handler"
	"github.com/ErlanBelekov/bookstore-catalog/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, closeStore, err := bootstrap.OpenStore(ctx, bootstrap.StoreOptions{
		Kind:        cfg.Store,
		DatabaseURL: cfg.DatabaseURL,
		AutoMigrate: cfg.AutoMigrate,
	}, logger)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	hasher, err := credential.NewHasher(cfg.BcryptCost)
	if err != nil {
		stop()
		log.Fatalf("hasher: %v", err)
	}
	mailer := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	authUsecase := usecase.NewAuthUsecase(store.Sellers(), hasher, []byte(cfg.JWTSecret), cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Sellers
	sellerUsecase := usecase.NewSellerUsecase(store, hasher, mailer, logger)
	sellerHandler := handler.NewSellerHandler(sellerUsecase, logger)

	// Books
	bookUsecase := usecase.NewBookUsecase(store)
	bookHandler := handler.NewBookHandler(bookUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, health.Dependency{Name: cfg.Store, Pinger: store})
	refresher := stats.NewRefresher(store, logger, cfg.StatsCron)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, authHandler, sellerHandler, bookHandler, authUsecase, cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		if err := refresher.Start(ctx); err != nil {
			logger.Error("stats refresher", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	<-refresherDone
}
