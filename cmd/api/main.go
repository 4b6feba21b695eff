package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/AhmedSalahALghzaly/lats-go/api/routes"
	"github.com/AhmedSalahALghzaly/lats-go/internal/analytics"
	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/internal/cart"
	"github.com/AhmedSalahALghzaly/lats-go/internal/catalog"
	"github.com/AhmedSalahALghzaly/lats-go/internal/comments"
	"github.com/AhmedSalahALghzaly/lats-go/internal/customers"
	"github.com/AhmedSalahALghzaly/lats-go/internal/favorites"
	"github.com/AhmedSalahALghzaly/lats-go/internal/marketing"
	"github.com/AhmedSalahALghzaly/lats-go/internal/memberships"
	"github.com/AhmedSalahALghzaly/lats-go/internal/notifications"
	"github.com/AhmedSalahALghzaly/lats-go/internal/orders"
	"github.com/AhmedSalahALghzaly/lats-go/internal/products"
	"github.com/AhmedSalahALghzaly/lats-go/internal/realtime"
	"github.com/AhmedSalahALghzaly/lats-go/internal/roles"
	"github.com/AhmedSalahALghzaly/lats-go/internal/seed"
	syncsvc "github.com/AhmedSalahALghzaly/lats-go/internal/sync"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/config"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/metrics"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/migrate"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(db.Options{
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	closers := []func() error{dbClient.Close}
	defer func() {
		var closeErr error
		for _, closeFn := range closers {
			closeErr = multierr.Append(closeErr, closeFn())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error releasing resources", closeErr)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedOnBoot {
		if err := seed.Run(context.Background(), dbClient, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	redisClient := redis.New(redis.Options{
		Addr:      cfg.Redis.Address,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		Namespace: "alghazaly",
	})
	closers = append(closers, redisClient.Close)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTP(registry)

	hub := realtime.NewHub(logg, httpMetrics)

	resolver := roles.NewResolver(dbClient, cfg.Owner.PrimaryEmail)
	exchanger := auth.NewHTTPExchanger(cfg.Auth.ExchangeURL, cfg.Auth.ExchangeTimeout)
	authService := auth.NewService(auth.NewRepo(dbClient), exchanger, resolver, logg, cfg.Auth.SessionTTL)

	notificationService := notifications.NewService(notifications.NewRepo(dbClient), hub, logg)
	membershipService := memberships.NewService(memberships.NewRepo(dbClient), dbClient, notificationService, logg, cfg.Owner.PrimaryEmail)
	catalogService := catalog.NewService(catalog.NewRepo(dbClient), logg)
	productService := products.NewService(products.NewRepo(dbClient), logg)
	cartService := cart.NewService(cart.NewRepo(dbClient), productService, logg)
	orderService := orders.NewService(
		orders.NewRepo(dbClient),
		dbClient,
		cartService,
		notificationService,
		hub,
		logg,
		cfg.Owner.PrimaryEmail,
		cfg.Checkout.ShippingCost(),
	)
	favoriteService := favorites.NewService(dbClient, productService, logg)
	commentService := comments.NewService(dbClient, productService, logg)
	marketingService := marketing.NewService(dbClient, productService, logg)
	customerService := customers.NewService(dbClient, logg)
	analyticsService := analytics.NewService(dbClient, logg)
	syncService := syncsvc.NewService(dbClient, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			registry,
			hub,
			authService,
			membershipService,
			catalogService,
			productService,
			cartService,
			orderService,
			notificationService,
			favoriteService,
			commentService,
			marketingService,
			customerService,
			analyticsService,
			syncService,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdown:
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
