package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/skotchmaster/storefront/internal/config"
	"github.com/skotchmaster/storefront/internal/events"
	"github.com/skotchmaster/storefront/internal/httpserver"
	"github.com/skotchmaster/storefront/internal/logging"
	"github.com/skotchmaster/storefront/internal/middleware"
	"github.com/skotchmaster/storefront/internal/service"
	"github.com/skotchmaster/storefront/internal/store"
)

func buildStores(cfg config.Config) (store.ProductStore, store.UserStore, error) {
	switch cfg.StoreBackend {
	case "file":
		return store.NewFileProductStore(cfg.ProductsFile), store.NewFileUserStore(cfg.UsersFile), nil
	case "sqlite":
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return &store.GormProductStore{DB: db}, &store.GormUserStore{DB: db}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	productStore, userStore, err := buildStores(cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	catalogSvc := service.NewCatalogService(productStore)
	authSvc := service.NewAuthService(userStore, cfg.JWTSecret, cfg.BcryptCost)

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: producer},
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		JWTSecret:      cfg.JWTSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "store_backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
