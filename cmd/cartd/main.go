package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Victor-armando18/promo-cart/internal/api"
	"github.com/Victor-armando18/promo-cart/internal/config"
	"github.com/Victor-armando18/promo-cart/internal/infrastructure"
	"github.com/Victor-armando18/promo-cart/internal/logging"
	"github.com/Victor-armando18/promo-cart/internal/metrics"
	"github.com/Victor-armando18/promo-cart/internal/usecase"
)

func main() {
	configPath := pflag.String("config", os.Getenv("CART_CONFIG"), "optional YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	loader := infrastructure.PatchedSeedLoader{Base: infrastructure.NewSeedLoader(cfg.SeedPath), PatchPath: cfg.SeedPatchPath}
	cart, catalog, err := usecase.NewSession(context.Background(), loader,
		usecase.WithLogger(logger),
		usecase.WithConditions(infrastructure.NewJsonLogicExecutor()),
		usecase.WithRecorder(metrics.NewCartMetrics(reg)),
	)
	if err != nil {
		logger.Fatal("failed to build cart", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))

	api.NewServer(cart, catalog, metrics.NewServerMetrics(reg, "cartd"), logger).Register(e)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("cart_id", cart.ID()))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
