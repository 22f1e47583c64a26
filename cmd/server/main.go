package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TanishqM1/ladderbook/internal/handler"
	"github.com/TanishqM1/ladderbook/internal/middleware"
	"github.com/TanishqM1/ladderbook/internal/registry"
)

const (
	// defaultAddr is the listening endpoint mandated for the HTTP surface.
	defaultAddr        = "0.0.0.0:6060"
	defaultMetricsAddr = "0.0.0.0:9090"
	shutdownTimeout    = 5 * time.Second
)

func main() {
	log := middleware.Logger
	log.Info().Msg("starting ladderbook service")

	books := registry.New()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.PrometheusMiddleware())

	h := handler.NewHandler(books)
	h.RegisterRoutes(r)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = defaultMetricsAddr
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    metricsAddr,
		Handler: metricsMux,
	}

	go func() {
		log.Info().Str("addr", metricsAddr).Msg("metrics server listening")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("metrics server error")
		}
	}()

	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown error")
	}

	log.Info().Msg("ladderbook service stopped")
}
