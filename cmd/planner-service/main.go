package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hearthside/planner/internal/api"
	"github.com/hearthside/planner/internal/config"
	"github.com/hearthside/planner/internal/platform/factory"
	"github.com/hearthside/planner/internal/platform/logger"
)

func main() {
	// Optional driver flag override (sqlite | postgres)
	dbDriver := flag.String("db-driver", "", "Override DB_DRIVER (sqlite, postgres)")
	flag.Parse()

	log := logger.New("planner-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dbDriver != "" {
		cfg.DBDriver = *dbDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid db-driver override")
		}
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Planner service starting…")

	loc := time.Local
	if cfg.DefaultTimeZone != "" && cfg.DefaultTimeZone != "Local" {
		loc, err = time.LoadLocation(cfg.DefaultTimeZone)
		if err != nil {
			log.Fatal().Err(err).Str("zone", cfg.DefaultTimeZone).Msg("Invalid default time zone")
		}
	}

	// -------- Storage layer -----------------
	storeLayer, err := factory.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Storage adapter unavailable")
	}

	// -------- Router & Server --------------
	router := api.NewRouter(storeLayer, api.RouterOptions{
		MaxCalendarBytes: cfg.MaxCalendarBytes,
		Location:         loc,
	})
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
