package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/config"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("no se pudo conectar a la base de datos", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
		log.Info("base de datos conectada", nil)
	} else {
		log.Warn("sin DB_DSN: usando almacenamiento in-memory", nil)
	}

	h := router.NewRouter(router.Options{
		DB:        db,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		BaseURL:   cfg.BaseURL,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
		// la consulta pública puede esperar hasta 5s de geolocalización
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("servidor iniciado", map[string]any{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error del servidor", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("apagando servidor", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("apagado forzado", map[string]any{"error": err.Error()})
		}
	}
}
