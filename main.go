// Package main is the entry point of the sphere backend.
//
// main only wires things together:
//
//  1. Config
//  2. Logger
//  3. Database and migrations
//  4. Repositories, services, handlers (init_*.go)
//  5. Routes, metrics, CORS
//  6. HTTP server and graceful shutdown
//
// There are no globals; everything is built here and passed down.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/akinalp/sphere/config"
	"github.com/akinalp/sphere/database"
	"github.com/akinalp/sphere/middleware"
	"github.com/akinalp/sphere/pkg/logger"
)

func main() {
	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// ─── 2. Logger ───
	logger.New(cfg.Log)
	log.Info().Str("component", "main").Int("port", cfg.Server.Port).Msg("config loaded")

	// ─── 3. Database ───
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// ─── 4. Layers ───
	repos := initRepositories(db.Conn)
	svcs, caches, limiters := initServices(repos, cfg)
	defer caches.Close()
	defer limiters.Close()
	h := initHandlers(svcs, limiters, db.Conn, cfg)

	// ─── 5. Routes ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
	})

	// ─── 6. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      corsHandler.Handler(middleware.Instrument(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("component", "main").Str("addr", cfg.Addr()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	log.Info().Str("component", "main").Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}

	log.Info().Str("component", "main").Msg("server stopped gracefully")
}
