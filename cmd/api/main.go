// cmd/api/main.go
//
// Mobile-post catalogue – HTTP entry point.
//
// Startup life-cycle
// ------------------
//
//  1. Load env vars (system-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load and validate configuration (YAML + MOBILEPOST_* env overrides).
//
//  4. Open the catalogue DB and log the current record count.
//
//  5. Expose the Prometheus /metrics endpoint alongside the record API.
//
//  6. Serve /api/mobileposts until SIGINT/SIGTERM, then drain in-flight
//     requests before exiting.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/mobilepost/internal/api"
	"github.com/yanizio/mobilepost/internal/config"
	"github.com/yanizio/mobilepost/internal/database"
	"github.com/yanizio/mobilepost/internal/logger"
	"github.com/yanizio/mobilepost/internal/post"
	"github.com/yanizio/mobilepost/internal/server"
)

const systemEnvPath = "/usr/local/etc/mobilepost/global.env"

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(systemEnvPath); err == nil {
		_ = godotenv.Load(systemEnvPath)
		return
	}
	_ = godotenv.Load()
}

func init() { loadEnv() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, "api", logger.InteractiveTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	//
	// ── 1.  Catalogue DB connect ────────────────────────────────────────
	//
	logOut.Infow("connecting to catalogue DB")
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect catalogue DB: %v", err)
	}
	defer db.Close()

	store := &post.Store{DB: db}

	// Log the record count as an early sanity check.
	if n, err := store.CountAll(context.Background()); err == nil {
		logOut.Infof("%d mobile post(s) in catalogue", n)
	}

	//
	// ── 2.  Router: record API + metrics endpoint ──────────────────────
	//
	svc := post.NewService(store, logOut)
	h := api.NewHandler(svc, logOut)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", h.Routes())

	srv := server.New(cfg.HTTP.ListenAddr, r)

	//
	// ── 3.  Serve until SIGINT/SIGTERM, then drain ─────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logOut.Infow("shutdown requested, draining")
		return server.Drain(srv)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
	logOut.Infow("shutdown complete")
}
