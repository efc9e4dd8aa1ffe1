package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawpad.org/internal/auth"
	"pawpad.org/internal/config"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/envelope"
	"pawpad.org/internal/httpapi"
	"pawpad.org/internal/media"
	"pawpad.org/internal/obs"
	"pawpad.org/internal/placement"
	"pawpad.org/internal/store/pg"
)

var version = "1.2.0"

func main() {
	obs.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var store *pg.Store
	if cfg.DatabaseDSN != "" {
		store, err = pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
	}
	if store == nil {
		log.Fatal("PAWPAD_PG_DSN is required")
	}

	cipher, err := envelope.New(cfg.EnvelopeKey)
	if err != nil {
		log.Fatalf("envelope: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewService(store, tokens)
	kennel := dogs.NewService(store.Dogs())
	placements := placement.NewService(store.Placements(), store.Dogs())

	var mediaStore media.Store
	if cfg.Media.Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := media.NewClient(ctx, cfg.Media)
		cancel()
		if err != nil {
			log.Fatalf("media: %v", err)
		}
		mediaStore = client
	}

	api := httpapi.New(authSvc, kennel, placements, cipher, mediaStore,
		httpapi.ReadyProbe{DB: store.DB()},
		httpapi.Options{
			Version:    version,
			Production: cfg.Production(),
			RateBurst:  cfg.RateBurst,
			RatePerSec: cfg.RatePerSec,
		})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting pawpad-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = store.Close()
	log.Println("Stopped")
}
