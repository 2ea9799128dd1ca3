package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"lexora.app/internal/backend"
	"lexora.app/internal/httpapi"
	"lexora.app/internal/identity"
	"lexora.app/internal/obs"
	"lexora.app/internal/portal"
	"lexora.app/internal/store/pg"
	"lexora.app/internal/stream"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	// Postgres backs the readiness probe, portal invites, and the audit
	// event store. Without a DSN the gateway still runs; those surfaces
	// answer 503.
	var db *sql.DB
	if dsn := os.Getenv("LEXORA_PG_DSN"); dsn != "" {
		var err error
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	backendURL := os.Getenv("LEXORA_BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:9000"
	}
	core, err := backend.New(backendURL)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	resolver, err := identity.NewResolver(core)
	if err != nil {
		log.Fatalf("identity resolver: %v", err)
	}

	var (
		invites    *portal.Service
		auditStore *pg.Store
	)
	if db != nil {
		store := pg.NewWithDB(db)
		invites, err = portal.NewService(store)
		if err != nil {
			log.Fatalf("portal service: %v", err)
		}
		auditStore = store
	}

	cfg := httpapi.Config{
		Version:    version,
		ReadyProbe: httpapi.ReadyProbe{DB: db},
		Resolver:   resolver,
		Backend:    core,
		Invites:    invites,
		Events:     stream.NewHub(),
	}
	if auditStore != nil {
		cfg.AuditStore = auditStore
	}
	api, err := httpapi.New(cfg)
	if err != nil {
		log.Fatalf("httpapi: %v", err)
	}

	addr := os.Getenv("LEXORA_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting lexora-gateway %s on %s", version, srv.Addr)

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
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
