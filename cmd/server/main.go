package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayush/edusync-gateway/internal/api"
	"github.com/ayush/edusync-gateway/internal/assessment"
	"github.com/ayush/edusync-gateway/internal/auth"
	"github.com/ayush/edusync-gateway/internal/config"
	"github.com/ayush/edusync-gateway/internal/course"
	"github.com/ayush/edusync-gateway/internal/middleware"
	"github.com/ayush/edusync-gateway/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── Backend client ───────────────────────────────────────
	client, err := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		Logger:     log.New(os.Stderr, "api: ", log.LstdFlags),
	})
	if err != nil {
		log.Fatalf("api client: %v", err)
	}
	log.Printf("Backend API at %s", client.BaseURL())

	// ── In-flight guard ──────────────────────────────────────
	var guard middleware.Guard = store.NewLocalGuard(cfg.InFlightTTL)
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		guard = store.NewRedisGuard(rdb, cfg.InFlightTTL)
	}

	// ── MinIO ────────────────────────────────────────────────
	var media course.FileStore
	if cfg.MinioEndpoint != "" {
		mediaStore, err := store.NewMediaStore(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL, cfg.MediaPublicURL,
		)
		if err != nil {
			log.Fatalf("minio connect: %v", err)
		}
		media = mediaStore
	} else {
		log.Println("MINIO_ENDPOINT not set, course media uploads disabled")
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(client)
	courseHandler := course.NewHandler(client, media)
	assessmentHandler := assessment.NewHandler(client)

	// ── Router ───────────────────────────────────────────────
	r := newRouter(cfg.AllowedOrigins, guard, authHandler, courseHandler, assessmentHandler)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		log.Printf("Gateway listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
