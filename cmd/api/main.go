package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/securewatch/internal/application"
	appai "github.com/bryanwahyu/securewatch/internal/application/ai"
	appscans "github.com/bryanwahyu/securewatch/internal/application/scans"
	"github.com/bryanwahyu/securewatch/internal/config"
	"github.com/bryanwahyu/securewatch/internal/domain/risk"
	domain "github.com/bryanwahyu/securewatch/internal/domain/scans"
	openaiClient "github.com/bryanwahyu/securewatch/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/securewatch/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/securewatch/internal/infra/db/postgres"
	sqlitep "github.com/bryanwahyu/securewatch/internal/infra/db/sqlite"
	"github.com/bryanwahyu/securewatch/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/securewatch/internal/infra/storage"
	"github.com/bryanwahyu/securewatch/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect store per configured driver
	db, repo, err := connectRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("database connect error: %v", err)
	}
	defer db.Close()

	// evidence store is optional
	var evidence domain.EvidenceStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		evidence = store
	}

	// init service
	svc := &appscans.Service{
		Repo:     repo,
		URLs:     risk.NewURLAnalyzer(cfg.Analysis),
		Media:    risk.NewMediaAnalyzer(cfg.Analysis),
		Evidence: evidence,
		Clock:    application.SystemClock{},
	}

	// advisor is optional
	var aiSvc *appai.Service
	if cfg.AI.APIKey != "" {
		aiSvc = appai.NewService(openaiClient.NewClient(cfg.AI.APIKey, cfg.AI.Model))
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	// init router + middleware chain
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	mux.Mount("/", httpserver.NewRouter(svc, aiSvc, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func connectRepository(ctx context.Context, cfg *config.Config) (*sql.DB, domain.Repository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlitep.Connect(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlitep.NewScanRepository(db), nil
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, mysqlp.NewScanRepository(db), nil
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, postgresp.NewScanRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}
