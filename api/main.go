package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/cart-tracker/internal/activity"
	"github.com/rogerio-castellano/cart-tracker/internal/auth"
	"github.com/rogerio-castellano/cart-tracker/internal/config"
	"github.com/rogerio-castellano/cart-tracker/internal/db"
	api "github.com/rogerio-castellano/cart-tracker/internal/http"
	"github.com/rogerio-castellano/cart-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/cart-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/cart-tracker/internal/logger"
	"github.com/rogerio-castellano/cart-tracker/internal/models"
	"github.com/rogerio-castellano/cart-tracker/internal/redissvc"
	"github.com/rogerio-castellano/cart-tracker/internal/repo"
	"github.com/rogerio-castellano/cart-tracker/internal/session"
)

// @title Cart Tracker API
// @version 1.0
// @description REST API for session shopping carts driven by a cart reducer.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(os.Getenv("CART_CONFIG"))
	if err != nil {
		log.Fatalf("❌ Could not load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("❌ Could not build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg.Catalog.File)
	if err != nil {
		return err
	}

	productRepo, historyRepo, closeDB, err := openRepositories(ctx, cfg.Database.URL, catalog, zl)
	if err != nil {
		return err
	}
	defer closeDB()

	recorder, closeRedis, err := openRecorder(ctx, cfg.Redis, zl)
	if err != nil {
		return err
	}
	defer closeRedis()

	store := session.NewStore(cfg.Session.TTL)
	service := session.NewService(store, historyRepo, recorder, zl.Named("session"))
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	handlers.SetLogger(zl.Named("http"))
	handlers.SetProductRepo(productRepo)
	handlers.SetHistoryRepo(historyRepo)
	handlers.SetActivityRecorder(recorder)
	handlers.SetCartService(service)
	handlers.SetTokenIssuer(tokens)

	go store.StartCleanupLoop(ctx, cfg.Session.CleanupInterval, func(removed int) {
		zl.Info("expired sessions removed", zap.Int("count", removed))
	})
	go limiter.StartVisitorCleanupLoop(ctx)
	go activity.StartDailySummary(ctx, recorder, zl.Named("activity"))

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(api.Options{Tokens: tokens, Limiter: limiter}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("✅ Server running", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(path string) ([]models.Product, error) {
	if path == "" {
		return repo.DefaultCatalog(), nil
	}
	return repo.LoadCatalogFile(path)
}

// openRepositories uses Postgres when a database URL is configured and the
// in-memory repositories otherwise.
func openRepositories(ctx context.Context, dbURL string, catalog []models.Product, zl *zap.Logger) (repo.ProductRepository, repo.ActionLogRepository, func(), error) {
	if dbURL == "" {
		zl.Info("no database configured, using in-memory catalog and history")
		products, err := repo.NewInMemoryProductRepository(catalog)
		if err != nil {
			return nil, nil, nil, err
		}
		return products, repo.NewInMemoryActionLogRepository(), func() {}, nil
	}

	database, err := db.Connect(dbURL)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() { closeQuietly(database, zl) }

	if err := db.Migrate(ctx, database); err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	products := repo.NewPostgresProductRepository(database)
	if err := products.Seed(catalog); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	return products, repo.NewPostgresActionLogRepository(database), closeDB, nil
}

// openRecorder uses Redis when an address is configured and keeps the digest
// in memory otherwise.
func openRecorder(ctx context.Context, rc config.RedisConfig, zl *zap.Logger) (activity.Recorder, func(), error) {
	if rc.Addr == "" {
		zl.Info("no redis configured, keeping activity in memory")
		return activity.NewInMemoryRecorder(), func() {}, nil
	}

	rdb, err := redissvc.Connect(ctx, redissvc.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB})
	if err != nil {
		return nil, nil, err
	}
	return activity.NewRedisRecorder(rdb), func() { _ = rdb.Close() }, nil
}

func closeQuietly(database *sql.DB, zl *zap.Logger) {
	if err := database.Close(); err != nil {
		zl.Warn("could not close database", zap.Error(err))
	}
}
