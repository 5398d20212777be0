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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"roadtrip-weather-service/internal/adapters/cache"
	"roadtrip-weather-service/internal/adapters/geodata"
	"roadtrip-weather-service/internal/adapters/repositories"
	"roadtrip-weather-service/internal/api"
	"roadtrip-weather-service/internal/config"
	"roadtrip-weather-service/internal/platform/db"
	"roadtrip-weather-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, geodata CSV, Redis) behind ports and
// starts the HTTP server with graceful shutdown.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sqlite, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer sqlite.Close()

	// Initialize schema and seed the demo city set on startup for local runs.
	if err := initAndSeed(sqlite, cfg.SeedPath); err != nil {
		return err
	}

	cityRepo := repositories.NewSqliteCityRepository(sqlite)
	loader := geodata.NewLoader(cfg.GeodataDir)

	var weather ports.WeatherStore = repositories.NewSqliteNormalsStore(sqlite)
	// Redis is optional: without REDIS_URL every normals read hits SQLite,
	// which is fine for a single planning session.
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		weather = cache.NewRedisNormalsCache(rdb, weather, cfg.NormalsTTL)
		log.Println("normals cache: redis enabled")
	}

	router := api.NewRouter(cityRepo, weather, loader)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func initAndSeed(sqlite *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqlite); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		log.Printf("seed file %q not found, starting with current city set", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(sqlite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return rdb, nil
}
