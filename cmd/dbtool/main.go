package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"roadtrip-weather-service/internal/adapters/repositories"
	"roadtrip-weather-service/internal/adapters/weather"
	"roadtrip-weather-service/internal/config"
	"roadtrip-weather-service/internal/platform/db"
	"roadtrip-weather-service/internal/ports"
)

// dbtool initializes the schema, seeds the city set and ingests historical
// weather normals for every active city. Run it whenever the city list
// changes; the planning service itself never calls the weather API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	var repo ports.CityRepository
	var store ports.WeatherStore

	if cfg.DatabaseURL != "" {
		conn, err = db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewSQLCityRepository(conn)
		store = repositories.NewSQLNormalsStore(conn)
	} else {
		conn, err = db.OpenSqlite(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewSqliteCityRepository(conn)
		store = repositories.NewSqliteNormalsStore(conn)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if cfg.DatabaseURL == "" {
		log.Println("Seeding city set...")
		if err := repositories.SeedFromJSON(conn, cfg.SeedPath); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		log.Println("Seeding complete.")
	}

	provider, err := weather.NewMeteostatProvider(cfg.MeteostatURL, cfg.MeteostatToken)
	if err != nil {
		log.Fatal(err)
	}

	if err := ingestNormals(context.Background(), repo, store, provider); err != nil {
		log.Fatalf("normals ingestion failed: %v", err)
	}
	log.Println("Normals ingestion complete.")
}

// ingestNormals fetches and stores day-of-year normals for every active
// city. A city whose station has no history is logged and kept; it will
// surface as missing weather at plan time.
func ingestNormals(
	ctx context.Context,
	repo ports.CityRepository,
	store ports.WeatherStore,
	provider ports.NormalsProvider,
) error {
	cities, err := repo.ListCities(ctx)
	if err != nil {
		return err
	}

	for _, c := range cities {
		records, err := provider.GetNormals(ctx, c.Lat, c.Lon)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			log.Printf("no weather data available for %s in %s", c.Name, c.Country)
			continue
		}

		if err := store.PutNormals(ctx, c.Key(), records); err != nil {
			return err
		}
		log.Printf("ingested %d normals city=%q country=%q", len(records), c.Name, c.Country)
	}

	return nil
}
