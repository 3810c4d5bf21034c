package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"qpcrfold/adapters/api"
	"qpcrfold/adapters/postgres"
	"qpcrfold/adapters/stats/transform"
	"qpcrfold/app"
	"qpcrfold/internal"
	"qpcrfold/internal/config"
	"qpcrfold/internal/errors"
	"qpcrfold/ports"
)

// initDatabase connects to PostgreSQL and applies the result schema.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	logger := internal.DefaultLogger

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	var results ports.ResultRepository
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("database error: %v", err)
		}
		defer db.Close()
		results = postgres.NewResultRepository(db)
		logger.Info("Result persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set, results are not persisted")
	}

	analysis := app.NewAnalysisService(transform.NewWeighter())
	sweep := app.NewSweepService(transform.NewWeighter(), cfg.Sweep.MaxParallel)
	service := api.NewService(analysis, sweep, results)

	addr := ":" + cfg.Server.Port
	logger.Info("Serving fold-change API on %s", addr)
	if err := http.ListenAndServe(addr, service.Router()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
