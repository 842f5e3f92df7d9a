package main

import (
	"context"
	"log"
	"time"

	"github.com/api-sage/bookkeeper/src/internal/adapter/repository/postgres"
	"github.com/api-sage/bookkeeper/src/internal/adapter/repository/sqlite"
	"github.com/api-sage/bookkeeper/src/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Driver {
	case config.DriverPostgres:
		if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("initialize sqlite schema: %v", err)
		}
		defer db.Close()
	}

	log.Println("schema is up to date")
}
