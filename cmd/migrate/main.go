package main

import (
	"errors"
	"log"

	"sketchboard/internal/config"
	"sketchboard/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

func main() {
	dir := pflag.String("dir", "db/migrations", "migrations directory")
	down := pflag.Bool("down", false, "roll back every migration instead of applying them")
	pflag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	dsn, err := db.MigrationURL(config.Load())
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	m, err := migrate.New("file://"+*dir, dsn)
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	defer m.Close()

	if *down {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("database rollback failed: %v", err)
		}
		log.Println("database migrations rolled back")
		return
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migrations applied")
}
