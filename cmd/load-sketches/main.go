package main

import (
	"context"
	"log"

	"sketchboard/internal/config"
	"sketchboard/internal/db"

	"github.com/spf13/pflag"
)

func main() {
	filePath := pflag.String("file", "sketches.csv", "path to a name,drawing csv")
	pflag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	store := db.NewSketchStore(conn, cfg.IDStrategy)
	inserted, err := db.LoadSketches(context.Background(), store, *filePath)
	if err != nil {
		log.Fatalf("failed to load sketches after %d rows: %v", inserted, err)
	}
	log.Printf("loaded %d sketches", inserted)
}
