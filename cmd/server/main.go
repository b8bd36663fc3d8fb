package main

import (
	"log"
	"net/http"

	"sketchboard/internal/config"
	"sketchboard/internal/db"
	"sketchboard/internal/server"

	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to an optional .env file")
	port := pflag.String("port", "", "listen port (overrides PORT)")
	pflag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}

	var conn *gorm.DB
	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is not set; sketches are kept in memory")
	} else {
		var err error
		conn, err = db.Open(cfg)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if cfg.AutoMigrate {
			if err := db.Migrate(conn); err != nil {
				log.Fatalf("database migration failed: %v", err)
			}
		}
	}

	srv := server.New(conn, cfg)
	addr := ":" + cfg.Port
	log.Printf("sketchboard server listening on %s id_strategy=%s", addr, cfg.IDStrategy)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
