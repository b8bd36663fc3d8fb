package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// IDStrategy selects how a sketch's primary key is produced.
type IDStrategy string

const (
	// IDAuto lets the store assign sequential ids; listing orders by id.
	IDAuto IDStrategy = "auto"
	// IDTimestamp derives the id from the insert moment; listing orders by created.
	IDTimestamp IDStrategy = "timestamp"
)

func ParseIDStrategy(raw string) (IDStrategy, error) {
	switch IDStrategy(strings.ToLower(strings.TrimSpace(raw))) {
	case IDAuto, "":
		return IDAuto, nil
	case IDTimestamp:
		return IDTimestamp, nil
	default:
		return "", fmt.Errorf("unknown sketch id strategy %q", raw)
	}
}

type Config struct {
	Port                     string
	DatabaseURL              string
	IDStrategy               IDStrategy
	DBTLSSkipVerify          bool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	AutoMigrate              bool
	ExposeStorageErrors      bool
}

func Default() Config {
	return Config{
		Port:                     "8080",
		IDStrategy:               IDAuto,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("SKETCH_ID_STRATEGY"); raw != "" {
		value, err := ParseIDStrategy(raw)
		if err != nil {
			log.Printf("invalid SKETCH_ID_STRATEGY value=%q; using %s", raw, cfg.IDStrategy)
		} else {
			cfg.IDStrategy = value
		}
	}
	if raw := os.Getenv("DB_TLS_SKIP_VERIFY"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.DBTLSSkipVerify = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoMigrate = value
		}
	}
	if raw := os.Getenv("EXPOSE_STORAGE_ERRORS"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.ExposeStorageErrors = value
		}
	}
	return cfg
}
