package main

import (
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/fadendaten/solidus-six-saferpay/internal/config"
	apphttp "github.com/fadendaten/solidus-six-saferpay/internal/http"
	"github.com/fadendaten/solidus-six-saferpay/internal/http/handlers"
	"github.com/fadendaten/solidus-six-saferpay/internal/shared/errreport"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	reporter := errreport.New(logger)

	r := apphttp.NewRouter(logger, db, cfg, reporter, handlers.Hooks{})
	_ = r.Run(":8080")
}
