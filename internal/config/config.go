package config

import (
	"fmt"
	"os"

	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

// Config is assembled once at boot and passed by reference; it is never
// mutated afterwards.
type Config struct {
	BaseURL     string
	DSN         string
	FlashSecret string
	Saferpay    saferpay.Config
}

func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:     os.Getenv("BASE_URL"),
		DSN:         os.Getenv("DB_DSN"),
		FlashSecret: os.Getenv("FLASH_SECRET"),
		Saferpay: saferpay.Config{
			CustomerID: os.Getenv("SIX_SAFERPAY_CUSTOMER_ID"),
			TerminalID: os.Getenv("SIX_SAFERPAY_TERMINAL_ID"),
			Username:   os.Getenv("SIX_SAFERPAY_USERNAME"),
			Password:   os.Getenv("SIX_SAFERPAY_PASSWORD"),
			BaseURL:    os.Getenv("SIX_SAFERPAY_BASE_URL"),
			CSSURL:     os.Getenv("SIX_SAFERPAY_CSS_URL"),
		},
	}

	required := map[string]string{
		"BASE_URL":                 cfg.BaseURL,
		"DB_DSN":                   cfg.DSN,
		"FLASH_SECRET":             cfg.FlashSecret,
		"SIX_SAFERPAY_CUSTOMER_ID": cfg.Saferpay.CustomerID,
		"SIX_SAFERPAY_TERMINAL_ID": cfg.Saferpay.TerminalID,
		"SIX_SAFERPAY_USERNAME":    cfg.Saferpay.Username,
		"SIX_SAFERPAY_PASSWORD":    cfg.Saferpay.Password,
		"SIX_SAFERPAY_BASE_URL":    cfg.Saferpay.BaseURL,
	}
	for name, v := range required {
		if v == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	return cfg, nil
}
