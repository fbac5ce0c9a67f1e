package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Port string
	}
	Catalog struct {
		FeedURL string
	}
	Order struct {
		ShippingCost     decimal.Decimal
		WhatsAppNumber   string
		MaxMessageLength int
	}
	Summary struct {
		APIKey string
	}
}

func Load(path string) (*Config, error) {
	if path != "" {
		err := godotenv.Load(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	cfg.Catalog.FeedURL = os.Getenv("CATALOG_FEED_URL")
	if cfg.Catalog.FeedURL == "" {
		return nil, fmt.Errorf("CATALOG_FEED_URL is required")
	}

	cfg.Order.WhatsAppNumber = os.Getenv("WHATSAPP_NUMBER")
	if cfg.Order.WhatsAppNumber == "" {
		return nil, fmt.Errorf("WHATSAPP_NUMBER is required")
	}

	shipping := os.Getenv("SHIPPING_COST")
	if shipping == "" {
		shipping = "20"
	}
	cost, err := decimal.NewFromString(shipping)
	if err != nil || cost.IsNegative() {
		return nil, fmt.Errorf("SHIPPING_COST must be a non-negative decimal, got %q", shipping)
	}
	cfg.Order.ShippingCost = cost

	maxLen := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxLen == "" {
		cfg.Order.MaxMessageLength = 4096
	} else {
		n, err := strconv.Atoi(maxLen)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_MESSAGE_LENGTH must be a positive integer, got %q", maxLen)
		}
		cfg.Order.MaxMessageLength = n
	}

	cfg.Summary.APIKey = os.Getenv("GEMINI_API_KEY")

	return cfg, nil
}
