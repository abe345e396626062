package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	CatalogMemory = "memory"
	CatalogMySQL  = "mysql"
)

type ENV struct {
	DBHost                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBPort                string
	Port                  string
	APP_URL               string
	APP_ENV               string
	AppAuthKey            string
	AppEncKey             string
	CatalogSource         string
	MockDelay             time.Duration
	TaxRate               string
	FreeShippingThreshold string
	FlatShippingFee       string
	MIDTRANS_CLIENT_KEY   string
	MIDTRANS_SERVER_KEY   string
	AdminEmail            string
	AdminPassword         string
	SessionIdle           time.Duration
}

// LoadEnv reads .env when present and falls back to the process environment.
func LoadEnv() ENV {
	_ = godotenv.Load(".env")

	return ENV{
		DBHost:                os.Getenv("DB_HOST"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBPort:                os.Getenv("DB_PORT"),
		Port:                  getenv("APP_PORT", ":8080"),
		APP_URL:               getenv("APP_URL", "http://localhost:8080"),
		APP_ENV:               getenv("APP_ENV", "development"),
		AppAuthKey:            os.Getenv("APP_AUTH_KEY"),
		AppEncKey:             os.Getenv("APP_ENC_KEY"),
		CatalogSource:         getenv("CATALOG_SOURCE", CatalogMemory),
		MockDelay:             time.Duration(getenvInt("MOCK_DELAY_MS", 0)) * time.Millisecond,
		TaxRate:               os.Getenv("TAX_RATE"),
		FreeShippingThreshold: os.Getenv("FREE_SHIPPING_THRESHOLD"),
		FlatShippingFee:       os.Getenv("FLAT_SHIPPING_FEE"),
		MIDTRANS_CLIENT_KEY:   os.Getenv("MIDTRANS_CLIENT_KEY"),
		MIDTRANS_SERVER_KEY:   os.Getenv("MIDTRANS_SERVER_KEY"),
		AdminEmail:            os.Getenv("ADMIN_EMAIL"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		SessionIdle:           time.Duration(getenvInt("SESSION_IDLE_MINUTES", 24*60)) * time.Minute,
	}
}

func (e ENV) IsProduction() bool {
	return e.APP_ENV == "production"
}

// Pricing builds the calculator policy, keeping defaults for unset or
// malformed values.
func (e ENV) Pricing(logger *zap.Logger) calc.Config {
	cfg := calc.DefaultConfig()
	cfg.TaxRate = parseDecimal(logger, "TAX_RATE", e.TaxRate, cfg.TaxRate)
	cfg.FreeShippingThreshold = parseDecimal(logger, "FREE_SHIPPING_THRESHOLD", e.FreeShippingThreshold, cfg.FreeShippingThreshold)
	cfg.FlatShippingFee = parseDecimal(logger, "FLAT_SHIPPING_FEE", e.FlatShippingFee, cfg.FlatShippingFee)
	return cfg
}

func parseDecimal(logger *zap.Logger, key, raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		logger.Warn("ignoring invalid pricing value", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return d
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
