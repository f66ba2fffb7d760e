package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort int

	// Store selects the order/distribution backend: "memory" or "postgres".
	Store       string
	PostgresDSN string

	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	ResendAPIKey  string
	EmailFrom     string
	BusinessEmail string

	AuthVerifyURL string
	// DevAuthTokens maps bearer tokens to "userID:email:name" triples for
	// local development when no verifier endpoint is configured.
	DevAuthTokens map[string]string

	USPSRatesURL     string
	FreightRatesURL  string
	FreightMinPounds int

	// PricingTablePath optionally overrides the built-in tier table (YAML).
	PricingTablePath string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		Store:       getEnv("ORDER_STORE", "memory"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "https://forcedowels.com/checkout/success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "https://forcedowels.com/checkout/cancel"),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "Force Dowels <orders@forcedowels.com>"),
		BusinessEmail: getEnv("BUSINESS_EMAIL", "info@forcedowels.com"),

		AuthVerifyURL: getEnv("AUTH_VERIFY_URL", ""),
		DevAuthTokens: getEnvMap("DEV_AUTH_TOKENS"),

		USPSRatesURL:     getEnv("USPS_RATES_URL", ""),
		FreightRatesURL:  getEnv("FREIGHT_RATES_URL", ""),
		FreightMinPounds: getEnvInt("FREIGHT_MIN_POUNDS", 150),

		PricingTablePath: getEnv("PRICING_TABLE_PATH", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

// getEnvMap parses "token=user:email:name,token2=..." into a map.
func getEnvMap(key string) map[string]string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	m := make(map[string]string)
	for _, pair := range strings.Split(v, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			continue
		}
		m[k] = val
	}

	if len(m) == 0 {
		return nil
	}
	return m
}
