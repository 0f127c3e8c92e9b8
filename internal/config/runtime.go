package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL   = "24h"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultGatewayBaseURL = "https://api.razorpay.com/v1"
	defaultGatewayTimeout = "15s"
	defaultAdvisorEmail   = "srajangupta220@gmail.com"
	defaultBookingTZ      = "Asia/Kolkata"
	defaultCheckoutTheme  = "#d97706"
	defaultMerchantName   = "AstroTech Wealth"
)

// RuntimeConfig carries everything the API process reads from the
// environment. Prod-like environments must not run on the defaults for
// secrets.
type RuntimeConfig struct {
	AppEnv          string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	RazorpayKeyID   string
	RazorpaySecret  string
	GatewayBaseURL  string
	GatewayTimeout  time.Duration
	MerchantName    string
	CheckoutTheme   string
	AdvisorEmail    string
	BookingLocation *time.Location
	AssistantURL    string
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RazorpayKeyID = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID"))
	cfg.RazorpaySecret = strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))
	cfg.GatewayBaseURL = strings.TrimSpace(getEnv("RAZORPAY_BASE_URL", defaultGatewayBaseURL))
	cfg.MerchantName = getEnv("MERCHANT_NAME", defaultMerchantName)
	cfg.CheckoutTheme = getEnv("CHECKOUT_THEME_COLOR", defaultCheckoutTheme)
	cfg.AdvisorEmail = strings.TrimSpace(getEnv("ADVISOR_EMAIL", defaultAdvisorEmail))
	cfg.AssistantURL = strings.TrimSpace(os.Getenv("ASSISTANT_URL"))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.GatewayTimeout, err = parseDurationEnv("GATEWAY_TIMEOUT", defaultGatewayTimeout)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("BOOKING_TIMEZONE", defaultBookingTZ))
	cfg.BookingLocation, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE value %q: %w", tz, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("runtime config: env=%s gateway=%s timezone=%s", cfg.AppEnv, cfg.GatewayBaseURL, tz)

	return cfg, nil
}

func validateConfig(cfg *RuntimeConfig) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.GatewayTimeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be > 0")
	}
	if cfg.AdvisorEmail == "" {
		return fmt.Errorf("ADVISOR_EMAIL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.RazorpayKeyID == "" || cfg.RazorpaySecret == "" {
			return fmt.Errorf("in prod/release RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
