// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Mail path. A missing API key is a hard startup failure: reports must
	// never be accepted and then silently dropped.
	ResendAPIKey string
	MailFrom     string
	MailTo       string

	// Verification path. Empty means bypass (development/degraded mode).
	TurnstileSecret string

	// Optional shared rate-limit store for multi-process deployments.
	RedisAddr string

	TrustedProxyCount int
}

// Parse reads the environment and applies defaults.
func Parse() (Config, error) {
	cfg := Config{
		Port:              getString("PORT", "8080"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		MailFrom:          getString("MAIL_FROM", "TaskLift ROI <roi@notifications.tasklift.io>"),
		MailTo:            getString("MAIL_TO", "hello@tasklift.io"),
		TurnstileSecret:   os.Getenv("TURNSTILE_SECRET_KEY"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		TrustedProxyCount: getInt("TRUSTED_PROXY_COUNT", 1),
	}

	if cfg.ResendAPIKey == "" {
		return cfg, errors.New("RESEND_API_KEY is required")
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
