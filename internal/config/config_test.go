package config

import "testing"

func TestParse_Defaults(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.MailTo == "" || cfg.MailFrom == "" {
		t.Error("expected mail defaults to be set")
	}
	if cfg.TrustedProxyCount != 1 {
		t.Errorf("expected default trusted proxy count 1, got %d", cfg.TrustedProxyCount)
	}
}

// TestParse_MissingMailKey is the asymmetric configuration rule: mail
// credentials are mandatory, the verification secret is not.
func TestParse_MissingMailKey(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")

	if _, err := Parse(); err == nil {
		t.Error("expected error for missing RESEND_API_KEY")
	}
}

func TestParse_TurnstileOptional(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("TURNSTILE_SECRET_KEY", "")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TurnstileSecret != "" {
		t.Errorf("expected empty turnstile secret, got %q", cfg.TurnstileSecret)
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("PORT", "9000")
	t.Setenv("TRUSTED_PROXY_COUNT", "2")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.TrustedProxyCount != 2 || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
