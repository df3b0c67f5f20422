package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so tests do not inherit state
// from the developer shell.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_NAME", "APP_ENV", "BASE_URL",
		"SERVER_HOST", "SERVER_PORT",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
		"REDIS_URL", "REDIS_PASSWORD", "REDIS_DB",
		"SESSION_SECRET", "SESSION_ISSUER", "SESSION_TTL", "SESSION_COOKIE", "SESSION_COOKIE_SECURE",
		"GITHUB_ENABLED", "GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET",
		"BOLTDB_PATH", "OAUTH_STATE_TTL", "OAUTH_STATE_CLEANUP",
		"RUN_MIGRATIONS", "MIGRATIONS_PATH",
		"REQUEST_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT_SECONDS",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("GITHUB_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Fatalf("Address()=%q", cfg.Address())
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("session ttl=%v, want 24h", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "taskdeck_session" {
		t.Fatalf("cookie name=%q", cfg.Session.CookieName)
	}
	if !strings.Contains(cfg.Database.URL, "pw@localhost:5432/taskdeck_db") {
		t.Fatalf("database url=%q, want one built from DB_* parts", cfg.Database.URL)
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("GITHUB_ENABLED", "false")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Fatalf("Load() err=%v, want SESSION_SECRET error", err)
	}
}

func TestLoadRequiresDatabaseCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("GITHUB_ENABLED", "false")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL or DB_PASSWORD") {
		t.Fatalf("Load() err=%v, want database credential error", err)
	}
}

func TestLoadRequiresGitHubCredentialsWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "GITHUB_CLIENT_ID") {
		t.Fatalf("Load() err=%v, want github credential error", err)
	}

	t.Setenv("GITHUB_CLIENT_ID", "id")
	t.Setenv("GITHUB_CLIENT_SECRET", "secret")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() err=%v", err)
	}
}

func TestCallbackURL(t *testing.T) {
	cfg := &Config{BaseURL: "https://tasks.example.com"}
	if got := cfg.CallbackURL("github"); got != "https://tasks.example.com/auth/github/callback" {
		t.Fatalf("CallbackURL()=%q", got)
	}
}

func TestDurationParsing(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("GITHUB_ENABLED", "false")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("session ttl=%v, want 30m", cfg.Session.TTL)
	}
	if cfg.Context.RequestTimeout != 7*time.Second {
		t.Fatalf("request timeout=%v, want 7s (bare integers are seconds)", cfg.Context.RequestTimeout)
	}
}
