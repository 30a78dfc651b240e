package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/predipto/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.ScoreMin != 0 || cfg.ScoreMax != 99 {
		t.Fatalf("unexpected score bounds: %d..%d", cfg.ScoreMin, cfg.ScoreMax)
	}
	if cfg.ScoringWorkers != 8 {
		t.Fatalf("unexpected scoring workers: %d", cfg.ScoringWorkers)
	}
	if cfg.LeaderboardCacheTTL != 30*time.Second {
		t.Fatalf("unexpected leaderboard ttl: %s", cfg.LeaderboardCacheTTL)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled outside prod")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_SwaggerDisabledInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}, wantErr: true},
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres"}, wantErr: true},
		{name: "postgres with url", env: map[string]string{"STORAGE_DRIVER": "postgres", "DB_URL": "postgres://localhost/predipto"}},
		{name: "firestore without project", env: map[string]string{"STORAGE_DRIVER": "firestore"}, wantErr: true},
		{name: "firestore with project", env: map[string]string{"STORAGE_DRIVER": "FIRESTORE", "FIRESTORE_PROJECT_ID": "predipto"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_ScoreBoundsValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORE_MIN", "5")
	t.Setenv("SCORE_MAX", "3")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SCORE_MAX < SCORE_MIN")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEADERBOARD_CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid LEADERBOARD_CACHE_TTL")
	}
}

func TestLoad_FootballDataRequiresToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_ENABLED", "true")
	t.Setenv("FOOTBALL_DATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FOOTBALL_DATA_ENABLED=true without token")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %#v", cfg.CORSAllowedOrigins)
	}
}
