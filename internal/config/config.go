package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/predipto/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory    = "memory"
	StoragePostgres  = "postgres"
	StorageFirestore = "firestore"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	StorageDriver            string
	DBURL                    string
	DBDisablePreparedBinary  bool
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	CacheEnabled             bool
	CacheTTL                 time.Duration

	ScoreMin            int
	ScoreMax            int
	ScoringWorkers      int
	LeaderboardCacheTTL time.Duration

	FootballDataEnabled             bool
	FootballDataBaseURL             string
	FootballDataToken               string
	FootballDataTimeout             time.Duration
	FootballDataMaxRetries          int
	FootballDataCacheTTL            time.Duration
	FootballDataCircuitEnabled      bool
	FootballDataCircuitFailureCount int
	FootballDataCircuitOpenTimeout  time.Duration

	AnubisBaseURL               string
	AnubisIntrospectURL         string
	AnubisAdminKey              string
	AnubisTimeout               time.Duration
	AnubisTokenCacheTTL         time.Duration
	AnubisCircuitEnabled        bool
	AnubisCircuitFailureCount   int
	AnubisCircuitOpenTimeout    time.Duration
	AnubisCircuitHalfOpenMaxReq int

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string

	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
	JobReconcileCron   string
}

// loader accumulates the first parse error so Load reads as a flat list.
type loader struct {
	err error
}

func (l *loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

func (l *loader) boolVar(key, fallback string) bool {
	v, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		l.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (l *loader) intVar(key string, fallback int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		l.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (l *loader) durationVar(key, fallback string) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		l.fail(fmt.Errorf("parse %s: %w", key, err))
		return 0
	}
	if v <= 0 {
		l.fail(fmt.Errorf("%s must be > 0", key))
	}
	return v
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	l := &loader{}
	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    strings.TrimSpace(getEnv("SERVICE_NAME", "predipto-api")),
		ServiceVersion: strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:       strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		ReadTimeout:    l.durationVar("APP_READ_TIMEOUT", "10s"),
		WriteTimeout:   l.durationVar("APP_WRITE_TIMEOUT", "30s"),
		LogLevel:       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),

		StorageDriver:            strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory))),
		DBURL:                    strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:  l.boolVar("DB_DISABLE_PREPARED_BINARY_RESULT", "true"),
		FirestoreProjectID:       strings.TrimSpace(getEnv("FIRESTORE_PROJECT_ID", "")),
		FirestoreCredentialsFile: strings.TrimSpace(getEnv("FIRESTORE_CREDENTIALS_FILE", "")),
		CacheEnabled:             l.boolVar("CACHE_ENABLED", "true"),
		CacheTTL:                 l.durationVar("CACHE_TTL", "30s"),

		ScoreMin:            l.intVar("SCORE_MIN", 0),
		ScoreMax:            l.intVar("SCORE_MAX", 99),
		ScoringWorkers:      l.intVar("SCORING_WORKERS", 8),
		LeaderboardCacheTTL: l.durationVar("LEADERBOARD_CACHE_TTL", "30s"),

		FootballDataEnabled:             l.boolVar("FOOTBALL_DATA_ENABLED", "false"),
		FootballDataBaseURL:             strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		FootballDataToken:               strings.TrimSpace(getEnv("FOOTBALL_DATA_TOKEN", "")),
		FootballDataTimeout:             l.durationVar("FOOTBALL_DATA_TIMEOUT", "10s"),
		FootballDataMaxRetries:          l.intVar("FOOTBALL_DATA_MAX_RETRIES", 2),
		FootballDataCacheTTL:            l.durationVar("FOOTBALL_DATA_CACHE_TTL", "5m"),
		FootballDataCircuitEnabled:      l.boolVar("FOOTBALL_DATA_CIRCUIT_ENABLED", "true"),
		FootballDataCircuitFailureCount: l.intVar("FOOTBALL_DATA_CIRCUIT_FAILURE_COUNT", 5),
		FootballDataCircuitOpenTimeout:  l.durationVar("FOOTBALL_DATA_CIRCUIT_OPEN_TIMEOUT", "30s"),

		AnubisBaseURL:               strings.TrimSpace(getEnv("ANUBIS_BASE_URL", "http://localhost:8081")),
		AnubisIntrospectURL:         strings.TrimSpace(getEnv("ANUBIS_INTROSPECT_URL", "/v1/auth/introspect")),
		AnubisAdminKey:              strings.TrimSpace(getEnv("ANUBIS_ADMIN_KEY", "")),
		AnubisTimeout:               l.durationVar("ANUBIS_TIMEOUT", "3s"),
		AnubisTokenCacheTTL:         l.durationVar("ANUBIS_TOKEN_CACHE_TTL", "1m"),
		AnubisCircuitEnabled:        l.boolVar("ANUBIS_CIRCUIT_ENABLED", "true"),
		AnubisCircuitFailureCount:   l.intVar("ANUBIS_CIRCUIT_FAILURE_COUNT", 5),
		AnubisCircuitOpenTimeout:    l.durationVar("ANUBIS_CIRCUIT_OPEN_TIMEOUT", "15s"),
		AnubisCircuitHalfOpenMaxReq: l.intVar("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2),

		UptraceEnabled:             l.boolVar("UPTRACE_ENABLED", "false"),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeEnabled:           l.boolVar("PYROSCOPE_ENABLED", "false"),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", "predipto-api")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        l.durationVar("PYROSCOPE_UPLOAD_RATE", "15s"),
		PprofEnabled:               l.boolVar("PPROF_ENABLED", "false"),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),

		SwaggerEnabled:     l.boolVar("SWAGGER_ENABLED", swaggerDefault),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:   strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		JobReconcileCron:   strings.TrimSpace(getEnv("JOB_RECONCILE_CRON", "")),
	}
	if l.err != nil {
		return Config{}, l.err
	}

	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORAGE_DRIVER=%s", StorageFirestore)
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s, %s", c.StorageDriver, StorageMemory, StoragePostgres, StorageFirestore)
	}

	if c.ScoreMin < 0 {
		return fmt.Errorf("SCORE_MIN must be >= 0")
	}
	if c.ScoreMax < c.ScoreMin {
		return fmt.Errorf("SCORE_MAX must be >= SCORE_MIN")
	}
	if c.ScoringWorkers < 1 {
		return fmt.Errorf("SCORING_WORKERS must be > 0")
	}
	if c.FootballDataEnabled && c.FootballDataToken == "" {
		return fmt.Errorf("FOOTBALL_DATA_TOKEN is required when FOOTBALL_DATA_ENABLED=true")
	}
	if c.FootballDataMaxRetries < 0 {
		return fmt.Errorf("FOOTBALL_DATA_MAX_RETRIES must be >= 0")
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if c.AppEnv == EnvProd && c.JobReconcileCron != "" && c.InternalJobToken == "" {
		return fmt.Errorf("INTERNAL_JOB_TOKEN is required in %s when JOB_RECONCILE_CRON is set", EnvProd)
	}

	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
