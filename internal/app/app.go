package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/predipto/external/footballdata"
	"github.com/riskibarqy/predipto/internal/config"
	"github.com/riskibarqy/predipto/internal/domain/match"
	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/predipto/internal/infrastructure/repository/cache"
	firestorerepo "github.com/riskibarqy/predipto/internal/infrastructure/repository/firestore"
	"github.com/riskibarqy/predipto/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/predipto/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/predipto/internal/interfaces/httpapi"
	"github.com/riskibarqy/predipto/internal/platform/dburl"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/platform/resilience"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
)

// Repositories is the storage set every service is built on.
type Repositories struct {
	Predictions prediction.Repository
	Results     result.Repository
	Points      scoring.Repository
	Users       user.Repository
	close       func() error
}

func (r Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Services is the usecase layer, shared by the HTTP API and the admin CLI.
type Services struct {
	Matches     *usecase.MatchService
	Predictions *usecase.PredictionService
	Results     *usecase.ResultService
	Scoring     *usecase.ScoringService
	Leaderboard *usecase.LeaderboardService
	Users       *usecase.UserService
}

func OpenRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (Repositories, error) {
	var repos Repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return Repositories{}, err
		}
		repos = Repositories{
			Predictions: postgres.NewPredictionRepository(db),
			Results:     postgres.NewResultRepository(db),
			Points:      postgres.NewPointsRepository(db),
			Users:       postgres.NewUserRepository(db),
			close:       db.Close,
		}
	case config.StorageFirestore:
		client, err := openFirestore(ctx, cfg)
		if err != nil {
			return Repositories{}, err
		}
		repos = Repositories{
			Predictions: firestorerepo.NewPredictionRepository(client),
			Results:     firestorerepo.NewResultRepository(client),
			Points:      firestorerepo.NewPointsRepository(client),
			Users:       firestorerepo.NewUserRepository(client),
			close:       client.Close,
		}
	default:
		repos = Repositories{
			Predictions: memory.NewPredictionRepository(),
			Results:     memory.NewResultRepository(),
			Points:      memory.NewPointsRepository(),
			Users:       memory.NewUserRepository(nil),
		}
	}

	if cfg.CacheEnabled && cfg.StorageDriver != config.StorageMemory {
		repos.Results = cacherepo.NewResultRepository(repos.Results, cfg.CacheTTL)
		repos.Users = cacherepo.NewUserRepository(repos.Users, cfg.CacheTTL)
	}

	logger.Info("storage ready", "driver", cfg.StorageDriver, "cache_enabled", cfg.CacheEnabled)
	return repos, nil
}

func NewServices(cfg config.Config, repos Repositories, logger *logging.Logger) *Services {
	bounds := scoring.Bounds{Min: cfg.ScoreMin, Max: cfg.ScoreMax}

	users := usecase.NewUserService(repos.Users)
	leaderboard := usecase.NewLeaderboardService(repos.Users, cfg.LeaderboardCacheTTL)
	scoringSvc := usecase.NewScoringService(
		repos.Results,
		repos.Predictions,
		repos.Points,
		repos.Users,
		leaderboard,
		usecase.ScoringServiceConfig{Workers: cfg.ScoringWorkers},
		logger,
	)

	return &Services{
		Matches:     usecase.NewMatchService(newMatchProvider(cfg, logger), footballdata.NewFallback(), cfg.FootballDataCacheTTL, logger),
		Predictions: usecase.NewPredictionService(repos.Predictions, repos.Results, scoringSvc, bounds, logger),
		Results:     usecase.NewResultService(repos.Results, users, scoringSvc, bounds, logger),
		Scoring:     scoringSvc,
		Leaderboard: leaderboard,
		Users:       users,
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	verifier := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		CacheTTL:       cfg.AnubisTokenCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})

	handler := httpapi.NewHandler(
		services.Matches,
		services.Predictions,
		services.Results,
		services.Scoring,
		services.Leaderboard,
		services.Users,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, services.Users, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}, nil
}

// newMatchProvider returns nil when the live API is disabled so the match
// service serves the built-in dataset.
func newMatchProvider(cfg config.Config, logger *logging.Logger) match.Provider {
	if !cfg.FootballDataEnabled {
		logger.Info("football-data provider disabled", "reason", "FOOTBALL_DATA_ENABLED=false")
		return nil
	}

	return footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    cfg.FootballDataBaseURL,
		Token:      cfg.FootballDataToken,
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
		},
	})
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dburl.Name(dsn)),
		otelsql.WithQueryFormatter(dburl.TraceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func openFirestore(ctx context.Context, cfg config.Config) (*fs.Client, error) {
	var opts []option.ClientOption
	if cfg.FirestoreCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
	}

	client, err := fs.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("open firestore project=%s: %w", cfg.FirestoreProjectID, err)
	}
	return client, nil
}
