package anubis

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/platform/cache"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/platform/resilience"
	"github.com/riskibarqy/predipto/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	adminKeyHeader  = "x-admin-key"
	maxResponseSize = 1 << 20
)

var errAnubisTransient = crerr.New("anubis transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	logger        *logging.Logger
	principals    *cache.Store[user.Principal]
	breaker       *resilience.CircuitBreaker
	flight        resilience.Group[user.Principal]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	var principals *cache.Store[user.Principal]
	if cfg.CacheTTL > 0 {
		principals = cache.NewStore[user.Principal](cfg.CacheTTL)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: introspectEndpoint(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		logger:        logger.With("component", "anubis"),
		principals:    principals,
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := tokenCacheKey(token)
	if c.principals != nil {
		if principal, ok := c.principals.Get(ctx, key); ok {
			return principal, nil
		}
	}

	principal, err, _ := c.flight.Do(key, func() (user.Principal, error) {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, err
		}
		principal, reqErr := c.introspect(ctx, token)
		c.breaker.Record(isCircuitFailure(reqErr))
		return principal, reqErr
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "anubis circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: identity provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		if isCircuitFailure(err) {
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	if c.principals != nil {
		c.principals.Set(ctx, key, principal)
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request introspection: %v", errAnubisTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %v", errAnubisTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// A 403 means our admin key was rejected, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: identity provider rejected credentials", usecase.ErrDependencyUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection failed", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: status=%d", errAnubisTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, fmt.Errorf("anubis introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspection returned empty user_id", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func isCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errAnubisTransient)
}
