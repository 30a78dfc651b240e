package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/predipto/internal/domain/match"
	"github.com/riskibarqy/predipto/internal/platform/logging"
	"github.com/riskibarqy/predipto/internal/platform/resilience"
	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL  = "https://api.football-data.org/v4"
	maxResponseSize = 4 << 20
	authHeader      = "X-Auth-Token"
)

var (
	errFootballDataTransient = crerr.New("football-data transient failure")
	errFootballDataNotFound  = crerr.New("football-data resource not found")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads competitions, matches and teams from football-data.org v4.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.Group[[]byte]
}

var _ match.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = time.Second
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger.With("component", "football-data"),
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

func (c *Client) ListCompetitions(ctx context.Context) ([]match.Competition, error) {
	var envelope competitionsEnvelope
	if err := c.doJSON(ctx, "/competitions", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch competitions: %w", err)
	}

	out := make([]match.Competition, 0, len(envelope.Competitions))
	for _, item := range envelope.Competitions {
		if item.ID <= 0 {
			continue
		}
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) ListMatchesByCompetition(ctx context.Context, competitionID int64) ([]match.Match, error) {
	if competitionID <= 0 {
		return nil, fmt.Errorf("competition id must be greater than zero")
	}

	var envelope matchesEnvelope
	path := "/competitions/" + strconv.FormatInt(competitionID, 10) + "/matches"
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matches competition_id=%d: %w", competitionID, err)
	}
	return mapMatches(envelope.Matches), nil
}

func (c *Client) ListUpcomingMatches(ctx context.Context) ([]match.Match, error) {
	var envelope matchesEnvelope
	query := map[string]string{"status": match.StatusScheduled}
	if err := c.doJSON(ctx, "/matches", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch upcoming matches: %w", err)
	}
	return mapMatches(envelope.Matches), nil
}

func (c *Client) GetTeam(ctx context.Context, teamID int64) (match.Team, bool, error) {
	if teamID <= 0 {
		return match.Team{}, false, fmt.Errorf("team id must be greater than zero")
	}

	var payload teamPayload
	err := c.doJSON(ctx, "/teams/"+strconv.FormatInt(teamID, 10), nil, &payload)
	if stderrors.Is(err, errFootballDataNotFound) {
		return match.Team{}, false, nil
	}
	if err != nil {
		return match.Team{}, false, fmt.Errorf("fetch team team_id=%d: %w", teamID, err)
	}
	if payload.ID <= 0 {
		return match.Team{}, false, nil
	}
	return payload.toDomain(), true, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		if err := c.breaker.Allow(); err != nil {
			return nil, err
		}
		raw, reqErr := c.executeRequest(ctx, fullURL)
		c.breaker.Record(stderrors.Is(reqErr, errFootballDataTransient))
		return raw, reqErr
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: match provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set(authHeader, c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFootballDataTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: status=%d", errFootballDataNotFound, resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody copies the capped body through a pooled buffer.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxResponseSize)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
