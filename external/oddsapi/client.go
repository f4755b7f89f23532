package oddsapi

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
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
	"github.com/jmcauliffe/gamepulse/internal/platform/logging"
	"github.com/jmcauliffe/gamepulse/internal/platform/resilience"
	"github.com/jmcauliffe/gamepulse/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.the-odds-api.com/v4/sports"
	defaultRegions    = "us"
	defaultOddsFormat = "american"
	defaultDaysFrom   = 1
	sourceName        = "the-odds-api"

	headerQuotaRemaining = "x-requests-remaining"
	headerQuotaUsed      = "x-requests-used"
)

// Bookmakers tried first when picking a quote, most trusted first.
var defaultPreferredBookmakers = []string{"draftkings", "fanduel", "betmgm"}

var defaultMarkets = []string{marketSpreads, marketTotals}

var errOddsAPITransient = crerr.New("odds api transient failure")

type ClientConfig struct {
	HTTPClient          *http.Client
	BaseURL             string
	APIKey              string
	Regions             string
	Markets             []string
	PreferredBookmakers []string
	DaysFrom            int
	Timeout             time.Duration
	MaxRetries          int
	Logger              *logging.Logger
	CircuitBreaker      resilience.CircuitBreakerConfig
}

// Client talks to The Odds API v4 and implements usecase.OddsProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	regions        string
	markets        []string
	preferred      []string
	daysFrom       int
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	validate       *validator.Validate
	flight         singleflight.Group
}

var _ usecase.OddsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	regions := strings.TrimSpace(cfg.Regions)
	if regions == "" {
		regions = defaultRegions
	}
	markets := normalizeKeys(cfg.Markets)
	if len(markets) == 0 {
		markets = defaultMarkets
	}
	preferred := normalizeKeys(cfg.PreferredBookmakers)
	if len(preferred) == 0 {
		preferred = defaultPreferredBookmakers
	}
	daysFrom := cfg.DaysFrom
	if daysFrom <= 0 {
		daysFrom = defaultDaysFrom
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		regions:        regions,
		markets:        markets,
		preferred:      preferred,
		daysFrom:       daysFrom,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		validate:       validator.New(),
	}
}

// FetchQuotes pulls the odds board for one sport and normalizes each event
// into an expectation record. Events without usable market data are dropped;
// the returned count covers every event the provider sent.
func (c *Client) FetchQuotes(ctx context.Context, sportKey string) ([]expectation.Expectation, int, error) {
	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, 0, fmt.Errorf("%w: sport key is required", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"regions":    c.regions,
		"markets":    strings.Join(c.markets, ","),
		"oddsFormat": defaultOddsFormat,
		"dateFormat": "iso",
	}

	var events []Event
	if err := c.doJSON(ctx, "/"+sportKey+"/odds", query, &events); err != nil {
		return nil, 0, fmt.Errorf("fetch odds sport=%s: %w", sportKey, err)
	}
	for i := range events {
		if err := c.validate.Struct(&events[i]); err != nil {
			return nil, 0, fmt.Errorf("odds payload failed validation sport=%s: %w", sportKey, err)
		}
	}

	capturedAt := time.Now().UTC()
	quotes := make([]expectation.Expectation, 0, len(events))
	for _, event := range events {
		quote := normalizeEvent(event, c.markets, c.preferred, capturedAt)
		if quote == nil {
			c.logger.DebugContext(ctx, "odds event dropped, no usable market data",
				"event_id", event.ID, "sport_key", event.SportKey)
			continue
		}
		quotes = append(quotes, *quote)
	}
	return quotes, len(events), nil
}

// FetchScores pulls recent score events for one sport. Missing or
// unparseable score values leave the corresponding fields nil.
func (c *Client) FetchScores(ctx context.Context, sportKey string) ([]usecase.ExternalScore, error) {
	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, fmt.Errorf("%w: sport key is required", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"daysFrom":   strconv.Itoa(c.daysFrom),
		"dateFormat": "iso",
	}

	var events []ScoreEvent
	if err := c.doJSON(ctx, "/"+sportKey+"/scores", query, &events); err != nil {
		return nil, fmt.Errorf("fetch scores sport=%s: %w", sportKey, err)
	}
	for i := range events {
		if err := c.validate.Struct(&events[i]); err != nil {
			return nil, fmt.Errorf("scores payload failed validation sport=%s: %w", sportKey, err)
		}
	}

	scores := make([]usecase.ExternalScore, 0, len(events))
	for _, event := range events {
		scores = append(scores, mapScoreEvent(event))
	}
	return scores, nil
}

func mapScoreEvent(event ScoreEvent) usecase.ExternalScore {
	out := usecase.ExternalScore{
		EventID:      event.ID,
		SportKey:     event.SportKey,
		HomeTeam:     event.HomeTeam,
		AwayTeam:     event.AwayTeam,
		CommenceTime: event.CommenceTime,
		Completed:    event.Completed,
		LastUpdate:   event.LastUpdate,
	}
	for _, entry := range event.Scores {
		value, err := strconv.Atoi(strings.TrimSpace(entry.Score))
		if err != nil {
			continue
		}
		score := value
		switch entry.Name {
		case event.HomeTeam:
			out.HomeScore = &score
		case event.AwayTeam:
			out.AwayScore = &score
		}
	}
	return out
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	flightKey := path + "?" + values.Encode()
	values.Set("apiKey", c.apiKey)
	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(flightKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errOddsAPITransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
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
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errOddsAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errOddsAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				c.logQuota(ctx, resp.Header)
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOddsAPITransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
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
	c.logger.WarnContext(ctx, "odds api request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// Quota headers are informational only; the fetch planner is what actually
// bounds spend.
func (c *Client) logQuota(ctx context.Context, header http.Header) {
	remaining := strings.TrimSpace(header.Get(headerQuotaRemaining))
	if remaining == "" {
		return
	}
	c.logger.InfoContext(ctx, "odds api quota",
		"remaining", remaining, "used", strings.TrimSpace(header.Get(headerQuotaUsed)))
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func sanitizeSensitiveText(text, secret string) string {
	if strings.TrimSpace(secret) == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
