package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"betatrack/models"
)

// Client is the Twelve Data API client with rate limiting and retries
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Twelve Data client
type ClientOptions struct {
	APIKey         string
	RequestTimeout time.Duration
}

// NewClient creates a new Twelve Data API client
func NewClient(options ClientOptions) *Client {
	timeout := options.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  options.APIKey,
		baseURL: "https://api.twelvedata.com",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5), // 5 requests per second
		logger:  log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// GetDailyBars fetches daily OHLC bars for one symbol over a date range,
// sorted oldest first. Start and end are ISO dates (YYYY-MM-DD).
func (c *Client) GetDailyBars(ctx context.Context, symbol, start, end string) ([]models.PriceBar, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	url := fmt.Sprintf(
		"%s/time_series?symbol=%s&interval=1day&start_date=%s&end_date=%s&apikey=%s",
		c.baseURL, symbol, start, end, c.apiKey,
	)

	c.logger.Debug().Str("symbol", symbol).Str("start", start).Str("end", end).Msg("Fetching daily bars")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Use exponential backoff for retries
	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoffStrategy); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("Twelve Data API error: %s", string(body))
	}

	var data models.TwelveResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Values) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No bars in response")
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	// Sort bars by date (oldest first for proper return calculations)
	sort.Slice(data.Values, func(i, j int) bool {
		return data.Values[i].Datetime < data.Values[j].Datetime
	})

	var bars []models.PriceBar
	for _, v := range data.Values {
		bars = append(bars, models.PriceBar{
			Date:  v.Datetime,
			Low:   v.Low,
			High:  v.High,
			Close: v.Close,
		})
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(bars)).Msg("Fetched daily bars")
	return bars, nil
}
