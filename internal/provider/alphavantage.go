package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockSentry/internal/model"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage
// TIME_SERIES_DAILY_ADJUSTED endpoint. Requires an API key.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a fetcher against the given base URL
// (default https://www.alphavantage.co/query).
func NewAlphaVantageFetcher(baseURL, apiKey string, timeout time.Duration) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co/query"
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDailyResponse mirrors the TIME_SERIES_DAILY_ADJUSTED payload. Error and
// rate-limit responses come back as 200s with special keys, so those are
// decoded too.
type avDailyResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
}

func (f *AlphaVantageFetcher) FetchDailyCloses(symbol string, days int) ([]model.PricePoint, error) {
	outputSize := "full"
	if days <= 100 {
		outputSize = "compact" // compact returns the latest 100 points
	}
	endpoint := fmt.Sprintf("%s?function=TIME_SERIES_DAILY_ADJUSTED&symbol=%s&outputsize=%s&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), outputSize, url.QueryEscape(f.APIKey))

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var daily avDailyResponse
	if err := json.Unmarshal(body, &daily); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if daily.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", daily.ErrorMessage)
	}
	if daily.Note != "" {
		return nil, fmt.Errorf("alphavantage rate limit: %s", daily.Note)
	}
	if daily.Information != "" {
		return nil, fmt.Errorf("alphavantage api notice: %s", daily.Information)
	}
	if len(daily.TimeSeries) == 0 {
		return nil, fmt.Errorf("alphavantage: no data returned for %s", symbol)
	}

	points := make([]model.PricePoint, 0, len(daily.TimeSeries))
	for dateStr, fields := range daily.TimeSeries {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad date %q: %w", dateStr, err)
		}
		closeStr, ok := fields["5. adjusted close"]
		if !ok {
			// Non-adjusted endpoint variants use "4. close".
			closeStr, ok = fields["4. close"]
			if !ok {
				return nil, fmt.Errorf("alphavantage: missing close for %s", dateStr)
			}
		}
		var close float64
		if _, err := fmt.Sscanf(closeStr, "%f", &close); err != nil {
			return nil, fmt.Errorf("alphavantage: bad close %q for %s: %w", closeStr, dateStr, err)
		}
		points = append(points, model.PricePoint{Date: date, Close: close})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}
