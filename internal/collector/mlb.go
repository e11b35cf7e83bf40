package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"BatterBoost/internal/model"
)

// DefaultMLBBaseURL is the public MLB Stats API.
const DefaultMLBBaseURL = "https://statsapi.mlb.com"

// MLBFetcher implements Fetcher using the MLB Stats API.
type MLBFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewMLBFetcher creates a new fetcher with optional proxy support.
func NewMLBFetcher(baseURL, proxyURL string) *MLBFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultMLBBaseURL
	}
	return &MLBFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

func (f *MLBFetcher) Name() string { return "mlb-statsapi" }

func (f *MLBFetcher) FetchSchedule(ctx context.Context, teamID int, date time.Time) (*model.Schedule, error) {
	endpoint := fmt.Sprintf("%s/api/v1/schedule?sportId=1&teamId=%d&date=%s", f.BaseURL, teamID, date.Format("2006-01-02"))
	var sched model.Schedule
	if err := f.getJSON(ctx, "fetch schedule", endpoint, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

func (f *MLBFetcher) FetchLiveFeed(ctx context.Context, gamePk int) (*model.LiveFeed, error) {
	endpoint := fmt.Sprintf("%s/api/v1.1/game/%d/feed/live", f.BaseURL, gamePk)
	var feed model.LiveFeed
	if err := f.getJSON(ctx, "fetch live feed", endpoint, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

func (f *MLBFetcher) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return &FeedError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return &FeedError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FeedError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("body: %s", string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FeedError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
