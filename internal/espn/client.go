package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	BaseURL                 = "https://site.api.espn.com/apis/site/v2/sports"
	CommonBaseURL           = "https://site.web.api.espn.com/apis/common/v3/sports"
	WomensCollegeBasketball = "basketball/womens-college-basketball"

	defaultUserAgent = "Mozilla/5.0 (compatible; Courtside/1.0)"
	scoreboardLimit  = 300
)

// Options configures a Client. Zero values fall back to the public ESPN
// endpoints for women's college basketball.
type Options struct {
	BaseURL       string
	CommonBaseURL string
	SportPath     string
	Timeout       time.Duration // zero leaves requests unbounded
	HTTPClient    *http.Client
}

// Client handles ESPN API requests
type Client struct {
	baseURL       string
	commonBaseURL string
	sportPath     string
	httpClient    *http.Client
	userAgent     string
}

// New creates a new ESPN API client
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.CommonBaseURL == "" {
		opts.CommonBaseURL = CommonBaseURL
	}
	if opts.SportPath == "" {
		opts.SportPath = WomensCollegeBasketball
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	log.Printf("[espn-client] using %s/%s", opts.BaseURL, opts.SportPath)
	return &Client{
		baseURL:       opts.BaseURL,
		commonBaseURL: opts.CommonBaseURL,
		sportPath:     opts.SportPath,
		httpClient:    httpClient,
		userAgent:     defaultUserAgent,
	}
}

// FetchTeam fetches team info, including record and next event
func (c *Client) FetchTeam(ctx context.Context, teamID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/teams/%s", c.baseURL, c.sportPath, url.PathEscape(teamID))
	return c.fetch(ctx, u)
}

// FetchSchedule fetches a team's schedule. season is the year the season ends
// in (2026 for 2025-26).
func (c *Client) FetchSchedule(ctx context.Context, teamID string, season int) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/teams/%s/schedule?season=%d", c.baseURL, c.sportPath, url.PathEscape(teamID), season)
	return c.fetch(ctx, u)
}

// FetchScoreboard fetches games for a specific date
// If date is zero, fetches ESPN's "today"
func (c *Client) FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	var u string
	if date.IsZero() {
		u = fmt.Sprintf("%s/%s/scoreboard", c.baseURL, c.sportPath)
	} else {
		u = fmt.Sprintf("%s/%s/scoreboard?dates=%s&limit=%d", c.baseURL, c.sportPath, DateKey(date), scoreboardLimit)
	}
	return c.fetch(ctx, u)
}

// FetchRoster fetches a team's roster for a season end year
func (c *Client) FetchRoster(ctx context.Context, teamID string, season int) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/teams/%s/roster?season=%d", c.baseURL, c.sportPath, url.PathEscape(teamID), season)
	return c.fetch(ctx, u)
}

// FetchGameSummary fetches detailed game summary with box scores
func (c *Client) FetchGameSummary(ctx context.Context, eventID string) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, c.sportPath, url.QueryEscape(eventID))
	return c.fetch(ctx, u)
}

// FetchAthleteStats fetches one athlete's season stats from the common API
func (c *Client) FetchAthleteStats(ctx context.Context, athleteID string, season int) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/athletes/%s/stats?season=%d", c.commonBaseURL, c.sportPath, url.PathEscape(athleteID), season)
	return c.fetch(ctx, u)
}

// fetch makes an HTTP GET request and returns parsed JSON
func (c *Client) fetch(ctx context.Context, u string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("ESPN API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result == nil {
		result = map[string]interface{}{}
	}

	return result, nil
}
