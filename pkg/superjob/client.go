package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.superjob.ru"
	defaultCount   = 100
)

// NewClient instantiates a SuperJob API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppKey == "" {
		return nil, fmt.Errorf("superjob: app key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		appKey:     cfg.AppKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// SearchVacancies fetches a single page of /2.0/vacancies/
func (c *Client) SearchVacancies(ctx context.Context, params SearchParams) (*Page, error) {
	if c == nil {
		return nil, fmt.Errorf("superjob: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("superjob: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("superjob: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-App-Id", c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("superjob: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("superjob: decode response: %w", err)
	}

	return &page, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if strings.TrimSpace(params.Keyword) == "" {
		return "", fmt.Errorf("superjob: keyword is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("superjob: parse base url: %w", err)
	}
	// the trailing slash is significant for this API
	u.Path = path.Join(u.Path, "2.0", "vacancies") + "/"

	count := params.Count
	if count <= 0 {
		count = defaultCount
	}

	values := url.Values{}
	values.Set("keyword", params.Keyword)
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("count", strconv.Itoa(count))

	if params.Town != "" {
		values.Set("town", params.Town)
	}
	if params.Catalogues != "" {
		values.Set("catalogues", params.Catalogues)
	}
	if params.PeriodDays > 0 {
		values.Set("period", strconv.Itoa(params.PeriodDays))
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
