package headhunter

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
	defaultBaseURL   = "https://api.hh.ru"
	defaultUserAgent = "devsalaries/0.1"
	defaultPerPage   = 100
)

// NewClient instantiates a HeadHunter API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("headhunter: parse base url: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

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
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// SearchVacancies fetches a single page of /vacancies
func (c *Client) SearchVacancies(ctx context.Context, params SearchParams) (*Page, error) {
	if c == nil {
		return nil, fmt.Errorf("headhunter: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("headhunter: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("headhunter: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("HH-User-Agent", c.userAgent)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headhunter: request failed: %w", err)
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
		return nil, fmt.Errorf("headhunter: decode response: %w", err)
	}

	return &page, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if strings.TrimSpace(params.Text) == "" {
		return "", fmt.Errorf("headhunter: text is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("headhunter: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "vacancies")

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	values := url.Values{}
	values.Set("text", params.Text)
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("per_page", strconv.Itoa(perPage))

	if params.Area != "" {
		values.Set("area", params.Area)
	}
	if params.Category != "" {
		name := params.CategoryParam
		if name == "" {
			name = "professional_role"
		}
		values.Set(name, params.Category)
	}
	if params.PeriodDays > 0 {
		values.Set("period", strconv.Itoa(params.PeriodDays))
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
