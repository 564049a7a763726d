package headhunter

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Config defines HeadHunter API client settings
type Config struct {
	BaseURL string
	// UserAgent is sent as HH-User-Agent; the API rejects anonymous clients
	UserAgent     string
	HTTPClient    *http.Client
	RatePerSecond float64
	Burst         int
}

// Client queries the HeadHunter vacancies API one page at a time
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SearchParams describe a single page request
type SearchParams struct {
	Text string
	// CategoryParam names the query parameter carrying Category,
	// e.g. professional_role or specialization
	CategoryParam string
	Category      string
	Area          string
	PeriodDays    int
	Page          int
	PerPage       int
}

// Page is one decoded /vacancies response
type Page struct {
	Found   int       `json:"found"`
	Pages   int       `json:"pages"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	Items   []Vacancy `json:"items"`
}

// Vacancy is the subset of a HeadHunter vacancy we read
type Vacancy struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Salary *Salary `json:"salary"`
}

// Salary is null in the payload when the employer did not publish one
type Salary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
	Gross    *bool    `json:"gross"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("headhunter: API error (%d): %s", e.StatusCode, e.Body)
}
