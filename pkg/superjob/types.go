package superjob

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Config defines SuperJob API client settings
type Config struct {
	// AppKey is the X-Api-App-Id secret issued to the application
	AppKey        string
	BaseURL       string
	HTTPClient    *http.Client
	RatePerSecond float64
	Burst         int
}

// Client queries the SuperJob vacancies API one page at a time
type Client struct {
	appKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SearchParams describe a single page request
type SearchParams struct {
	Keyword    string
	Catalogues string
	Town       string
	PeriodDays int
	Page       int
	Count      int
}

// Page is one decoded /2.0/vacancies/ response
type Page struct {
	Total   int       `json:"total"`
	More    bool      `json:"more"`
	Objects []Vacancy `json:"objects"`
}

// Vacancy is the subset of a SuperJob vacancy we read.
// The API reports 0 for bounds the employer left empty.
type Vacancy struct {
	ID          int64   `json:"id"`
	Profession  string  `json:"profession"`
	PaymentFrom float64 `json:"payment_from"`
	PaymentTo   float64 `json:"payment_to"`
	Currency    string  `json:"currency"`
	Agreement   bool    `json:"agreement"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("superjob: API error (%d): %s", e.StatusCode, e.Body)
}
