package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunID identifies one comparison run across providers
type RunID = uuid.UUID

// Listing is one normalized job posting. Nil bounds mean the posting did not advertise them.
type Listing struct {
	Currency   string
	SalaryFrom *float64
	SalaryTo   *float64
}

// HasSalary reports whether at least one bound is present
func (l Listing) HasSalary() bool {
	return l.SalaryFrom != nil || l.SalaryTo != nil
}

// InCurrency compares currency codes case-insensitively
func (l Listing) InCurrency(code string) bool {
	return strings.EqualFold(strings.TrimSpace(l.Currency), strings.TrimSpace(code))
}

// FetchResult is everything a provider returned for one label
type FetchResult struct {
	// Found is the provider-reported total; it may disagree with len(Listings)
	Found    int
	Listings []Listing
	Pages    int
}

// LabelSummary aggregates one (provider, label) pass
type LabelSummary struct {
	Provider           string
	Label              string
	VacanciesFound     int
	VacanciesProcessed int
	// AverageSalary is nil when no listing yielded an estimate
	AverageSalary *float64
	// Err is set when the fetch failed and the summary carries no data
	Err error
}

// Available reports whether the summary came from a successful fetch
func (s LabelSummary) Available() bool {
	return s.Err == nil
}

// ProviderSummaries keeps one provider's summaries in label order
type ProviderSummaries struct {
	Provider  string
	Title     string
	Summaries []LabelSummary
}

// Comparison is the outcome of one run over every provider and label
type Comparison struct {
	RunID      RunID
	Labels     []string
	Providers  []ProviderSummaries
	StartedAt  time.Time
	FinishedAt time.Time
}

// Float returns a pointer to v, handy for optional salary bounds
func Float(v float64) *float64 {
	return &v
}

// legacy and lower-case codes seen in provider payloads
var currencyAliases = map[string]string{
	"RUR": "RUB",
}

// CanonicalCurrency upper-cases code and maps provider aliases to ISO 4217
func CanonicalCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if alias, ok := currencyAliases[code]; ok {
		return alias
	}
	return code
}
