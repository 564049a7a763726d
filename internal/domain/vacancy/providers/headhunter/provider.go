package headhunter

import (
	"context"
	"fmt"

	"github.com/honeycarbs/devsalaries/internal/domain"
	"github.com/honeycarbs/devsalaries/internal/domain/vacancy"
	"github.com/honeycarbs/devsalaries/pkg/headhunter"
	"github.com/honeycarbs/devsalaries/pkg/logging"
)

const (
	defaultTitle    = "HeadHunter"
	defaultTemplate = "Программист %s"
	defaultMaxPages = 20
	defaultPerPage  = 100
)

// searchClient describes the subset of the HeadHunter client used by the provider.
type searchClient interface {
	SearchVacancies(ctx context.Context, params headhunter.SearchParams) (*headhunter.Page, error)
}

// Config holds the fixed query filters applied to every label
type Config struct {
	Title         string
	QueryTemplate string
	CategoryParam string
	Category      string
	Area          string
	PeriodDays    int
	PerPage       int
	// MaxPages caps the page walk even if the API keeps reporting more pages
	MaxPages int
	Logger   *logging.Logger
}

// Provider implements vacancy.Provider using the HeadHunter API.
// It stops once the current page index reaches the reported page count.
type Provider struct {
	client searchClient
	cfg    Config
	logger *logging.Logger
}

// NewProvider builds a HeadHunter provider
func NewProvider(client searchClient, cfg Config) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("headhunter provider: client is required")
	}

	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.QueryTemplate == "" {
		cfg.QueryTemplate = defaultTemplate
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = defaultPerPage
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Provider{client: client, cfg: cfg, logger: logger.Named("headhunter")}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "headhunter"
}

// Title returns the report heading
func (p *Provider) Title() string {
	return p.cfg.Title
}

// FetchAll walks /vacancies pages for label
func (p *Provider) FetchAll(ctx context.Context, label string) (domain.FetchResult, error) {
	if p == nil || p.client == nil {
		return domain.FetchResult{}, fmt.Errorf("headhunter provider: client is nil")
	}

	var res domain.FetchResult
	params := headhunter.SearchParams{
		Text:          fmt.Sprintf(p.cfg.QueryTemplate, label),
		CategoryParam: p.cfg.CategoryParam,
		Category:      p.cfg.Category,
		Area:          p.cfg.Area,
		PeriodDays:    p.cfg.PeriodDays,
		PerPage:       p.cfg.PerPage,
	}

	for page := 0; page < p.cfg.MaxPages; page++ {
		params.Page = page

		resp, err := p.client.SearchVacancies(ctx, params)
		if err != nil {
			return domain.FetchResult{}, fmt.Errorf("headhunter: page %d: %w", page, err)
		}

		res.Pages++
		res.Found = resp.Found
		for _, v := range resp.Items {
			res.Listings = append(res.Listings, normalize(v))
		}

		if page >= resp.Pages-1 {
			break
		}
		if page == p.cfg.MaxPages-1 {
			p.logger.Warn("page cap reached before last page",
				"label", label,
				"max_pages", p.cfg.MaxPages,
				"reported_pages", resp.Pages,
			)
		}
	}

	p.logger.Debug("label fetched",
		"label", label,
		"pages", res.Pages,
		"found", res.Found,
		"listings", len(res.Listings),
	)

	return res, nil
}

var _ vacancy.Provider = (*Provider)(nil)

func normalize(v headhunter.Vacancy) domain.Listing {
	if v.Salary == nil {
		return domain.Listing{}
	}

	return domain.Listing{
		Currency:   domain.CanonicalCurrency(v.Salary.Currency),
		SalaryFrom: v.Salary.From,
		SalaryTo:   v.Salary.To,
	}
}
