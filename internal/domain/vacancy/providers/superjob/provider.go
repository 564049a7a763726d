package superjob

import (
	"context"
	"fmt"

	"github.com/honeycarbs/devsalaries/internal/domain"
	"github.com/honeycarbs/devsalaries/internal/domain/vacancy"
	"github.com/honeycarbs/devsalaries/pkg/logging"
	"github.com/honeycarbs/devsalaries/pkg/superjob"
)

const (
	defaultTitle    = "SuperJob"
	defaultTemplate = "Программист %s"
	defaultMaxPages = 20
	defaultCount    = 100
)

// searchClient describes the subset of the SuperJob client used by the provider.
type searchClient interface {
	SearchVacancies(ctx context.Context, params superjob.SearchParams) (*superjob.Page, error)
}

// Config holds the fixed query filters applied to every label
type Config struct {
	Title         string
	QueryTemplate string
	Catalogues    string
	Town          string
	PeriodDays    int
	Count         int
	// MaxPages caps the page walk even if the API keeps answering more=true
	MaxPages int
	Logger   *logging.Logger
}

// Provider implements vacancy.Provider using the SuperJob API.
// It stops on the first page whose "more" flag is false.
type Provider struct {
	client searchClient
	cfg    Config
	logger *logging.Logger
}

// NewProvider builds a SuperJob provider
func NewProvider(client searchClient, cfg Config) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("superjob provider: client is required")
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
	if cfg.Count <= 0 {
		cfg.Count = defaultCount
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Provider{client: client, cfg: cfg, logger: logger.Named("superjob")}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "superjob"
}

// Title returns the report heading
func (p *Provider) Title() string {
	return p.cfg.Title
}

// FetchAll walks /2.0/vacancies/ pages for label
func (p *Provider) FetchAll(ctx context.Context, label string) (domain.FetchResult, error) {
	if p == nil || p.client == nil {
		return domain.FetchResult{}, fmt.Errorf("superjob provider: client is nil")
	}

	var res domain.FetchResult
	params := superjob.SearchParams{
		Keyword:    fmt.Sprintf(p.cfg.QueryTemplate, label),
		Catalogues: p.cfg.Catalogues,
		Town:       p.cfg.Town,
		PeriodDays: p.cfg.PeriodDays,
		Count:      p.cfg.Count,
	}

	for page := 0; page < p.cfg.MaxPages; page++ {
		params.Page = page

		resp, err := p.client.SearchVacancies(ctx, params)
		if err != nil {
			return domain.FetchResult{}, fmt.Errorf("superjob: page %d: %w", page, err)
		}

		res.Pages++
		res.Found = resp.Total
		for _, v := range resp.Objects {
			res.Listings = append(res.Listings, normalize(v))
		}

		if !resp.More {
			break
		}
		if page == p.cfg.MaxPages-1 {
			p.logger.Warn("page cap reached while more results remain",
				"label", label,
				"max_pages", p.cfg.MaxPages,
				"total", resp.Total,
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

// SuperJob encodes a missing bound as 0
func normalize(v superjob.Vacancy) domain.Listing {
	l := domain.Listing{Currency: domain.CanonicalCurrency(v.Currency)}
	if v.PaymentFrom > 0 {
		l.SalaryFrom = domain.Float(v.PaymentFrom)
	}
	if v.PaymentTo > 0 {
		l.SalaryTo = domain.Float(v.PaymentTo)
	}
	return l
}
