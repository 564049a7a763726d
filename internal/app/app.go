package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/honeycarbs/devsalaries/internal/config"
	"github.com/honeycarbs/devsalaries/internal/domain/vacancy"
	hhProvider "github.com/honeycarbs/devsalaries/internal/domain/vacancy/providers/headhunter"
	sjProvider "github.com/honeycarbs/devsalaries/internal/domain/vacancy/providers/superjob"
	"github.com/honeycarbs/devsalaries/internal/report"
	"github.com/honeycarbs/devsalaries/pkg/headhunter"
	"github.com/honeycarbs/devsalaries/pkg/logging"
	sheetsclient "github.com/honeycarbs/devsalaries/pkg/sheets"
	"github.com/honeycarbs/devsalaries/pkg/superjob"
)

// App bundles the configured providers and optional sinks shared by the CLI and the MCP server
type App struct {
	Config    config.Config
	Logger    *logging.Logger
	Providers []vacancy.Provider
	// Sheets is nil when the export is not configured
	Sheets *report.SheetsExporter
}

// NewService builds a comparison service over providers, or over every provider when none are given
func (a *App) NewService(providers []vacancy.Provider, opts ...vacancy.Option) (vacancy.Service, error) {
	if len(providers) == 0 {
		providers = a.Providers
	}

	base := []vacancy.Option{
		vacancy.WithProviders(providers...),
		vacancy.WithCurrency(a.Config.Currency),
		vacancy.WithConcurrency(a.Config.Concurrency),
		vacancy.WithLogger(a.Logger),
	}

	return vacancy.NewService(append(base, opts...)...)
}

// SelectProviders returns the providers named in names, in the order given
func (a *App) SelectProviders(names []string) ([]vacancy.Provider, error) {
	if len(names) == 0 {
		return a.Providers, nil
	}

	byName := make(map[string]vacancy.Provider, len(a.Providers))
	for _, p := range a.Providers {
		byName[p.Name()] = p
	}

	out := make([]vacancy.Provider, 0, len(names))
	for _, n := range names {
		p, ok := byName[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("app: unknown provider %q", n)
		}
		out = append(out, p)
	}

	return out, nil
}

func newApp(cfg config.Config, logger *logging.Logger, providers []vacancy.Provider, sheets *report.SheetsExporter) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Providers: providers,
		Sheets:    sheets,
	}
}

// provideHTTPClient applies the per-request timeout to every provider call
func provideHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.RequestTimeout}
}

func provideHeadHunterClient(cfg config.Config, httpClient *http.Client) (*headhunter.Client, error) {
	return headhunter.NewClient(headhunter.Config{
		BaseURL:       cfg.HeadHunter.BaseURL,
		UserAgent:     cfg.HeadHunter.UserAgent,
		HTTPClient:    httpClient,
		RatePerSecond: cfg.HeadHunter.RatePerSecond,
	})
}

func provideSuperJobClient(cfg config.Config, httpClient *http.Client) (*superjob.Client, error) {
	return superjob.NewClient(superjob.Config{
		AppKey:        cfg.SuperJob.Key,
		BaseURL:       cfg.SuperJob.BaseURL,
		HTTPClient:    httpClient,
		RatePerSecond: cfg.SuperJob.RatePerSecond,
	})
}

func provideHeadHunterProvider(cfg config.Config, client *headhunter.Client, logger *logging.Logger) (*hhProvider.Provider, error) {
	return hhProvider.NewProvider(client, hhProvider.Config{
		Title:         cfg.HeadHunter.Title,
		QueryTemplate: cfg.HeadHunter.QueryTemplate,
		CategoryParam: cfg.HeadHunter.CategoryParam,
		Category:      cfg.HeadHunter.Category,
		Area:          cfg.HeadHunter.Area,
		PeriodDays:    cfg.HeadHunter.PeriodDays,
		PerPage:       cfg.HeadHunter.PerPage,
		MaxPages:      cfg.HeadHunter.MaxPages,
		Logger:        logger,
	})
}

func provideSuperJobProvider(cfg config.Config, client *superjob.Client, logger *logging.Logger) (*sjProvider.Provider, error) {
	return sjProvider.NewProvider(client, sjProvider.Config{
		Title:         cfg.SuperJob.Title,
		QueryTemplate: cfg.SuperJob.QueryTemplate,
		Catalogues:    cfg.SuperJob.Catalogues,
		Town:          cfg.SuperJob.Town,
		PeriodDays:    cfg.SuperJob.PeriodDays,
		Count:         cfg.SuperJob.Count,
		MaxPages:      cfg.SuperJob.MaxPages,
		Logger:        logger,
	})
}

// provideProviders fixes the table order: HeadHunter first, then SuperJob
func provideProviders(hh *hhProvider.Provider, sj *sjProvider.Provider) []vacancy.Provider {
	return []vacancy.Provider{hh, sj}
}

// provideSheetsExporter returns nil when the export is not configured
func provideSheetsExporter(ctx context.Context, cfg config.Config) (*report.SheetsExporter, error) {
	if !cfg.Sheets.Enabled() {
		return nil, nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, err
	}

	return report.NewSheetsExporter(client, cfg.Sheets.SpreadsheetID)
}
