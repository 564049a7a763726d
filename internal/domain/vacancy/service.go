package vacancy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/devsalaries/internal/domain"
	"github.com/honeycarbs/devsalaries/pkg/logging"
)

const (
	defaultConcurrency = 4
	// MaxConcurrency bounds the worker pool regardless of configuration
	MaxConcurrency = 8
)

var (
	ErrNoProviders = errors.New("vacancy: at least one provider is required")
	ErrNoLabels    = errors.New("vacancy: at least one label is required")
)

// Service compares salaries for a label set across providers
type Service interface {
	Compare(ctx context.Context, labels []string) (domain.Comparison, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	providers   []Provider
	currency    string
	concurrency int
	logger      *logging.Logger
	progress    func(domain.LabelSummary)
	clock       func() time.Time
}

// WithProviders sets job providers; their order is the table order
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithCurrency sets the target currency code
func WithCurrency(code string) Option {
	return func(c *config) {
		c.currency = code
	}
}

// WithConcurrency sets the worker pool size, clamped to [1, MaxConcurrency]
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithProgress registers a callback fired after each (provider, label) task.
// It may be called from several goroutines at once.
func WithProgress(fn func(domain.LabelSummary)) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		currency:    "RUB",
		concurrency: defaultConcurrency,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.providers) == 0 {
		return nil, ErrNoProviders
	}
	if cfg.currency == "" {
		return nil, fmt.Errorf("vacancy.Service: currency is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	switch {
	case cfg.concurrency < 1:
		cfg.concurrency = 1
	case cfg.concurrency > MaxConcurrency:
		cfg.concurrency = MaxConcurrency
	}

	return &service{
		providers:   cfg.providers,
		currency:    cfg.currency,
		concurrency: cfg.concurrency,
		logger:      cfg.logger,
		progress:    cfg.progress,
		clock:       cfg.clock,
	}, nil
}

type service struct {
	providers   []Provider
	currency    string
	concurrency int
	logger      *logging.Logger
	progress    func(domain.LabelSummary)
	clock       func() time.Time
}

type task struct {
	provider int
	label    int
}

// Compare summarizes every label for every provider. A failed fetch does not
// abort the run: its summary carries Err and keeps its position.
func (s *service) Compare(ctx context.Context, labels []string) (domain.Comparison, error) {
	if len(labels) == 0 {
		return domain.Comparison{}, ErrNoLabels
	}

	runID := uuid.New()
	log := s.logger.With("run_id", runID.String())
	started := s.clock()

	// each task writes only its own slot, so no locking is needed
	results := make([][]domain.LabelSummary, len(s.providers))
	for i := range results {
		results[i] = make([]domain.LabelSummary, len(labels))
	}

	tasks := make(chan task)
	var wg sync.WaitGroup

	workers := s.concurrency
	if total := len(s.providers) * len(labels); workers > total {
		workers = total
	}

	log.Info("comparison started",
		"labels", len(labels),
		"providers", len(s.providers),
		"workers", workers,
		"currency", s.currency,
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				summary := s.run(ctx, log, s.providers[t.provider], labels[t.label])
				results[t.provider][t.label] = summary
				if s.progress != nil {
					s.progress(summary)
				}
			}
		}()
	}

	for pi := range s.providers {
		for li := range labels {
			tasks <- task{provider: pi, label: li}
		}
	}
	close(tasks)
	wg.Wait()

	out := domain.Comparison{
		RunID:      runID,
		Labels:     append([]string(nil), labels...),
		Providers:  make([]domain.ProviderSummaries, 0, len(s.providers)),
		StartedAt:  started,
		FinishedAt: s.clock(),
	}
	for i, p := range s.providers {
		out.Providers = append(out.Providers, domain.ProviderSummaries{
			Provider:  p.Name(),
			Title:     p.Title(),
			Summaries: results[i],
		})
	}

	log.Info("comparison finished", "elapsed", out.FinishedAt.Sub(started))

	return out, nil
}

func (s *service) run(ctx context.Context, log *logging.Logger, p Provider, label string) domain.LabelSummary {
	log = log.With("provider", p.Name(), "label", label)

	if err := ctx.Err(); err != nil {
		log.Warn("skipping label, run canceled", "err", err)
		return domain.LabelSummary{Provider: p.Name(), Label: label, Err: err}
	}

	summary, err := Summarize(ctx, label, p, s.currency)
	if err != nil {
		log.Warn("label unavailable", "err", err)
		return summary
	}

	log.Debug("label summarized",
		"found", summary.VacanciesFound,
		"processed", summary.VacanciesProcessed,
		"has_average", summary.AverageSalary != nil,
	)

	return summary
}
