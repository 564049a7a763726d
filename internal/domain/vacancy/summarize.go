package vacancy

import (
	"context"
	"fmt"

	"github.com/honeycarbs/devsalaries/internal/domain"
	"github.com/honeycarbs/devsalaries/internal/domain/salary"
)

// Summarize fetches every listing for label from p and reduces them to a LabelSummary.
// On fetch failure the returned summary carries the error and no figures.
func Summarize(ctx context.Context, label string, p Provider, currency string) (domain.LabelSummary, error) {
	res, err := p.FetchAll(ctx, label)
	if err != nil {
		err = fmt.Errorf("vacancy: fetch %q from %s: %w", label, p.Name(), err)
		return domain.LabelSummary{
			Provider: p.Name(),
			Label:    label,
			Err:      err,
		}, err
	}

	return Reduce(p.Name(), label, currency, res), nil
}

// Reduce folds fetched listings into a summary. Only listings in currency with
// at least one salary bound contribute an estimate.
func Reduce(provider, label, currency string, res domain.FetchResult) domain.LabelSummary {
	estimates := make([]float64, 0, len(res.Listings))
	for _, l := range res.Listings {
		if !l.InCurrency(currency) || !l.HasSalary() {
			continue
		}
		v, ok := salary.Estimate(l.SalaryFrom, l.SalaryTo)
		if !ok {
			continue
		}
		estimates = append(estimates, v)
	}

	summary := domain.LabelSummary{
		Provider:           provider,
		Label:              label,
		VacanciesFound:     res.Found,
		VacanciesProcessed: len(estimates),
	}

	if mean, ok := salary.Mean(estimates); ok {
		summary.AverageSalary = domain.Float(mean)
	}

	return summary
}
