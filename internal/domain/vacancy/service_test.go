package vacancy

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/honeycarbs/devsalaries/internal/domain"
)

type stubProvider struct {
	name    string
	results map[string]domain.FetchResult
	errs    map[string]error
	calls   atomic.Int32
}

func (p *stubProvider) Name() string  { return p.name }
func (p *stubProvider) Title() string { return p.name + " title" }

func (p *stubProvider) FetchAll(_ context.Context, label string) (domain.FetchResult, error) {
	p.calls.Add(1)
	if err := p.errs[label]; err != nil {
		return domain.FetchResult{}, err
	}
	return p.results[label], nil
}

func goListings() domain.FetchResult {
	return domain.FetchResult{
		Found: 3,
		Listings: []domain.Listing{
			{Currency: "RUB", SalaryFrom: domain.Float(100), SalaryTo: domain.Float(200)},
			{Currency: "RUB", SalaryFrom: domain.Float(150)},
			{Currency: "USD", SalaryFrom: domain.Float(300), SalaryTo: domain.Float(400)},
		},
	}
}

func TestSummarizeMixedListings(t *testing.T) {
	p := &stubProvider{name: "stub", results: map[string]domain.FetchResult{"Go": goListings()}}

	got, err := Summarize(context.Background(), "Go", p, "RUB")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if got.VacanciesFound != 3 {
		t.Errorf("VacanciesFound = %d, want 3", got.VacanciesFound)
	}
	if got.VacanciesProcessed != 2 {
		t.Errorf("VacanciesProcessed = %d, want 2", got.VacanciesProcessed)
	}
	if got.AverageSalary == nil || *got.AverageSalary != 165 {
		t.Errorf("AverageSalary = %v, want 165", got.AverageSalary)
	}
	if !got.Available() {
		t.Errorf("Available() = false, err = %v", got.Err)
	}
}

func TestSummarizeFoundButNoListings(t *testing.T) {
	p := &stubProvider{name: "stub", results: map[string]domain.FetchResult{"Go": {Found: 500}}}

	got, err := Summarize(context.Background(), "Go", p, "RUB")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if got.VacanciesFound != 500 || got.VacanciesProcessed != 0 || got.AverageSalary != nil {
		t.Errorf("summary = %+v, want found=500 processed=0 average=nil", got)
	}
}

func TestSummarizeNoUsableSalary(t *testing.T) {
	p := &stubProvider{name: "stub", results: map[string]domain.FetchResult{"C": {
		Found: 4,
		Listings: []domain.Listing{
			{Currency: "RUB"},
			{Currency: ""},
			{Currency: "EUR", SalaryTo: domain.Float(5000)},
			{Currency: "KZT", SalaryFrom: domain.Float(1)},
		},
	}}}

	got, err := Summarize(context.Background(), "C", p, "RUB")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got.VacanciesProcessed != 0 || got.AverageSalary != nil {
		t.Errorf("summary = %+v, want processed=0 average=nil", got)
	}
}

func TestSummarizeCurrencyCaseInsensitive(t *testing.T) {
	p := &stubProvider{name: "stub", results: map[string]domain.FetchResult{"Go": {
		Found:    1,
		Listings: []domain.Listing{{Currency: "rub", SalaryTo: domain.Float(100)}},
	}}}

	got, err := Summarize(context.Background(), "Go", p, "RUB")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got.VacanciesProcessed != 1 || got.AverageSalary == nil || *got.AverageSalary != 80 {
		t.Errorf("summary = %+v, want processed=1 average=80", got)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	p := &stubProvider{name: "stub", results: map[string]domain.FetchResult{"Go": goListings()}}

	first, err := Summarize(context.Background(), "Go", p, "RUB")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Summarize(context.Background(), "Go", p, "RUB")
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("summaries differ: %+v vs %+v", first, second)
	}
}

func TestSummarizeFetchError(t *testing.T) {
	boom := errors.New("connection reset")
	p := &stubProvider{name: "stub", errs: map[string]error{"Go": boom}}

	got, err := Summarize(context.Background(), "Go", p, "RUB")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping %v", err, boom)
	}
	if got.Available() {
		t.Error("Available() = true for failed fetch")
	}
	if got.Label != "Go" || got.Provider != "stub" {
		t.Errorf("summary = %+v, want label and provider kept", got)
	}
}

func TestReduceProcessedNeverExceedsFetched(t *testing.T) {
	res := domain.FetchResult{
		Found: 1,
		Listings: []domain.Listing{
			{Currency: "RUB", SalaryFrom: domain.Float(1)},
			{Currency: "RUB", SalaryFrom: domain.Float(2)},
			{Currency: "RUB", SalaryTo: domain.Float(3)},
		},
	}

	got := Reduce("stub", "Go", "RUB", res)
	if got.VacanciesProcessed > len(res.Listings) {
		t.Fatalf("processed %d > fetched %d", got.VacanciesProcessed, len(res.Listings))
	}
	if got.VacanciesFound != 1 {
		t.Errorf("VacanciesFound = %d, want provider-reported 1", got.VacanciesFound)
	}
}

func TestNewServiceRequiresProviders(t *testing.T) {
	if _, err := NewService(); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("NewService() err = %v, want ErrNoProviders", err)
	}
}

func TestCompareKeepsOrderAndFailures(t *testing.T) {
	labels := []string{"Go", "Python", "Ruby", "C"}

	hh := &stubProvider{
		name: "headhunter",
		results: map[string]domain.FetchResult{
			"Go":     goListings(),
			"Python": {Found: 10, Listings: []domain.Listing{{Currency: "RUB", SalaryTo: domain.Float(1000)}}},
			"C":      {Found: 0},
		},
		errs: map[string]error{"Ruby": errors.New("503")},
	}
	sj := &stubProvider{
		name: "superjob",
		results: map[string]domain.FetchResult{
			"Go": {Found: 1, Listings: []domain.Listing{{Currency: "RUB", SalaryFrom: domain.Float(100)}}},
		},
	}

	var mu sync.Mutex
	var progressed int

	svc, err := NewService(
		WithProviders(hh, sj),
		WithCurrency("RUB"),
		WithConcurrency(3),
		WithProgress(func(domain.LabelSummary) {
			mu.Lock()
			progressed++
			mu.Unlock()
		}),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cmp, err := svc.Compare(context.Background(), labels)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if progressed != len(labels)*2 {
		t.Errorf("progress called %d times, want %d", progressed, len(labels)*2)
	}
	if len(cmp.Providers) != 2 || cmp.Providers[0].Provider != "headhunter" || cmp.Providers[1].Provider != "superjob" {
		t.Fatalf("providers = %+v", cmp.Providers)
	}
	if !reflect.DeepEqual(cmp.Labels, labels) {
		t.Errorf("Labels = %v, want %v", cmp.Labels, labels)
	}

	for _, ps := range cmp.Providers {
		if len(ps.Summaries) != len(labels) {
			t.Fatalf("%s summaries = %d, want %d", ps.Provider, len(ps.Summaries), len(labels))
		}
		for i, s := range ps.Summaries {
			if s.Label != labels[i] {
				t.Errorf("%s summary %d label = %q, want %q", ps.Provider, i, s.Label, labels[i])
			}
		}
	}

	hhRows := cmp.Providers[0].Summaries
	if hhRows[0].AverageSalary == nil || *hhRows[0].AverageSalary != 165 {
		t.Errorf("headhunter Go average = %v, want 165", hhRows[0].AverageSalary)
	}
	if hhRows[1].AverageSalary == nil || *hhRows[1].AverageSalary != 800 {
		t.Errorf("headhunter Python average = %v, want 800", hhRows[1].AverageSalary)
	}
	if hhRows[2].Available() {
		t.Error("headhunter Ruby should be unavailable")
	}
	if hhRows[3].AverageSalary != nil || hhRows[3].VacanciesProcessed != 0 {
		t.Errorf("headhunter C = %+v, want no average", hhRows[3])
	}

	sjRows := cmp.Providers[1].Summaries
	if sjRows[0].AverageSalary == nil || *sjRows[0].AverageSalary != 120 {
		t.Errorf("superjob Go average = %v, want 120", sjRows[0].AverageSalary)
	}
	if hh.calls.Load() != int32(len(labels)) || sj.calls.Load() != int32(len(labels)) {
		t.Errorf("calls = %d/%d, want %d each", hh.calls.Load(), sj.calls.Load(), len(labels))
	}
}

func TestCompareRequiresLabels(t *testing.T) {
	svc, err := NewService(WithProviders(&stubProvider{name: "stub"}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Compare(context.Background(), nil); !errors.Is(err, ErrNoLabels) {
		t.Fatalf("Compare(nil) err = %v, want ErrNoLabels", err)
	}
}

func TestCompareCanceledContextMarksLabelsUnavailable(t *testing.T) {
	p := &stubProvider{name: "stub", results: map[string]domain.FetchResult{"Go": goListings()}}
	svc, err := NewService(WithProviders(p))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmp, err := svc.Compare(ctx, []string{"Go"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp.Providers[0].Summaries[0].Available() {
		t.Error("summary should be unavailable after cancellation")
	}
	if p.calls.Load() != 0 {
		t.Errorf("provider called %d times after cancellation", p.calls.Load())
	}
}
