package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/devsalaries/internal/domain/vacancy"
	"github.com/honeycarbs/devsalaries/internal/report"
	"github.com/honeycarbs/devsalaries/pkg/logging"
)

// ReportSource builds comparison services for a provider selection
type ReportSource interface {
	SelectProviders(names []string) ([]vacancy.Provider, error)
	NewService(providers []vacancy.Provider, opts ...vacancy.Option) (vacancy.Service, error)
}

// SalaryReportParams defines the arguments for the salary_report tool
type SalaryReportParams struct {
	Labels    []string `json:"labels,omitempty" jsonschema:"Programming languages to compare; defaults to the configured list"`
	Providers []string `json:"providers,omitempty" jsonschema:"Subset of providers: headhunter and/or superjob"`
}

// SalaryRow is one label line of a provider table
type SalaryRow struct {
	Label              string `json:"label"`
	Available          bool   `json:"available" jsonschema:"False when the provider could not be queried for this label"`
	VacanciesFound     int    `json:"vacancies_found"`
	VacanciesProcessed int    `json:"vacancies_processed"`
	AverageSalary      *int64 `json:"average_salary,omitempty" jsonschema:"Absent when no listing had a usable salary"`
}

// SalaryTable is one provider's report
type SalaryTable struct {
	Provider string      `json:"provider"`
	Title    string      `json:"title"`
	Rows     []SalaryRow `json:"rows"`
}

// SalaryReportResult is the structured response of salary_report
type SalaryReportResult struct {
	RunID       string        `json:"run_id"`
	Currency    string        `json:"currency"`
	Tables      []SalaryTable `json:"tables"`
	GeneratedAt string        `json:"generated_at" jsonschema:"RFC 3339 timestamp"`
}

type salaryReportTool struct {
	source        ReportSource
	defaultLabels []string
	currency      string
	timeout       time.Duration
	logger        *logging.Logger
}

// WithSalaryReport registers the salary_report tool
func WithSalaryReport(source ReportSource, defaultLabels []string, currency string, timeout time.Duration) Option {
	return func(reg *registry) {
		handler := salaryReportTool{
			source:        source,
			defaultLabels: defaultLabels,
			currency:      currency,
			timeout:       timeout,
			logger:        reg.logger,
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "salary_report",
			Description: "Compare average advertised salaries per programming language across HeadHunter and SuperJob",
		}, handler.handle)

		reg.logger.Info("tool registered", "tool", "salary_report")
	}
}

func (t salaryReportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SalaryReportParams) (*sdkmcp.CallToolResult, SalaryReportResult, error) {
	labels := cleanLabels(params.Labels)
	if len(labels) == 0 {
		labels = t.defaultLabels
	}

	t.logger.Info("salary_report request", "labels", labels, "providers", params.Providers)

	providers, err := t.source.SelectProviders(params.Providers)
	if err != nil {
		return errorResult(err.Error()), SalaryReportResult{}, nil
	}

	svc, err := t.source.NewService(providers)
	if err != nil {
		return nil, SalaryReportResult{}, fmt.Errorf("salary_report: %w", err)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	cmp, err := svc.Compare(ctx, labels)
	if err != nil {
		return nil, SalaryReportResult{}, fmt.Errorf("salary_report: %w", err)
	}

	tables := report.Build(cmp.Labels, cmp)
	result := SalaryReportResult{
		RunID:       cmp.RunID.String(),
		Currency:    t.currency,
		Tables:      toSalaryTables(tables),
		GeneratedAt: cmp.FinishedAt.UTC().Format(time.RFC3339),
	}

	t.logger.Info("salary_report completed", "run_id", result.RunID, "tables", len(result.Tables))

	return textResult(formatTables(tables, t.currency)), result, nil
}

func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func toSalaryTables(tables []report.Table) []SalaryTable {
	out := make([]SalaryTable, 0, len(tables))
	for _, tbl := range tables {
		st := SalaryTable{Provider: tbl.Provider, Title: tbl.Title, Rows: make([]SalaryRow, 0, len(tbl.Rows))}
		for _, r := range tbl.Rows {
			row := SalaryRow{
				Label:              r.Label,
				Available:          !r.Unavailable,
				VacanciesFound:     r.Found,
				VacanciesProcessed: r.Processed,
			}
			if r.Average != nil {
				avg := int64(*r.Average)
				row.AverageSalary = &avg
			}
			st.Rows = append(st.Rows, row)
		}
		out = append(out, st)
	}
	return out
}

// plain-text tables keep MCP clients free of terminal escape codes
func formatTables(tables []report.Table, currency string) string {
	var b strings.Builder
	for i, tbl := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[salary_report] %s (%s)\n", tbl.Title, currency)
		fmt.Fprintf(&b, "%s\n", strings.Join(report.Header, " | "))
		for _, r := range tbl.Rows {
			fmt.Fprintf(&b, "%s\n", strings.Join(r.Cells(), " | "))
		}
	}
	return b.String()
}
