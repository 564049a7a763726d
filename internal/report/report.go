// Package report turns comparison summaries into presentation tables.
package report

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/honeycarbs/devsalaries/internal/domain"
)

const (
	// NoAverage is shown when no listing produced an estimate
	NoAverage = "n/a"
	// Unavailable is shown when the label could not be fetched
	Unavailable = "unavailable"
	noCount     = "-"
)

// Header is the column heading of every table
var Header = []string{"Language", "Vacancies found", "Vacancies processed", "Average salary"}

// Table is one provider's rows in label order
type Table struct {
	Provider string
	Title    string
	Rows     []Row
}

// Row is a single label line
type Row struct {
	Label       string
	Found       int
	Processed   int
	Average     *float64
	Unavailable bool
}

// Build produces one table per provider with a row for every label, in order.
// Labels missing from a provider's summaries are reported as unavailable.
func Build(labels []string, cmp domain.Comparison) []Table {
	tables := make([]Table, 0, len(cmp.Providers))

	for _, ps := range cmp.Providers {
		byLabel := make(map[string]domain.LabelSummary, len(ps.Summaries))
		for _, s := range ps.Summaries {
			byLabel[s.Label] = s
		}

		t := Table{
			Provider: ps.Provider,
			Title:    ps.Title,
			Rows:     make([]Row, 0, len(labels)),
		}
		for _, label := range labels {
			s, ok := byLabel[label]
			if !ok || !s.Available() {
				t.Rows = append(t.Rows, Row{Label: label, Unavailable: true})
				continue
			}
			t.Rows = append(t.Rows, Row{
				Label:     label,
				Found:     s.VacanciesFound,
				Processed: s.VacanciesProcessed,
				Average:   s.AverageSalary,
			})
		}

		tables = append(tables, t)
	}

	return tables
}

// Cells renders the row as text columns matching Header
func (r Row) Cells() []string {
	if r.Unavailable {
		return []string{r.Label, noCount, noCount, Unavailable}
	}

	return []string{
		r.Label,
		strconv.Itoa(r.Found),
		strconv.Itoa(r.Processed),
		FormatAverage(r.Average),
	}
}

// FormatAverage truncates to whole currency units and groups thousands
func FormatAverage(avg *float64) string {
	if avg == nil {
		return NoAverage
	}
	return humanize.Comma(int64(*avg))
}

// Data returns the header followed by every row's cells
func (t Table) Data() [][]string {
	data := make([][]string, 0, len(t.Rows)+1)
	data = append(data, Header)
	for _, r := range t.Rows {
		data = append(data, r.Cells())
	}
	return data
}
