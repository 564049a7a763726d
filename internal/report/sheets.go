package report

import (
	"context"
	"fmt"
	"time"
)

// valueWriter describes the subset of the Sheets client used by the exporter.
type valueWriter interface {
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}

// SheetsExporter mirrors each table into a tab named after its provider
type SheetsExporter struct {
	client        valueWriter
	spreadsheetID string
	clock         func() time.Time
}

// NewSheetsExporter builds an exporter targeting spreadsheetID
func NewSheetsExporter(client valueWriter, spreadsheetID string) (*SheetsExporter, error) {
	if client == nil {
		return nil, fmt.Errorf("report: sheets client is required")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("report: spreadsheet id is required")
	}
	return &SheetsExporter{client: client, spreadsheetID: spreadsheetID, clock: time.Now}, nil
}

// ExportResult describes what one Export wrote
type ExportResult struct {
	SpreadsheetID string
	Tabs          []string
	WrittenRows   int
	CompletedAt   time.Time
}

// Export clears each provider tab and writes header plus rows from A1
func (e *SheetsExporter) Export(ctx context.Context, tables []Table) (ExportResult, error) {
	result := ExportResult{SpreadsheetID: e.spreadsheetID}

	for _, t := range tables {
		tab := t.Provider
		if tab == "" {
			tab = "Sheet1"
		}

		if err := e.client.ClearValues(ctx, e.spreadsheetID, fmt.Sprintf("%s!A1:Z", tab)); err != nil {
			return result, fmt.Errorf("report: clear tab %s: %w", tab, err)
		}

		values := toValues(t, e.clock().UTC())
		if err := e.client.UpdateValues(ctx, e.spreadsheetID, fmt.Sprintf("%s!A1", tab), values); err != nil {
			return result, fmt.Errorf("report: write tab %s: %w", tab, err)
		}

		result.Tabs = append(result.Tabs, tab)
		result.WrittenRows += len(t.Rows)
	}

	result.CompletedAt = e.clock().UTC()
	return result, nil
}

// numbers stay numeric so the sheet can chart them; placeholders stay text
func toValues(t Table, at time.Time) [][]interface{} {
	values := make([][]interface{}, 0, len(t.Rows)+2)
	values = append(values, []interface{}{t.Title, at.Format(time.RFC3339)})

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	values = append(values, header)

	for _, r := range t.Rows {
		if r.Unavailable {
			values = append(values, []interface{}{r.Label, noCount, noCount, Unavailable})
			continue
		}
		var avg interface{} = NoAverage
		if r.Average != nil {
			avg = int64(*r.Average)
		}
		values = append(values, []interface{}{r.Label, r.Found, r.Processed, avg})
	}

	return values
}
