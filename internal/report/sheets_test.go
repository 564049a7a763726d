package report

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeWriter struct {
	cleared []string
	updated map[string][][]interface{}
	failOn  string
}

func (f *fakeWriter) ClearValues(_ context.Context, _ string, range_ string) error {
	f.cleared = append(f.cleared, range_)
	return nil
}

func (f *fakeWriter) UpdateValues(_ context.Context, _ string, range_ string, values [][]interface{}) error {
	if range_ == f.failOn {
		return errors.New("quota exceeded")
	}
	if f.updated == nil {
		f.updated = map[string][][]interface{}{}
	}
	f.updated[range_] = values
	return nil
}

func TestSheetsExport(t *testing.T) {
	w := &fakeWriter{}
	exp, err := NewSheetsExporter(w, "sheet-id")
	if err != nil {
		t.Fatal(err)
	}
	exp.clock = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	tables := Build([]string{"Go", "Ruby", "C"}, comparison())
	res, err := exp.Export(context.Background(), tables)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if res.WrittenRows != 6 || len(res.Tabs) != 2 {
		t.Errorf("result = %+v", res)
	}
	if len(w.cleared) != 2 || w.cleared[0] != "headhunter!A1:Z" {
		t.Errorf("cleared = %v", w.cleared)
	}

	hh := w.updated["headhunter!A1"]
	if len(hh) != 5 {
		t.Fatalf("headhunter values = %d rows, want 5", len(hh))
	}
	if hh[0][1] != "2026-10-19T12:00:00Z" {
		t.Errorf("timestamp cell = %v", hh[0][1])
	}
	if hh[2][3] != int64(165) {
		t.Errorf("Go average cell = %#v, want int64(165)", hh[2][3])
	}
	if hh[3][3] != Unavailable {
		t.Errorf("Ruby average cell = %#v, want %q", hh[3][3], Unavailable)
	}
	if hh[4][3] != NoAverage {
		t.Errorf("C average cell = %#v, want %q", hh[4][3], NoAverage)
	}
}

func TestSheetsExportError(t *testing.T) {
	w := &fakeWriter{failOn: "superjob!A1"}
	exp, err := NewSheetsExporter(w, "sheet-id")
	if err != nil {
		t.Fatal(err)
	}

	res, err := exp.Export(context.Background(), Build([]string{"Go"}, comparison()))
	if err == nil {
		t.Fatal("Export expected error")
	}
	if len(res.Tabs) != 1 || res.Tabs[0] != "headhunter" {
		t.Errorf("tabs written before failure = %v", res.Tabs)
	}
}

func TestNewSheetsExporterValidation(t *testing.T) {
	if _, err := NewSheetsExporter(nil, "id"); err == nil {
		t.Error("expected error for nil client")
	}
	if _, err := NewSheetsExporter(&fakeWriter{}, ""); err == nil {
		t.Error("expected error for empty spreadsheet id")
	}
}
