package superjob

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, AppKey: "v3.test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("NewClient expected error without app key")
	}
}

func TestSearchVacanciesQuery(t *testing.T) {
	var gotKey, gotPath string
	var gotQuery map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-App-Id")
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`{"total": 301, "more": true, "objects": [
			{"id": 1, "profession": "Go developer", "payment_from": 150000, "payment_to": 0, "currency": "rub"},
			{"id": 2, "profession": "Go developer", "payment_from": 0, "payment_to": 0, "currency": "rub", "agreement": true}
		]}`))
	})

	page, err := client.SearchVacancies(context.Background(), SearchParams{
		Keyword:    "Программист Go",
		Catalogues: "48",
		Town:       "4",
		Page:       2,
		Count:      100,
	})
	if err != nil {
		t.Fatalf("SearchVacancies: %v", err)
	}

	if gotKey != "v3.test" {
		t.Errorf("X-Api-App-Id = %q", gotKey)
	}
	if gotPath != "/2.0/vacancies/" {
		t.Errorf("path = %q, want /2.0/vacancies/", gotPath)
	}
	want := map[string]string{
		"keyword":    "Программист Go",
		"catalogues": "48",
		"town":       "4",
		"page":       "2",
		"count":      "100",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if _, ok := gotQuery["period"]; ok {
		t.Error("period sent although PeriodDays is 0")
	}

	if page.Total != 301 || !page.More || len(page.Objects) != 2 {
		t.Fatalf("page = %+v", page)
	}
	if page.Objects[0].PaymentFrom != 150000 || page.Objects[0].Currency != "rub" {
		t.Errorf("first object = %+v", page.Objects[0])
	}
}

func TestSearchVacanciesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"Invalid app id"}}`, http.StatusForbidden)
	})

	_, err := client.SearchVacancies(context.Background(), SearchParams{Keyword: "Go"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
}

func TestSearchVacanciesMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := client.SearchVacancies(context.Background(), SearchParams{Keyword: "Go"}); err == nil {
		t.Fatal("SearchVacancies expected decode error")
	}
}
