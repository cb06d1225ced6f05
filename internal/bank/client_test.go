package bank

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestSetupWebhookPassesStatusThrough(t *testing.T) {
	var gotToken, gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/personal/webhook" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotToken = r.Header.Get("X-Token")

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		gotURL = payload["webHookUrl"]

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errorDescription":"Unknown 'X-Token'"}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Client: server.Client()}
	body, status, err := client.SetupWebhook("bad-token", "https://collector.example/monobank/tok")
	if err != nil {
		t.Fatalf("a provider-side rejection must not be an error: %v", err)
	}
	if status != http.StatusForbidden {
		t.Fatalf("expected raw 403 back, got %d", status)
	}
	if gotToken != "bad-token" {
		t.Errorf("X-Token header = %q", gotToken)
	}
	if gotURL != "https://collector.example/monobank/tok" {
		t.Errorf("webHookUrl = %q", gotURL)
	}
	if len(body) == 0 {
		t.Error("expected the raw response body to be passed through")
	}
}

func TestFetchClientInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/personal/client-info" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"name": "Shevchenko Taras"})
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Client: server.Client()}
	info, status, err := client.FetchClientInfo("token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if info.Name != "Shevchenko Taras" {
		t.Errorf("name = %q", info.Name)
	}
}

func TestFetchStatement(t *testing.T) {
	from := time.Date(2021, 3, 1, 0, 0, 0, 0, time.Local)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/personal/statement/0/" + strconv.FormatInt(from.Unix(), 10)
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		w.Write([]byte(`[
			{"id":"a1","amount":-4550,"balance":120000,"cashbackAmount":45,"mcc":5411,"time":1614623400,"description":"silpo"}
		]`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Client: server.Client()}
	items, status, err := client.FetchStatement("token", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "a1" || items[0].Amount != -4550 || items[0].MCC != 5411 {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestFetchStatementNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Client: server.Client()}
	items, status, err := client.FetchStatement("token", time.Now())
	if err != nil {
		t.Fatalf("non-200 is reported via status, not error: %v", err)
	}
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d", status)
	}
	if items != nil {
		t.Fatalf("expected no items, got %v", items)
	}
}
