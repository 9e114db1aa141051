package readwise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchRandomSuccess(t *testing.T) {
	var gotAuth, gotNum string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/highlights/random" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotNum = r.URL.Query().Get("numHighlights")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"id": 101, "text": "Stay hungry", "title": "Commencement", "author": "Steve Jobs"},
			{"id": 102, "text": "Less but better", "title": "Essentialism", "author": "Greg McKeown"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(&Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	records, err := client.FetchRandom(context.Background(), "secret-token", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Token secret-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Token secret-token")
	}
	if gotNum != "10" {
		t.Errorf("numHighlights = %q, want %q", gotNum, "10")
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "101" || records[0].Text != "Stay hungry" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Author != "Greg McKeown" {
		t.Errorf("second record author = %q", records[1].Author)
	}
}

func TestFetchRandomNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"Invalid token."}`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(&Config{BaseURL: srv.URL})
			records, err := client.FetchRandom(context.Background(), "tok", 1)
			if err == nil {
				t.Fatal("expected error for non-2xx status")
			}
			if records != nil {
				t.Errorf("expected nil records, got %v", records)
			}
		})
	}
}

func TestFetchRandomNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	client := NewClient(&Config{BaseURL: srv.URL, Timeout: time.Second})
	if _, err := client.FetchRandom(context.Background(), "tok", 1); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(nil)
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
}
