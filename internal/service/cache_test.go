package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/timmy/quotewise/internal/domain"
)

func cacheWith(t *testing.T, settings *fakeSettingStore, quotes []domain.QuoteRecord) {
	t.Helper()
	raw, err := json.Marshal(quotes)
	if err != nil {
		t.Fatalf("marshal seed cache: %v", err)
	}
	settings.values[domain.SettingQuotes] = string(raw)
}

func cachedQuotes(t *testing.T, settings *fakeSettingStore) []domain.QuoteRecord {
	t.Helper()
	raw, ok := settings.values[domain.SettingQuotes]
	if !ok {
		return nil
	}
	var quotes []domain.QuoteRecord
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		t.Fatalf("unmarshal cache: %v", err)
	}
	return quotes
}

func TestTakeIsStackPop(t *testing.T) {
	settings := newFakeSettingStore()
	cacheWith(t, settings, []domain.QuoteRecord{
		{ID: "1", Text: "q1"},
		{ID: "2", Text: "q2"},
		{ID: "3", Text: "q3"},
	})
	cache := NewQuoteCache(settings, &fakeSource{}, 10)

	quote, ok, err := cache.Take(context.Background())
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if !ok {
		t.Fatal("expected a record")
	}
	if quote.ID != "3" {
		t.Errorf("took %q, want last element q3", quote.ID)
	}

	remaining := cachedQuotes(t, settings)
	if len(remaining) != 2 || remaining[0].ID != "1" || remaining[1].ID != "2" {
		t.Errorf("persisted cache = %v, want [q1 q2]", remaining)
	}
}

func TestTakeOnEmptyCache(t *testing.T) {
	tests := []struct {
		name string
		seed func(*fakeSettingStore)
	}{
		{name: "absent key", seed: func(*fakeSettingStore) {}},
		{name: "empty list", seed: func(s *fakeSettingStore) {
			s.values[domain.SettingQuotes] = "[]"
		}},
		{name: "corrupt value", seed: func(s *fakeSettingStore) {
			s.values[domain.SettingQuotes] = "{not json"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := newFakeSettingStore()
			tt.seed(settings)
			cache := NewQuoteCache(settings, &fakeSource{}, 10)

			_, ok, err := cache.Take(context.Background())
			if err != nil {
				t.Fatalf("Take: %v", err)
			}
			if ok {
				t.Error("expected empty result")
			}
		})
	}
}

func TestRefillReplacesWholesale(t *testing.T) {
	settings := newFakeSettingStore()
	cacheWith(t, settings, []domain.QuoteRecord{{ID: "old"}})
	source := &fakeSource{records: []domain.QuoteRecord{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}}
	cache := NewQuoteCache(settings, source, 10)

	if err := cache.Refill(context.Background(), "tok"); err != nil {
		t.Fatalf("Refill: %v", err)
	}

	got := cachedQuotes(t, settings)
	if len(got) != 3 {
		t.Fatalf("cache length = %d, want 3", len(got))
	}
	for _, q := range got {
		if q.ID == "old" {
			t.Error("old record survived a wholesale refill")
		}
	}
}

func TestRefillFailureLeavesCacheUntouched(t *testing.T) {
	settings := newFakeSettingStore()
	cacheWith(t, settings, []domain.QuoteRecord{{ID: "keep"}})
	source := &fakeSource{err: errFakeFetch}
	cache := NewQuoteCache(settings, source, 10)

	if err := cache.Refill(context.Background(), "tok"); err == nil {
		t.Fatal("expected refill error")
	}

	got := cachedQuotes(t, settings)
	if len(got) != 1 || got[0].ID != "keep" {
		t.Errorf("cache = %v, want the original record preserved", got)
	}
}

func TestLen(t *testing.T) {
	settings := newFakeSettingStore()
	cacheWith(t, settings, []domain.QuoteRecord{{ID: "1"}, {ID: "2"}})
	cache := NewQuoteCache(settings, &fakeSource{}, 10)

	n, err := cache.Len(context.Background())
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 2 {
		t.Errorf("Len = %d, want 2", n)
	}
}
