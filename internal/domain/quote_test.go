package domain

import (
	"encoding/json"
	"testing"
)

func TestQuoteIDUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected QuoteID
		wantErr  bool
	}{
		{name: "numeric id", input: `{"id": 123456789}`, expected: "123456789"},
		{name: "string id", input: `{"id": "abc-123"}`, expected: "abc-123"},
		{name: "null id", input: `{"id": null}`, expected: ""},
		{name: "large numeric id", input: `{"id": 9007199254740993}`, expected: "9007199254740993"},
		{name: "bool id rejected", input: `{"id": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec QuoteRecord
			err := json.Unmarshal([]byte(tt.input), &rec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.ID != tt.expected {
				t.Errorf("ID = %q, want %q", rec.ID, tt.expected)
			}
		})
	}
}

func TestQuoteIDMarshalRoundTrip(t *testing.T) {
	// Numeric IDs must survive a round trip in numeric form.
	in := []byte(`{"id":42,"text":"t","title":"b","author":"a"}`)
	var rec QuoteRecord
	if err := json.Unmarshal(in, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"id":42,"text":"t","title":"b","author":"a"}` {
		t.Errorf("round trip changed encoding: %s", out)
	}
}

func TestBlockSuffixChecks(t *testing.T) {
	quote := Block{UID: "a1b-quote"}
	errBlock := Block{UID: "x9z-error"}
	plain := Block{UID: "deadbeef"}

	if !quote.IsQuote() || quote.IsError() {
		t.Error("quote block misclassified")
	}
	if !errBlock.IsError() || errBlock.IsQuote() {
		t.Error("error block misclassified")
	}
	if plain.IsQuote() || plain.IsError() {
		t.Error("plain block misclassified")
	}
}
