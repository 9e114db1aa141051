package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// QuoteID is a Readwise highlight identifier. The API encodes it as a JSON
// number, but older exports and tests use strings, so both are accepted.
type QuoteID string

// UnmarshalJSON implements json.Unmarshaler.
// Parameters:
//   - data: raw JSON value (string or number).
// Returns:
//   - error: non-nil if the value is neither a string nor a number.
func (id *QuoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("quote id must be a string or number")
	}
	*id = QuoteID(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler. Numeric IDs are re-emitted as
// numbers so a round trip preserves the wire form Readwise uses.
func (id QuoteID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the identifier as a plain string.
func (id QuoteID) String() string {
	return string(id)
}

// QuoteRecord is one unit of quoted content fetched from Readwise.
// Immutable once fetched; owned by the cache as part of a batch and then by
// the dispenser until rendered into block text.
type QuoteRecord struct {
	ID     QuoteID `json:"id"`
	Text   string  `json:"text"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
}
