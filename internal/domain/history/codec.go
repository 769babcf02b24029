package history

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/okian/fitcheck/internal/domain/model"
)

// Decode parses a persisted history document. "null" decodes as empty; any
// other value that is not a JSON array of objects is an error.
func Decode(raw string) ([]model.HistoryEntry, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedHistory)
	}
	doc := gjson.Parse(raw)
	if doc.Type == gjson.Null {
		return []model.HistoryEntry{}, nil
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrMalformedHistory, doc.Type)
	}
	for i, item := range doc.Array() {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: element %d is %s, not an object", ErrMalformedHistory, i, item.Type)
		}
	}

	entries := []model.HistoryEntry{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHistory, err)
	}
	return entries, nil
}

// Encode serializes entries as a JSON array. A nil slice encodes as "[]".
func Encode(entries []model.HistoryEntry) (string, error) {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
