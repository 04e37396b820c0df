// Scalar codec for the storage boundary. Three non-primitive scalar types
// cross it: UUID identifiers, UTC timestamps, and ordered string lists. Each
// is encoded to a text column value and decoded back with the same rules in
// both directions.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// naiveTimeLayout parses timestamp text that carries no offset. Such values
// are treated as UTC.
const naiveTimeLayout = "2006-01-02T15:04:05.999999999"

// newID generates a UUID v7 string. V7 identifiers are time-ordered, so
// storage locality follows insertion order.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// parseID decodes a stored identifier back to its canonical hyphenated form.
// Returns ErrMalformedID wrapping the offending text on failure.
func parseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", types.ErrMalformedID, s)
	}
	return id.String(), nil
}

// encodeTime encodes a timestamp as round-trip UTC text. The codec never
// writes a value with a non-UTC offset.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime decodes timestamp text and normalizes to UTC: a value carrying
// an offset is converted, a value without one is treated as UTC. The
// driver's ambient notion of a column's "kind" is never trusted; the text is
// the contract. Returns ErrMalformedTimestamp on unparseable input.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(naiveTimeLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, s)
}

// encodeStringList encodes an ordered string list as a JSON array. Nil and
// empty lists both encode as "[]".
func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(data), nil
}

// parseStringList decodes a JSON-array column value. Lenient on read: NULL
// or unparseable content decodes to an empty list rather than failing. The
// strictness lives on the write side, where the codec never produces such
// values.
func parseStringList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw.String), &list); err != nil {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}

// nullIfEmpty maps an optional text field to its column value: empty string
// stores as NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// textOrEmpty maps a nullable text column back to its field value.
func textOrEmpty(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// encodeTimePtr encodes an optional timestamp; nil stores as NULL.
func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

// parseTimePtr decodes a nullable timestamp column; NULL decodes to nil.
func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
