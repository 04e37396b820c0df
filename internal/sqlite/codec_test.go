// Unit tests for scalar encoding helpers.
package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestNewID(t *testing.T) {
	t.Run("produces valid time-ordered UUIDs", func(t *testing.T) {
		a := newID()
		b := newID()

		parsed, err := uuid.Parse(a)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
		assert.NotEqual(t, a, b)
	})
}

func TestParseID(t *testing.T) {
	t.Run("accepts canonical UUID text", func(t *testing.T) {
		id := newID()
		got, err := parseID(id)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("rejects malformed text", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-uuid", "12345"} {
			_, err := parseID(raw)
			assert.ErrorIs(t, err, types.ErrMalformedID, "input %q", raw)
		}
	})
}

func TestTimeCodec(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
	}{
		{name: "nanosecond precision", in: time.Date(2024, 3, 15, 9, 30, 45, 123456789, time.UTC)},
		{name: "whole seconds", in: time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)},
		{name: "unix epoch", in: time.Unix(0, 0).UTC()},
		{name: "far future", in: time.Date(2999, 12, 31, 23, 59, 59, 999999999, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(encodeTime(tt.in))
			require.NoError(t, err)
			assert.True(t, tt.in.Equal(got), "want %v, got %v", tt.in, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("normalizes non-UTC input to UTC", func(t *testing.T) {
		loc := time.FixedZone("plus5", 5*3600)
		in := time.Date(2024, 3, 15, 14, 30, 45, 0, loc)
		got, err := parseTime(encodeTime(in))
		require.NoError(t, err)
		assert.True(t, in.Equal(got))
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("accepts naive timestamps as UTC", func(t *testing.T) {
		got, err := parseTime("2024-03-15T09:30:45.5")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 45, 500000000, time.UTC), got)
	})

	t.Run("rejects unparseable text", func(t *testing.T) {
		for _, raw := range []string{"", "yesterday", "2024-13-99"} {
			_, err := parseTime(raw)
			assert.ErrorIs(t, err, types.ErrMalformedTimestamp, "input %q", raw)
		}
	})
}

func TestStringListCodec(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil encodes as empty list", in: nil, want: []string{}},
		{name: "empty list", in: []string{}, want: []string{}},
		{name: "plain values", in: []string{"family", "vip"}, want: []string{"family", "vip"}},
		{
			name: "JSON special characters survive",
			in:   []string{`quo"te`, "back\\slash", "comma,and[bracket]", "uniçode"},
			want: []string{`quo"te`, "back\\slash", "comma,and[bracket]", "uniçode"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := encodeStringList(tt.in)
			require.NoError(t, err)
			got := parseStringList(sql.NullString{String: encoded, Valid: true})
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("lenient read of bad column data", func(t *testing.T) {
		for _, raw := range []sql.NullString{
			{},
			{String: "", Valid: true},
			{String: "not json", Valid: true},
			{String: `{"object":true}`, Valid: true},
		} {
			assert.Equal(t, []string{}, parseStringList(raw))
		}
	})
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "bio text", nullIfEmpty("bio text"))

	assert.Equal(t, "", textOrEmpty(sql.NullString{}))
	assert.Equal(t, "x", textOrEmpty(sql.NullString{String: "x", Valid: true}))
}
