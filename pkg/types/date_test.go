package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		n     int
		want  string
	}{
		{"same day next month", NewDate(2025, time.June, 15), 1, "2025-07-15"},
		{"clamp to february", NewDate(2025, time.January, 31), 1, "2025-02-28"},
		{"clamp to leap february", NewDate(2024, time.January, 31), 1, "2024-02-29"},
		{"from start, not chained", NewDate(2025, time.January, 31), 2, "2025-03-31"},
		{"clamp to 30 days", NewDate(2025, time.March, 31), 1, "2025-04-30"},
		{"year rollover", NewDate(2025, time.November, 30), 3, "2026-02-28"},
		{"zero months", NewDate(2025, time.May, 5), 0, "2025-05-05"},
		{"negative", NewDate(2025, time.March, 31), -1, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.AddMonths(tt.n).String())
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.Sunday, d.Weekday())

	for _, bad := range []string{"", "2025-02-30", "15.06.2025", "2025-6-15"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2025, time.January, 31)
	b := NewDate(2025, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(2025, time.January, 31)))
	assert.Equal(t, b, a.AddDays(1))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(payload{Date: NewDate(2025, time.September, 15)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-09-15"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-01-31"}`), &p))
	assert.Equal(t, NewDate(2025, time.January, 31), p.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &p))
	assert.True(t, p.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"31/01/2025"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-03", d.String())

	require.NoError(t, d.Scan([]byte("2025-04-01T00:00:00Z")))
	assert.Equal(t, "2025-04-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2025, time.May, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", v)
}
