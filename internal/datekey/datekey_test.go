package datekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-01", "2024-03-01", true},
		{" 2024-03-01 ", "2024-03-01", true},
		{"2024-3-1", "", false},
		{"2024/03/01", "", false},
		{"2024-03-01T10:00:00Z", "", false},
		{"2024-02-30", "", false},
		{"", "", false},
		{"tomorrow", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-02-28", 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	_, err = AddDays("nope", 1)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2023, time.February))
	assert.Equal(t, 30, DaysIn(2024, time.April))
	assert.Equal(t, 31, DaysIn(2024, time.December))
}

func TestMonthDay_ClampsAndNormalizes(t *testing.T) {
	assert.Equal(t, "2024-02-29", Format(MonthDay(2024, time.February, 31)))
	assert.Equal(t, "2024-04-30", Format(MonthDay(2024, time.April, 31)))
	assert.Equal(t, "2025-02-28", Format(MonthDay(2024, time.Month(14), 31)))
	assert.Equal(t, "2024-05-15", Format(MonthDay(2024, time.May, 15)))
}

func TestISORoundTrip(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)

	iso, ok := ToISO("2024-03-01", loc)
	require.True(t, ok)
	assert.Equal(t, "2024-02-29T15:00:00.000Z", iso)

	key, ok := FromISO(iso, loc)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", key)
}

func TestFromISO_TruncatesToLocalDay(t *testing.T) {
	key, ok := FromISO("2024-03-01T23:30:00Z", time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", key)

	key, ok = FromISO("2024-03-01T23:30:00Z", time.FixedZone("JST", 9*60*60))
	require.True(t, ok)
	assert.Equal(t, "2024-03-02", key)

	_, ok = FromISO("not a date", time.UTC)
	assert.False(t, ok)
}

func TestToISO_Invalid(t *testing.T) {
	_, ok := ToISO("2024-13-01", time.UTC)
	assert.False(t, ok)
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "Fri, Mar 1", Human("2024-03-01"))
	assert.Equal(t, "garbage", Human("garbage"))
}
