package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "hh:mm:ss is truncated", input: "18:05:00", want: "18:05"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "end of day with seconds", input: "24:00:00", want: "24:00"},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:45")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
	assert.True(t, TimeString("10:00").Equal("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 20, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:20"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("09:30").On(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), got)
}

func TestTimeString_EndOfDay(t *testing.T) {
	minutes, err := EndOfDay.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60, minutes)
	assert.True(t, TimeString("23:59").IsBefore(EndOfDay))

	day := time.Date(2030, 3, 14, 0, 0, 0, 0, time.UTC)
	at, err := EndOfDay.On(day, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 15, 0, 0, 0, 0, time.UTC), at)

	// lib/pq отдает TIME '24:00' как 0000-01-02 00:00:00
	var scanned TimeString
	require.NoError(t, scanned.Scan(time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, EndOfDay, scanned)

	require.NoError(t, scanned.Scan(time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("00:00"), scanned)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}
