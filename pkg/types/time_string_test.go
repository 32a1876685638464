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
		want    string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "24:00", want: "24:00"},
		{name: "invalid hour", input: "25:00", wantErr: true},
		{name: "invalid minute", input: "10:60", wantErr: true},
		{name: "missing colon", input: "1030", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	endOfDay, err := NewTimeStringFromString("24:00")
	require.NoError(t, err)

	minutes, err = endOfDay.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("18:30")
	require.NoError(t, err)

	// 18:30 + 90 минут = 20:00
	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "20:00", got.String())

	// Ровно до конца суток
	late, err := NewTimeStringFromString("23:00")
	require.NoError(t, err)

	got, err = late.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", got.String())

	// Выход за границу суток
	_, err = late.AddMinutes(61)
	require.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	a, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	b, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Строка с секундами из PostgreSQL усекается до HH:MM
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 16, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", ts.String())

	require.Error(t, ts.Scan(12345))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 16, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, "07:05", ts.String())
}
