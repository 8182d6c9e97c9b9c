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
		{name: "hh:mm", input: "10:00", want: "10:00"},
		{name: "db time with seconds", input: "22:30:00", want: "22:30"},
		{name: "single digit hour", input: "9:15", want: "09:15"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	require.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("10:01"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("22:00").IsAfter("21:59"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	got, err := TimeString("14:00").OnDate(date, loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("10:00:00")))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}
