package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("9:30 am")
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	result, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), result)

	result, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), result)

	// Выход за пределы суток
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("09:30")))
	assert.False(t, TimeString("09:30").IsBefore(TimeString("09:30")))
	assert.True(t, TimeString("10:00").IsAfter(TimeString("09:59")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))

	// Некорректные значения не паникуют и не считаются раньше/позже
	assert.False(t, TimeString("garbage").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("garbage")))
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("24:00").Validate())

	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("12:00").IsZero())
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, m)
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, TimeString("15:09"), NewTimeString(moment))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("15:00")))
	assert.Equal(t, TimeString("15:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
