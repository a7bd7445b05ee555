package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"09:45", true},
		{"00:00", true},
		{"23:59", true},
		{"9:45", false},
		{"24:00", false},
		{"09:60", false},
		{"0945", false},
		{"", false},
		{"abc", false},
	}

	for _, tt := range cases {
		ts, err := NewTimeStringFromString(tt.input)
		if tt.valid {
			assert.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.input, ts.String())
		} else {
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", tt.input)
		}
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 10, 15, 9, 5, 33, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestAddMinutes(t *testing.T) {
	start, err := NewTimeStringFromString("09:45")
	require.NoError(t, err)

	end, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), end)
}

func TestAddMinutes_WrapsHourBoundary(t *testing.T) {
	start := TimeString("10:50")

	end, err := start.AddMinutes(25)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), end)
}

func TestAddMinutes_CrossesMidnight(t *testing.T) {
	start := TimeString("23:50")

	_, err := start.AddMinutes(30)
	assert.ErrorIs(t, err, ErrCrossesMidnight)
}

func TestAddMinutes_ExactMidnight(t *testing.T) {
	start := TimeString("23:30")

	// 24:00 — это уже следующая дата, молчаливый перенос запрещён
	_, err := start.AddMinutes(30)
	assert.ErrorIs(t, err, ErrCrossesMidnight)
}

func TestAddMinutes_Negative(t *testing.T) {
	start := TimeString("10:00")

	_, err := start.AddMinutes(-10)
	assert.ErrorIs(t, err, ErrNegativeMinutes)
}

func TestIsBeforeIsAfter(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("17:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestMinutesOfDay(t *testing.T) {
	ts := TimeString("14:30")

	minutes, err := ts.MinutesOfDay()
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, minutes)
}
