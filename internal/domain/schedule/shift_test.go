package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  ClockTime
		ok    bool
	}{
		{"05:00", 300, true},
		{"15:30", 930, true},
		{"23:59", 1439, true},
		{"07:15:45", 435, true},
		{" 16:00 ", 960, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.ok {
			if err != nil || got != c.want {
				t.Errorf("ParseClock(%q) = %v, %v; want %v", c.input, got, err, c.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("ParseClock(%q) = %v, want error", c.input, got)
		}
	}
}

func TestIsWithinWindow_Boundaries(t *testing.T) {
	cases := []struct {
		clock string
		shift ShiftName
		want  bool
	}{
		{"05:00", Shift1, true},
		{"04:59", Shift1, false},
		{"15:30", Shift1, true},
		{"15:31", Shift1, false},
		{"16:00", Shift2, true},
		{"16:00", Shift1, false},
		{"20:00", Shift2, true},
		{"20:01", Shift2, false},
		{"15:59", Shift2, false},
		{"10:00", Shift2, false},
		{"10:00", ShiftName("Shift 3"), false},
		{"10:00", ShiftName(""), false},
	}
	for _, c := range cases {
		got := IsWithinWindow(MustClock(c.clock), c.shift)
		if got != c.want {
			t.Errorf("IsWithinWindow(%s, %q) = %v, want %v", c.clock, c.shift, got, c.want)
		}
	}
}

func TestResolveShift(t *testing.T) {
	assert.Equal(t, Shift1, ResolveShift(MustClock("05:00")))
	assert.Equal(t, Shift1, ResolveShift(MustClock("15:30")))
	assert.Equal(t, Shift2, ResolveShift(MustClock("16:00")))
	assert.Equal(t, Shift2, ResolveShift(MustClock("20:00")))

	// outside both windows keeps the historical Shift 1 default
	assert.Equal(t, Shift1, ResolveShift(MustClock("15:45")))
	assert.Equal(t, Shift1, ResolveShift(MustClock("22:00")))
	assert.Equal(t, Shift1, ResolveShift(MustClock("02:00")))
}

func TestIsOutsideAllWindows(t *testing.T) {
	assert.True(t, IsOutsideAllWindows(MustClock("04:59")))
	assert.True(t, IsOutsideAllWindows(MustClock("15:45")))
	assert.True(t, IsOutsideAllWindows(MustClock("20:01")))
	assert.False(t, IsOutsideAllWindows(MustClock("05:00")))
	assert.False(t, IsOutsideAllWindows(MustClock("18:00")))
}

func TestNormalizeShift(t *testing.T) {
	for _, in := range []string{"Shift 1", "shift1", "1", "SHIFT-1", " shift_1 "} {
		got, err := NormalizeShift(in)
		require.NoError(t, err, in)
		assert.Equal(t, Shift1, got, in)
	}
	got, err := NormalizeShift("Shift 2")
	require.NoError(t, err)
	assert.Equal(t, Shift2, got)

	_, err = NormalizeShift("Night")
	assert.ErrorIs(t, err, ErrUnknownShift)
}

func TestClockOf_NoZoneConversion(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2024, 6, 3, 14, 5, 59, 0, wib)
	assert.Equal(t, MustClock("14:05"), ClockOf(ts))
	assert.Equal(t, "14:05", ClockOf(ts).String())
	assert.Equal(t, "05:00-15:30", Shift1Window.String())
}
