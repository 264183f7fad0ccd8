package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a local civil time of day in minutes since midnight.
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClock parses "HH:MM" (or "HH:MM:SS", seconds ignored).
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidClockTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClockTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClockTime
	}
	return ClockTime(h*60 + m), nil
}

// MustClock is ParseClock for constants.
func MustClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(fmt.Sprintf("schedule: invalid clock %q", s))
	}
	return c
}

// ClockOf extracts the time of day from t without any zone conversion.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

func (c ClockTime) String() string {
	v := int(c) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", v/60, v%60)
}

// Window is an inclusive [Start, End] admission window.
type Window struct {
	Start ClockTime
	End   ClockTime
}

func (w Window) Contains(c ClockTime) bool {
	return c >= w.Start && c <= w.End
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

type ShiftName string

const (
	Shift1 ShiftName = "Shift 1"
	Shift2 ShiftName = "Shift 2"
)

var (
	Shift1Window = Window{Start: MustClock("05:00"), End: MustClock("15:30")}
	Shift2Window = Window{Start: MustClock("16:00"), End: MustClock("20:00")}
)

// WindowFor returns the admission window of a recognized shift.
func WindowFor(shift ShiftName) (Window, bool) {
	switch shift {
	case Shift1:
		return Shift1Window, true
	case Shift2:
		return Shift2Window, true
	default:
		return Window{}, false
	}
}

// NormalizeShift maps the spellings found in roster data ("Shift 1", "shift1",
// "1", "SHIFT-2") to a ShiftName. Unknown values return ErrUnknownShift.
func NormalizeShift(s string) (ShiftName, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(v)
	v = strings.TrimPrefix(v, "shift")
	switch v {
	case "1":
		return Shift1, nil
	case "2":
		return Shift2, nil
	default:
		return ShiftName(s), ErrUnknownShift
	}
}

// ResolveShift maps a time of day to a shift. Times outside both windows
// fall back to Shift 1; this is the historical default and is kept as is.
func ResolveShift(c ClockTime) ShiftName {
	if Shift2Window.Contains(c) {
		return Shift2
	}
	return Shift1
}

// IsWithinWindow is the strict admission check. Unrecognized shifts fail closed.
func IsWithinWindow(c ClockTime, scheduled ShiftName) bool {
	w, ok := WindowFor(scheduled)
	if !ok {
		return false
	}
	return w.Contains(c)
}

// IsOutsideAllWindows reports whether c falls in no shift window.
func IsOutsideAllWindows(c ClockTime) bool {
	return !Shift1Window.Contains(c) && !Shift2Window.Contains(c)
}
