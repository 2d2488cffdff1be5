package report

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM" or "HH:MM:SS" string into total minutes.
// Used both for times-of-day (wakeup) and for durations stored in the same
// encoding (puja, reading, wasted time); parsing happens once here, at the
// aggregation edge, and everything downstream works with minutes.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hours*60 + minutes, nil
}

// clockMinutes parses a nullable clock field, returning (0, false) for nil
// or unparseable values so a bad row never aborts an aggregation
func clockMinutes(s *string) (int, bool) {
	if s == nil || *s == "" {
		return 0, false
	}
	mins, err := ParseClock(*s)
	if err != nil {
		return 0, false
	}
	return mins, true
}

// FormatClock renders minutes-since-midnight as zero-padded "HH:MM"
func FormatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatClock12 renders minutes-since-midnight in 12-hour form, e.g. "6:05 AM"
func FormatClock12(mins int) string {
	h := mins / 60
	m := mins % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// FormatDurationShort renders a minute count as "45m", "2h" or "2h 5m"
func FormatDurationShort(mins int) string {
	h := mins / 60
	m := mins % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatDurationLong renders a minute count as "0 m", "45 m", "2 h" or "2 h 5 m"
func FormatDurationLong(mins int) string {
	h := mins / 60
	m := mins % 60
	if h == 0 && m == 0 {
		return "0 m"
	}
	if h == 0 {
		return fmt.Sprintf("%d m", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d m", h, m)
}
