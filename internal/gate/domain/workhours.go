package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WorkHours is the weekly enforcement window. When enabled, blocking is
// permitted only on the listed weekdays between StartTime (inclusive) and
// EndTime (exclusive), same-day windows only; overnight wrapping is not
// supported. When disabled, the window never vetoes enforcement.
type WorkHours struct {
	Enabled   bool
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	Days      map[time.Weekday]struct{}
}

// NewWorkHours validates and constructs a WorkHours window.
// days uses 0=Sunday..6=Saturday, matching the settings storage contract.
func NewWorkHours(enabled bool, start, end string, days []int) (WorkHours, error) {
	if _, err := ParseClockTime(start); err != nil {
		return WorkHours{}, fmt.Errorf("invalid start time: %w", err)
	}
	if _, err := ParseClockTime(end); err != nil {
		return WorkHours{}, fmt.Errorf("invalid end time: %w", err)
	}
	w := WorkHours{
		Enabled:   enabled,
		StartTime: start,
		EndTime:   end,
		Days:      make(map[time.Weekday]struct{}, len(days)),
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return WorkHours{}, fmt.Errorf("weekday out of range: %d", d)
		}
		w.Days[time.Weekday(d)] = struct{}{}
	}
	return w, nil
}

// PermitsBlocking reports whether the window allows enforcement at the given
// instant. An unparseable window fails open: enforcement is not permitted
// rather than the evaluation erroring out.
func (w WorkHours) PermitsBlocking(now time.Time) bool {
	if !w.Enabled {
		return true
	}
	if _, ok := w.Days[now.Weekday()]; !ok {
		return false
	}
	start, err := ParseClockTime(w.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClockTime(w.EndTime)
	if err != nil {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	return cur >= start && cur < end
}

// ParseClockTime parses an "HH:MM" string into minutes since midnight.
func ParseClockTime(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock time must be HH:MM: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in clock time: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in clock time: %q", s)
	}
	return h*60 + m, nil
}
