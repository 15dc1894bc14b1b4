package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimerState is the externally observable state of the Pomodoro timer.
type TimerState string

const (
	// TimerStopped means no session is running.
	TimerStopped TimerState = "STOPPED"
	// TimerWork means a work interval is underway.
	TimerWork TimerState = "WORK"
	// TimerRest means a rest interval is underway; enforcement is suspended.
	TimerRest TimerState = "REST"
	// TimerPaused means a session is frozen mid-interval.
	TimerPaused TimerState = "PAUSED"
)

// IsValid reports whether the state is one of the supported values.
func (s TimerState) IsValid() bool {
	switch s {
	case TimerStopped, TimerWork, TimerRest, TimerPaused:
		return true
	default:
		return false
	}
}

// ParseTimerState converts a string into a TimerState (case-insensitive).
func ParseTimerState(s string) (TimerState, error) {
	st := TimerState(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("unsupported TimerState: %q", s)
	}
	return st, nil
}

// TimerStatus is the value object the timer collaborator exposes to the
// engine. The engine reads it, never writes it.
type TimerStatus struct {
	State     TimerState
	Active    bool          // a session is underway (WORK, REST, or PAUSED mid-session)
	Remaining time.Duration // time left in the current interval; zero when stopped
	Cycle     int           // 1-based work cycle count; zero when stopped
}

// StoppedTimer returns the status of an idle timer.
func StoppedTimer() TimerStatus {
	return TimerStatus{State: TimerStopped}
}
