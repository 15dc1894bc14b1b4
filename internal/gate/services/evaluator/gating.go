package evaluator

import (
	"time"

	"pagegate/internal/gate/domain"
)

// GateResult names which time-based gate, if any, currently suspends
// enforcement.
type GateResult int

const (
	// GateOpen means both gates permit enforcement.
	GateOpen GateResult = iota
	// GateTimerRest means the Pomodoro timer is in a rest interval.
	GateTimerRest
	// GateOffHours means the current time is outside the work-hours window.
	GateOffHours
)

// EvaluateGate combines the two independent time-based signals into one
// "blocking currently active" answer. REST always suspends enforcement,
// regardless of the work-hours window; STOPPED and PAUSED add no suspension
// of their own and defer to the work-hours gate alone.
func EvaluateGate(timer domain.TimerStatus, wh domain.WorkHours, now time.Time) GateResult {
	if timer.State == domain.TimerRest {
		return GateTimerRest
	}
	if !wh.PermitsBlocking(now) {
		return GateOffHours
	}
	return GateOpen
}
