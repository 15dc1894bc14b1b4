package evaluator

import "pagegate/internal/gate/domain"

// RuleMatcher answers the time-independent half of an evaluation: which
// whitelist or block rule, if any, matches the URL.
type RuleMatcher interface {
	Match(u domain.NormalizedURL) domain.MatchResult
}

// TimerSource exposes the Pomodoro timer's externally observable state.
type TimerSource interface {
	Status() domain.TimerStatus
}

// WorkHoursSource supplies the current work-hours window. Settings can
// change between evaluations, so the window is re-read every time.
type WorkHoursSource interface {
	WorkHours() domain.WorkHours
}

// Observer receives every evaluation outcome. Implementations run inline on
// the decision path and must be cheap. The default is a no-op, keeping the
// engine free of rendering and debug-overlay dependencies.
type Observer interface {
	Evaluated(u domain.NormalizedURL, d domain.BlockDecision)
}

type noopObserver struct{}

func (noopObserver) Evaluated(domain.NormalizedURL, domain.BlockDecision) {}

// StaticWorkHours adapts a fixed WorkHours value to WorkHoursSource.
type StaticWorkHours domain.WorkHours

func (s StaticWorkHours) WorkHours() domain.WorkHours { return domain.WorkHours(s) }
