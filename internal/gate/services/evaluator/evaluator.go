package evaluator

import (
	"pagegate/internal/gate/common/clock"
	"pagegate/internal/gate/common/log"
	"pagegate/internal/gate/domain"
)

// Evaluator is the decision combiner. It holds no evaluation state of its
// own; every call re-reads the rule snapshot, timer status, and work-hours
// window, so identical inputs always yield identical output.
type Evaluator struct {
	rules     RuleMatcher
	timer     TimerSource
	workHours WorkHoursSource
	clock     clock.Clock
	observer  Observer
	logger    log.Logger
}

// Options configures an Evaluator. Rules, Timer, and WorkHours are required;
// the rest default to real clock, no-op observer, and no-op logger.
type Options struct {
	Rules     RuleMatcher
	Timer     TimerSource
	WorkHours WorkHoursSource
	Clock     clock.Clock
	Observer  Observer
	Logger    log.Logger
}

// New constructs an Evaluator.
func New(opts Options) *Evaluator {
	e := &Evaluator{
		rules:     opts.Rules,
		timer:     opts.Timer,
		workHours: opts.WorkHours,
		clock:     opts.Clock,
		observer:  opts.Observer,
		logger:    opts.Logger,
	}
	if e.clock == nil {
		e.clock = clock.RealClock{}
	}
	if e.observer == nil {
		e.observer = noopObserver{}
	}
	if e.logger == nil {
		e.logger = log.NewNoopLogger()
	}
	return e
}

// Decide runs one full evaluation for a normalized URL.
//
// Precedence is whitelist > gating > rules: the whitelist is a hard user
// override that timer state must never defeat, while ordinary blocking is
// meant to be suspended during breaks and off-hours even when a rule would
// otherwise match.
func (e *Evaluator) Decide(u domain.NormalizedURL) domain.BlockDecision {
	m := e.rules.Match(u)

	var d domain.BlockDecision
	switch {
	case m.Whitelisted():
		d = domain.Allow(m.Target, domain.ReasonWhitelisted)
		d.MatchedRule = m.WhitelistRule
	default:
		switch EvaluateGate(e.timer.Status(), e.workHours.WorkHours(), e.clock.Now()) {
		case GateTimerRest:
			d = domain.Allow(m.Target, domain.ReasonTimerGatedOff)
		case GateOffHours:
			d = domain.Allow(m.Target, domain.ReasonWorkHoursGatedOff)
		default:
			if m.Matched() {
				d = domain.Block(m.Target, m.BlockRule)
			} else {
				d = domain.Allow(m.Target, domain.ReasonNoMatch)
			}
		}
	}

	e.logger.Debug(map[string]any{
		"host":    u.Hostname,
		"path":    u.Pathname,
		"target":  d.Target,
		"blocked": d.Blocked,
		"reason":  string(d.Reason),
		"rule":    d.MatchedRule,
	}, "evaluated")
	e.observer.Evaluated(u, d)
	return d
}

// DecideRaw normalizes a raw hostname/pathname pair and evaluates it.
func (e *Evaluator) DecideRaw(hostname, pathname string) domain.BlockDecision {
	return e.Decide(domain.Normalize(hostname, pathname))
}
