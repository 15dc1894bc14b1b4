package timer

import (
	"fmt"
	"sync"
	"time"

	"pagegate/internal/gate/common/clock"
	"pagegate/internal/gate/common/log"
	"pagegate/internal/gate/domain"
)

// Pomodoro is the work/rest cycle timer. Phase transitions are derived
// lazily from the clock on every Status call instead of a background ticker,
// so the timer is fully deterministic under a mock clock.
type Pomodoro struct {
	mu     sync.Mutex
	clock  clock.Clock
	logger log.Logger

	work time.Duration
	rest time.Duration

	state     domain.TimerState // STOPPED and PAUSED are explicit; WORK/REST roll forward lazily
	phaseEnds time.Time         // end of the current interval when running
	remaining time.Duration     // frozen remainder while paused
	resumeTo  domain.TimerState // phase to resume into after a pause
	cycle     int
}

// New constructs a stopped Pomodoro timer.
func New(work, rest time.Duration, clk clock.Clock, logger log.Logger) (*Pomodoro, error) {
	if work <= 0 || rest <= 0 {
		return nil, fmt.Errorf("work and rest intervals must be positive")
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Pomodoro{
		clock:  clk,
		logger: logger,
		work:   work,
		rest:   rest,
		state:  domain.TimerStopped,
	}, nil
}

// Start begins a new session at the top of a work interval.
func (p *Pomodoro) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = domain.TimerWork
	p.phaseEnds = p.clock.Now().Add(p.work)
	p.cycle = 1
	p.logger.Info(map[string]any{"work": p.work.String(), "rest": p.rest.String()}, "timer started")
}

// Stop ends the session. Stopping an idle timer is a no-op.
func (p *Pomodoro) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == domain.TimerStopped {
		return
	}
	p.state = domain.TimerStopped
	p.phaseEnds = time.Time{}
	p.remaining = 0
	p.cycle = 0
	p.logger.Info(nil, "timer stopped")
}

// Pause freezes the current interval. Pausing a stopped or already paused
// timer is a no-op.
func (p *Pomodoro) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.clock.Now()
	p.advanceLocked(now)
	if p.state != domain.TimerWork && p.state != domain.TimerRest {
		return
	}
	p.remaining = p.phaseEnds.Sub(now)
	p.resumeTo = p.state
	p.state = domain.TimerPaused
	p.logger.Info(map[string]any{"remaining": p.remaining.String()}, "timer paused")
}

// Resume continues a paused interval where it left off.
func (p *Pomodoro) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != domain.TimerPaused {
		return
	}
	p.state = p.resumeTo
	p.phaseEnds = p.clock.Now().Add(p.remaining)
	p.remaining = 0
	p.logger.Info(map[string]any{"state": string(p.state)}, "timer resumed")
}

// Status returns the externally observable timer state, rolling elapsed
// phases forward first.
func (p *Pomodoro) Status() domain.TimerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.clock.Now()
	p.advanceLocked(now)

	st := domain.TimerStatus{State: p.state, Cycle: p.cycle}
	switch p.state {
	case domain.TimerWork, domain.TimerRest:
		st.Active = true
		st.Remaining = p.phaseEnds.Sub(now)
	case domain.TimerPaused:
		st.Active = true
		st.Remaining = p.remaining
	}
	return st
}

// advanceLocked rolls the state machine forward across any intervals that
// have fully elapsed since the last observation.
func (p *Pomodoro) advanceLocked(now time.Time) {
	for p.state == domain.TimerWork || p.state == domain.TimerRest {
		if now.Before(p.phaseEnds) {
			return
		}
		if p.state == domain.TimerWork {
			p.state = domain.TimerRest
			p.phaseEnds = p.phaseEnds.Add(p.rest)
		} else {
			p.state = domain.TimerWork
			p.phaseEnds = p.phaseEnds.Add(p.work)
			p.cycle++
		}
	}
}
