package domain

// Reason explains a BlockDecision outcome.
type Reason string

const (
	// ReasonRule means a block rule matched and gating permitted enforcement.
	ReasonRule Reason = "rule"
	// ReasonTimerGatedOff means the Pomodoro timer is resting, suspending enforcement.
	ReasonTimerGatedOff Reason = "timer-gated-off"
	// ReasonWorkHoursGatedOff means the current time is outside the work-hours window.
	ReasonWorkHoursGatedOff Reason = "work-hours-gated-off"
	// ReasonWhitelisted means a whitelist rule matched; whitelist always wins.
	ReasonWhitelisted Reason = "whitelisted"
	// ReasonNoMatch means no rule matched.
	ReasonNoMatch Reason = "no-match"
)

// BlockDecision is the engine's single output for one page evaluation.
// Pure value type, no external dependencies.
type BlockDecision struct {
	Blocked     bool
	MatchedRule string // rule that matched; empty unless Reason is rule or whitelisted
	Target      string // canonical site identity extracted from the URL
	Reason      Reason
}

// IsBlocked is a convenience accessor.
func (d BlockDecision) IsBlocked() bool { return d.Blocked }

// Allow returns a not-blocked decision with the given reason.
func Allow(target string, reason Reason) BlockDecision {
	return BlockDecision{Blocked: false, Target: target, Reason: reason}
}

// Block returns a blocked decision attributed to the given rule.
func Block(target, matchedRule string) BlockDecision {
	return BlockDecision{Blocked: true, MatchedRule: matchedRule, Target: target, Reason: ReasonRule}
}

// MatchResult is the time-independent half of an evaluation: which whitelist
// or block rule, if any, matches the URL. It carries no clock or timer input,
// so it is safe to cache per URL until the rule sets change.
type MatchResult struct {
	Target        string // extracted site identity
	WhitelistRule string // first matching whitelist rule, or ""
	BlockRule     string // first matching block rule, or ""
}

// Whitelisted reports whether a whitelist rule matched.
func (m MatchResult) Whitelisted() bool { return m.WhitelistRule != "" }

// Matched reports whether a block rule matched.
func (m MatchResult) Matched() bool { return m.BlockRule != "" }
