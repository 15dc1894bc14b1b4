// Package redirect implements the blocked-page redirect contract. The daemon
// embeds a Plan in decide responses; the Controller is the execution half,
// used by the browser-side extension code that performs the actual
// navigation, and lives here so its retry and fallback behavior stays
// versioned with the contract it executes.
package redirect

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"pagegate/internal/gate/common/log"
)

// DefaultFallbackTarget is where blocked pages go when the configured
// redirect target is unusable.
const DefaultFallbackTarget = "https://www.google.com"

// ErrNavigationExhausted is returned when every navigation attempt failed
// and the failure has been surfaced to the user.
var ErrNavigationExhausted = errors.New("all navigation attempts failed")

// Navigator performs one navigation attempt. The browser-side collaborator
// implements it; tests use fakes.
type Navigator interface {
	Navigate(target string) error
}

// Notifier surfaces a redirect failure to the user as a visible notice with
// a manual link. It is called at most once per Run.
type Notifier interface {
	RedirectFailed(target string)
}

// Plan is the redirect the caller must execute for a blocked page.
type Plan struct {
	Target string
	Delay  time.Duration // zero means navigate immediately
}

// NewPlan validates the target and builds a Plan. Negative delays clamp to
// zero.
func NewPlan(target string, delaySeconds int) Plan {
	if delaySeconds < 0 {
		delaySeconds = 0
	}
	return Plan{
		Target: ValidateTarget(target),
		Delay:  time.Duration(delaySeconds) * time.Second,
	}
}

// ValidateTarget returns target when it is an absolute http or https URL
// with a host; anything else (other schemes, malformed input, empty string)
// falls back to the safe default destination.
func ValidateTarget(target string) string {
	target = strings.TrimSpace(target)
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return DefaultFallbackTarget
	}
	switch u.Scheme {
	case "http", "https":
		return target
	default:
		return DefaultFallbackTarget
	}
}

// Controller executes redirect plans: wait out the countdown, then attempt
// navigation a bounded number of times. If the hosting page's own security
// policy blocks every attempt, the failure is surfaced once through the
// Notifier instead of retrying forever.
type Controller struct {
	navigator     Navigator
	notifier      Notifier
	logger        log.Logger
	attempts      int
	retryInterval time.Duration
}

// ControllerOptions configures a Controller. Navigator is required;
// Attempts defaults to 3 and RetryInterval to 250ms.
type ControllerOptions struct {
	Navigator     Navigator
	Notifier      Notifier
	Logger        log.Logger
	Attempts      int
	RetryInterval time.Duration
}

// NewController constructs a Controller.
func NewController(opts ControllerOptions) *Controller {
	c := &Controller{
		navigator:     opts.Navigator,
		notifier:      opts.Notifier,
		logger:        opts.Logger,
		attempts:      opts.Attempts,
		retryInterval: opts.RetryInterval,
	}
	if c.attempts <= 0 {
		c.attempts = 3
	}
	if c.retryInterval <= 0 {
		c.retryInterval = 250 * time.Millisecond
	}
	if c.logger == nil {
		c.logger = log.NewNoopLogger()
	}
	return c
}

// Run executes a plan. Cancelling the context during the countdown stops the
// pending navigation; once a navigation attempt succeeds, no further
// attempts run.
func (c *Controller) Run(ctx context.Context, p Plan) error {
	if p.Delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	for i := 0; i < c.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.navigator.Navigate(p.Target)
		if err == nil {
			return nil
		}
		c.logger.Warn(map[string]any{
			"target":  p.Target,
			"attempt": i + 1,
			"error":   err.Error(),
		}, "navigation attempt failed")
		if i < c.attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryInterval):
			}
		}
	}

	if c.notifier != nil {
		c.notifier.RedirectFailed(p.Target)
	}
	return ErrNavigationExhausted
}
