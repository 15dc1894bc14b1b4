package redirect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pagegate/internal/gate/common/log"
)

type fakeNavigator struct {
	failures int // number of attempts to fail before succeeding
	calls    []string
}

func (n *fakeNavigator) Navigate(target string) error {
	n.calls = append(n.calls, target)
	if len(n.calls) <= n.failures {
		return errors.New("blocked by page CSP")
	}
	return nil
}

type fakeNotifier struct {
	failed []string
}

func (n *fakeNotifier) RedirectFailed(target string) {
	n.failed = append(n.failed, target)
}

func TestValidateTarget(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"https kept", "https://example.com/x", "https://example.com/x"},
		{"http kept", "http://example.com", "http://example.com"},
		{"whitespace trimmed", "  https://example.com  ", "https://example.com"},
		{"javascript scheme rejected", "javascript:alert(1)", DefaultFallbackTarget},
		{"file scheme rejected", "file:///etc/passwd", DefaultFallbackTarget},
		{"schemeless rejected", "example.com", DefaultFallbackTarget},
		{"empty rejected", "", DefaultFallbackTarget},
		{"garbage rejected", "ht tp://%%", DefaultFallbackTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateTarget(tc.in))
		})
	}
}

func TestNewPlan(t *testing.T) {
	p := NewPlan("https://example.com", 5)
	assert.Equal(t, "https://example.com", p.Target)
	assert.Equal(t, 5*time.Second, p.Delay)

	// Zero means immediate; negative clamps to zero.
	assert.Zero(t, NewPlan("https://example.com", 0).Delay)
	assert.Zero(t, NewPlan("https://example.com", -3).Delay)

	// Unsafe targets fall back.
	assert.Equal(t, DefaultFallbackTarget, NewPlan("ftp://example.com", 0).Target)
}

func newTestController(nav Navigator, not Notifier) *Controller {
	return NewController(ControllerOptions{
		Navigator:     nav,
		Notifier:      not,
		Logger:        log.NewNoopLogger(),
		Attempts:      3,
		RetryInterval: time.Millisecond,
	})
}

func TestController_ImmediateSuccess(t *testing.T) {
	nav := &fakeNavigator{}
	not := &fakeNotifier{}
	c := newTestController(nav, not)

	err := c.Run(context.Background(), Plan{Target: "https://example.com"})
	assert.NoError(t, err)
	assert.Len(t, nav.calls, 1)
	assert.Empty(t, not.failed)
}

func TestController_RetriesThenSucceeds(t *testing.T) {
	nav := &fakeNavigator{failures: 2}
	not := &fakeNotifier{}
	c := newTestController(nav, not)

	err := c.Run(context.Background(), Plan{Target: "https://example.com"})
	assert.NoError(t, err)
	assert.Len(t, nav.calls, 3)
	assert.Empty(t, not.failed)
}

func TestController_ExhaustionNotifiesOnce(t *testing.T) {
	nav := &fakeNavigator{failures: 99}
	not := &fakeNotifier{}
	c := newTestController(nav, not)

	err := c.Run(context.Background(), Plan{Target: "https://example.com"})
	assert.ErrorIs(t, err, ErrNavigationExhausted)
	assert.Len(t, nav.calls, 3)
	assert.Equal(t, []string{"https://example.com"}, not.failed)
}

func TestController_CancelDuringCountdown(t *testing.T) {
	nav := &fakeNavigator{}
	c := newTestController(nav, &fakeNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Run(ctx, Plan{Target: "https://example.com", Delay: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, nav.calls)
}

func TestController_Defaults(t *testing.T) {
	c := NewController(ControllerOptions{Navigator: &fakeNavigator{}})
	assert.Equal(t, 3, c.attempts)
	assert.Equal(t, 250*time.Millisecond, c.retryInterval)
}
