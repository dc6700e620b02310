package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/obentoo/fedora-feedback/internal/common/logger"
)

// DefaultThrottle is the pause between two consecutive notifications
const DefaultThrottle = time.Second

// Dispatcher sends payloads one at a time, pausing between sends, and decides
// whether a failed send is fatal.
type Dispatcher struct {
	notifier Notifier
	strict   bool
	throttle time.Duration
	sleep    func(time.Duration)
	sent     int
}

// NewDispatcher creates a dispatcher. A strict dispatcher returns every
// failure; a lenient one logs it and carries on.
func NewDispatcher(n Notifier, strict bool) *Dispatcher {
	return &Dispatcher{
		notifier: n,
		strict:   strict,
		throttle: DefaultThrottle,
		sleep:    time.Sleep,
	}
}

// SetThrottle changes the pause between sends
func (d *Dispatcher) SetThrottle(t time.Duration) {
	d.throttle = t
}

// SetSleepFunc replaces time.Sleep (for testing)
func (d *Dispatcher) SetSleepFunc(fn func(time.Duration)) {
	d.sleep = fn
}

// Send displays p. The throttle applies before every send but the first.
func (d *Dispatcher) Send(p Payload) error {
	if d.sent > 0 && d.throttle > 0 {
		d.sleep(d.throttle)
	}
	d.sent++

	err := d.notifier.Notify(p)
	if err == nil {
		logger.Debug("notification sent: %s", p.Summary)
		return nil
	}
	if !errors.Is(err, ErrNotification) {
		err = fmt.Errorf("%w: %v", ErrNotification, err)
	}
	if d.strict {
		return err
	}
	logger.Warn("Warning: %v", err)
	return nil
}
