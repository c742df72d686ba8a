// Package timer holds the cooperative cooldown countdown. It owns no goroutine:
// whoever drives it calls Tick, so it can be advanced deterministically in tests.
package timer

import (
	"fmt"
	"time"
)

const ReadyText = "Ready to check goals"

type Countdown struct {
	remaining time.Duration
	running   bool
	onTick    func(remaining time.Duration)
	onFinish  func()
}

func NewCountdown(onTick func(remaining time.Duration), onFinish func()) *Countdown {
	return &Countdown{onTick: onTick, onFinish: onFinish}
}

// Start (re)arms the countdown. A non-positive duration finishes immediately.
func (c *Countdown) Start(d time.Duration) {
	if d <= 0 {
		c.remaining = 0
		c.running = false
		if c.onFinish != nil {
			c.onFinish()
		}
		return
	}
	c.remaining = d
	c.running = true
}

// Cancel stops the countdown without firing onFinish. Later ticks are ignored.
func (c *Countdown) Cancel() {
	c.running = false
	c.remaining = 0
}

func (c *Countdown) Tick(elapsed time.Duration) {
	if !c.running || elapsed <= 0 {
		return
	}
	c.remaining -= elapsed
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		if c.onFinish != nil {
			c.onFinish()
		}
		return
	}
	if c.onTick != nil {
		c.onTick(c.remaining)
	}
}

func (c *Countdown) Running() bool {
	return c.running
}

func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Text renders the countdown the way the tracker screen shows it.
func (c *Countdown) Text() string {
	if !c.running {
		return ReadyText
	}
	return FormatRemaining(c.remaining)
}

func FormatRemaining(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("Time until next check: %02d:%02d", secs/60, secs%60)
}
