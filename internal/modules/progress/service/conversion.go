package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	progressout "stepone/internal/modules/progress/port/out"
	"stepone/internal/platform/clock"
	"stepone/internal/platform/logging"
)

// ConversionScheduler holds at most one pending guest-to-member prompt.
type ConversionScheduler struct {
	scheduler clock.Scheduler
	prompter  progressout.ConversionPrompter
	delay     time.Duration
	logger    *zap.Logger

	mu         sync.Mutex
	timer      clock.Timer
	generation uint64
}

func NewConversionScheduler(scheduler clock.Scheduler, prompter progressout.ConversionPrompter, delay time.Duration, logger *zap.Logger) *ConversionScheduler {
	return &ConversionScheduler{scheduler: scheduler, prompter: prompter, delay: delay, logger: logging.OrNop(logger)}
}

// Schedule replaces any pending prompt with one firing after the delay.
func (c *ConversionScheduler) Schedule() {
	if c.prompter == nil || c.scheduler == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	gen := c.generation
	c.timer = c.scheduler.AfterFunc(c.delay, func() { c.fire(gen) })
	c.logger.Debug("conversion prompt scheduled", zap.Duration("delay", c.delay))
}

// Cancel drops the pending prompt. A callback already running when Cancel
// returns cannot prompt anymore.
func (c *ConversionScheduler) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopLocked() {
		c.logger.Debug("conversion prompt cancelled")
	}
}

func (c *ConversionScheduler) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

func (c *ConversionScheduler) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.timer = nil
	c.generation++
	c.prompter.PromptConversion()
}

func (c *ConversionScheduler) stopLocked() bool {
	c.generation++
	if c.timer == nil {
		return false
	}
	c.timer.Stop()
	c.timer = nil
	return true
}
