package services

import (
	"fmt"
	"math"
	"time"
)

// RatingCooldown is the minimum interval between two writes of the same rating.
const RatingCooldown = 30 * time.Second

// CooldownError rejects a rating update that came too soon after the previous one.
type CooldownError struct {
	RemainingSeconds int // Whole seconds to wait, rounded up
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("Please wait %ds before updating your rating again", e.RemainingSeconds)
}

// CooldownPolicy enforces a fixed interval between successive rating writes.
type CooldownPolicy struct {
	Window time.Duration
}

// NewCooldownPolicy returns a policy with the given window.
func NewCooldownPolicy(window time.Duration) CooldownPolicy {
	return CooldownPolicy{Window: window}
}

// Check allows the write when there is no previous write or when at least
// Window has elapsed since lastUpdated. Otherwise it returns *CooldownError.
func (p CooldownPolicy) Check(lastUpdated *time.Time, now time.Time) error {
	if lastUpdated == nil {
		return nil
	}

	window := p.Window.Seconds()
	elapsed := now.Sub(*lastUpdated).Seconds()
	if elapsed >= window {
		return nil
	}

	remaining := math.Ceil(window - elapsed)
	// a clock running behind the stored timestamp must not report more than a full window
	if full := math.Ceil(window); remaining > full {
		remaining = full
	}
	return &CooldownError{RemainingSeconds: int(remaining)}
}

// StaleBefore is the latest previous-write time that still allows a write at now.
func (p CooldownPolicy) StaleBefore(now time.Time) time.Time {
	return now.Add(-p.Window)
}
