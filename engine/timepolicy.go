package engine

import (
	"time"

	"github.com/pkg/errors"
)

// Budget is the clock information for one move. It is either the game's time
// control (the first move of a game) or the time remaining on our clock.
type Budget interface {
	isBudget()
}

// TimeControl is what the host knows before our clock has started running.
type TimeControl struct {
	Initial   time.Duration
	Increment time.Duration
}

// Remaining is the time left on our clock.
type Remaining time.Duration

func (TimeControl) isBudget() {}
func (Remaining) isBudget()   {}

// DepthThreshold maps any remaining time up to and including Max to Depth.
type DepthThreshold struct {
	Max   time.Duration `yaml:"max" validate:"gt=0"`
	Depth int           `yaml:"depth" validate:"gte=1"`
}

// TimePolicy picks a fixed search depth up front from the clock. Thresholds are
// tried shortest first; anything above the last one, and the first move of a
// game, gets MaxDepth.
type TimePolicy struct {
	Thresholds []DepthThreshold `yaml:"thresholds" validate:"dive"`
	MaxDepth   int              `yaml:"max_depth" validate:"gte=1"`
}

func (tp *TimePolicy) DepthFor(budget Budget) int {
	remaining, ok := budget.(Remaining)
	if !ok {
		return tp.MaxDepth
	}

	for _, threshold := range tp.Thresholds {
		if time.Duration(remaining) <= threshold.Max {
			return threshold.Depth
		}
	}
	return tp.MaxDepth
}

// check makes sure thresholds ascend and every depth is reachable within MaxDepth.
func (tp *TimePolicy) check() error {
	var prev time.Duration
	for i, threshold := range tp.Thresholds {
		if threshold.Max <= prev {
			return errors.Wrapf(ErrInvalidConfig, "time threshold %d (%s) is not above the previous one (%s)", i, threshold.Max, prev)
		}
		if threshold.Depth < 1 || threshold.Depth > tp.MaxDepth {
			return errors.Wrapf(ErrInvalidConfig, "time threshold %d depth %d is outside [1, %d]", i, threshold.Depth, tp.MaxDepth)
		}
		prev = threshold.Max
	}
	return nil
}
