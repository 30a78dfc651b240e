package scoring

import (
	"errors"
	"fmt"
)

var ErrScoreOutOfRange = errors.New("score out of range")

// Bounds is the accepted goal range for a single side of a scoreline.
type Bounds struct {
	Min int
	Max int
}

func DefaultBounds() Bounds {
	return Bounds{Min: 0, Max: 99}
}

func (b Bounds) Validate(s Scoreline) error {
	if s.Home < b.Min || s.Home > b.Max {
		return fmt.Errorf("%w: home=%d allowed=[%d,%d]", ErrScoreOutOfRange, s.Home, b.Min, b.Max)
	}
	if s.Away < b.Min || s.Away > b.Max {
		return fmt.Errorf("%w: away=%d allowed=[%d,%d]", ErrScoreOutOfRange, s.Away, b.Min, b.Max)
	}
	return nil
}

func (b Bounds) Normalize() Bounds {
	if b.Min < 0 {
		b.Min = 0
	}
	if b.Max < b.Min {
		return DefaultBounds()
	}
	return b
}
