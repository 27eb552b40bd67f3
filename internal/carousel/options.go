package carousel

import (
	"fmt"
	"math"
)

// Default option values.
const (
	DefaultItemWidth       = 200.0
	DefaultChangeThreshold = 80.0
)

// Options configure a mounted carousel.
type Options struct {
	// Disabled locks the carousel to its resting slot. Drags are clamped to
	// a short leftward rubber band and always snap back.
	Disabled bool
	// ItemWidth is the slot pitch in pixels.
	ItemWidth float64
	// ItemHeight is the card height in pixels. Zero fills the container.
	ItemHeight float64
	// ChangeThreshold is the release distance a drag must exceed to move
	// to the neighbouring slot.
	ChangeThreshold float64
	Wrap            WrapMode
}

// DefaultOptions returns the defaults presented to host applications.
func DefaultOptions() Options {
	return Options{
		ItemWidth:       DefaultItemWidth,
		ChangeThreshold: DefaultChangeThreshold,
	}
}

// Validate checks the options against the number of cards to be mounted.
func (o Options) Validate(cardCount int) error {
	if cardCount >= 2 {
		if err := checkWidth(o.ItemWidth); err != nil {
			return err
		}
	}
	if o.ChangeThreshold <= 0 || math.IsNaN(o.ChangeThreshold) {
		return fmt.Errorf("%w: change threshold %v must be positive", ErrInvalidConfiguration, o.ChangeThreshold)
	}
	if o.ItemHeight < 0 {
		return fmt.Errorf("%w: item height %v must not be negative", ErrInvalidConfiguration, o.ItemHeight)
	}
	if o.Wrap != WrapAccumulate && o.Wrap != WrapModulo {
		return fmt.Errorf("%w: unknown wrap mode %d", ErrInvalidConfiguration, int(o.Wrap))
	}
	return nil
}
