package texture

import (
	"errors"
	"fmt"
)

// ErrInvalidRecipe is wrapped by every validation failure in this package.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Feature is one stochastic pass over a canvas. Apply mutates c in place and
// consumes draws from s in a fixed order; it never fails for a Feature that
// passed Validate.
type Feature interface {
	Apply(c *Canvas, s *Stream)
	Validate() error
}

// offset is a relative coordinate used by stamp shapes.
type offset struct {
	dx, dy int
}

var stepAny = []int{-1, 0, 1}

func validateCount(what string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidRecipe, what, n)
	}
	return nil
}
