package motionprimitives

import (
	"fmt"

	"github.com/tsinghua-fib-lab/mpsim/behavior"
)

func indexError(idx behavior.MotionIdx, size int) error {
	return fmt.Errorf("motion index %d out of range [0, %d): %w", idx, size, behavior.ErrPreconditionViolation)
}

func noActiveError() error {
	return fmt.Errorf("no active motion: %w", behavior.ErrPreconditionViolation)
}
