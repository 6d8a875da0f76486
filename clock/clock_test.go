package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/mpsim/clock"
	"github.com/tsinghua-fib-lab/mpsim/utils/config"
)

func TestClock(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 10, Total: 2, Interval: 0.5})
	assert.Equal(t, int32(10), c.InternalStep)
	assert.InDelta(t, 5, c.T, 1e-9)
	assert.False(t, c.Done())

	c.Tick()
	c.Tick()
	assert.True(t, c.Done())
	assert.InDelta(t, 6, c.T, 1e-9)
	assert.Equal(t, "00:00:06.00", c.String())

	c.Init()
	assert.Equal(t, int32(10), c.InternalStep)
}

func TestGetHourMinuteSecond(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 3723, Total: 1, Interval: 1})
	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 2, m)
	assert.InDelta(t, 3, s, 1e-9)
}
