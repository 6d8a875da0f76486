package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/mpsim/utils/randengine"
)

func TestDiscreteDistribution(t *testing.T) {
	e := randengine.New(42)
	counts := make([]int, 3)
	for i := 0; i < 1000; i++ {
		counts[e.DiscreteDistribution([]float64{0, 1, 3})]++
	}
	assert.Equal(t, 0, counts[0])
	assert.Greater(t, counts[2], counts[1])
	assert.Panics(t, func() { e.DiscreteDistribution([]float64{0, 0}) })
}

func TestSameSeedSameSequence(t *testing.T) {
	a, b := randengine.New(5), randengine.New(5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.PTrue(0.5), b.PTrue(0.5))
	}
	assert.False(t, a.PTrue(0))
	assert.True(t, a.PTrue(1))
}
