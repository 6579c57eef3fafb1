package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedSchedule(t *testing.T) {
	t.Parallel()

	s := NewFixedSchedule(0.25)
	assert.Equal(t, 0.25, s.Eta())
	s.Tick()
	assert.Equal(t, 0.25, s.Eta())

	// Non-positive multipliers fall back to 1.
	assert.Equal(t, 1.0, NewFixedSchedule(0).Eta())
	assert.Equal(t, 1.0, NewFixedSchedule(-2).Eta())
}

func TestCosineAnnealingWarmRestarts_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCosineAnnealingWarmRestarts(0, 2.0)
	assert.Error(t, err, "period must be positive")

	_, err = NewCosineAnnealingWarmRestarts(10, 0.5)
	assert.Error(t, err, "tMult must be >= 1")
}

func TestCosineAnnealingWarmRestarts_EtaAndPeriods(t *testing.T) {
	t.Parallel()

	s, err := NewCosineAnnealingWarmRestarts(10, 2.0)
	require.NoError(t, err)

	// At the start of the period eta is 1.
	assert.InDelta(t, 1.0, s.Eta(), 0)

	// Half period gives 0.5.
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	assert.InDelta(t, 0.5, s.Eta(), 1e-12)

	// End of the period restarts and doubles the period.
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	assert.Equal(t, 20, s.PeriodSteps())
	assert.InDelta(t, 1.0, s.Eta(), 0)

	// Reset rewinds to the initial period.
	s.Reset()
	assert.Equal(t, 10, s.PeriodSteps())
	assert.InDelta(t, 1.0, s.Eta(), 0)
}
