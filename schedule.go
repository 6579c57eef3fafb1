package optim

import (
	"errors"
	"math"
)

// Schedule scales the learning rate over training steps. The effective step
// size of a rule at step t is lr * Eta(). Schedules are stepped once per
// successful Step call and reset together with optimizer state.
type Schedule interface {
	// Eta returns the multiplier for the CURRENT step (before Tick).
	Eta() float64
	// Tick advances the internal step by 1.
	Tick()
	// Reset resets the schedule state.
	Reset()
}

// FixedSchedule applies a constant multiplier (defaults to 1 if <= 0).
type FixedSchedule struct {
	eta float64
}

func NewFixedSchedule(eta float64) *FixedSchedule {
	if eta <= 0 {
		eta = 1.0
	}
	return &FixedSchedule{eta: eta}
}

func (s *FixedSchedule) Eta() float64 { return s.eta }
func (s *FixedSchedule) Tick()        {}
func (s *FixedSchedule) Reset()       {}

// CosineAnnealingWarmRestarts anneals the multiplier from 1 to 0 over a
// period of steps, then restarts with the period grown by tMult
// (Loshchilov & Hutter, Eq. 15; periods in steps).
type CosineAnnealingWarmRestarts struct {
	initialPeriodSteps int
	tMult              float64
	curPeriodSteps     int
	tcur               int
}

func NewCosineAnnealingWarmRestarts(initialPeriodSteps int, tMult float64) (*CosineAnnealingWarmRestarts, error) {
	if initialPeriodSteps <= 0 {
		return nil, errors.New("optim: initialPeriodSteps must be > 0")
	}
	if tMult < 1.0 {
		return nil, errors.New("optim: tMult must be >= 1.0")
	}
	return &CosineAnnealingWarmRestarts{
		initialPeriodSteps: initialPeriodSteps,
		tMult:              tMult,
		curPeriodSteps:     initialPeriodSteps,
		tcur:               0,
	}, nil
}

func (s *CosineAnnealingWarmRestarts) Eta() float64 {
	// eta_t = 0.5 + 0.5 * cos(pi * Tcur / Ti), Tcur in [0, Ti].
	r := float64(s.tcur) / float64(s.curPeriodSteps)
	return 0.5 + 0.5*math.Cos(math.Pi*r)
}

func (s *CosineAnnealingWarmRestarts) Tick() {
	s.tcur++
	if s.tcur >= s.curPeriodSteps {
		// restart
		s.tcur = 0
		s.curPeriodSteps = int(math.Round(float64(s.curPeriodSteps) * s.tMult))
		if s.curPeriodSteps <= 0 {
			s.curPeriodSteps = 1
		}
	}
}

func (s *CosineAnnealingWarmRestarts) Reset() {
	s.curPeriodSteps = s.initialPeriodSteps
	s.tcur = 0
}

// PeriodSteps returns the length in steps of the current annealing period.
func (s *CosineAnnealingWarmRestarts) PeriodSteps() int {
	return s.curPeriodSteps
}
