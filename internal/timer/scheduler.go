package timer

import (
	"math/rand"
	"time"
)

// MicroBreakScheduler decides when micro-break reminders fire during the
// study phase. Targets are offsets against the session clock's elapsed
// seconds, not wall-clock time, so pausing the session pauses the
// scheduler for free.
type MicroBreakScheduler struct {
	minSeconds    int
	maxSeconds    int
	suppressAfter int
	rng           *rand.Rand
	target        int
	fired         int
}

// NewMicroBreakScheduler builds a scheduler for one study round. A nil
// rng gets a time-seeded source; tests inject a fixed seed.
func NewMicroBreakScheduler(cfg Config, rng *rand.Rand) *MicroBreakScheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &MicroBreakScheduler{
		minSeconds:    cfg.MicroBreakMinSeconds,
		maxSeconds:    cfg.MicroBreakMaxSeconds,
		suppressAfter: cfg.StudySeconds - cfg.FinalReminderLeadSeconds,
		rng:           rng,
	}
	s.Reset(0)
	return s
}

// Reset draws the next target offset relative to the given elapsed time.
// A target of 0 means no further reminder this round.
func (s *MicroBreakScheduler) Reset(elapsed int) {
	if s.maxSeconds <= 0 {
		s.target = 0
		return
	}

	min, max := s.minSeconds, s.maxSeconds
	if min > max {
		// Inverted bounds degrade to a fixed interval.
		max = min
	}

	target := elapsed + min + s.rng.Intn(max-min+1)
	if target >= s.suppressAfter {
		// Would land inside the final-reminder window.
		s.target = 0
		return
	}
	s.target = target
}

// Check reports whether a reminder fires at the given elapsed time and,
// if so, its ordinal within the round. Firing schedules the next draw.
func (s *MicroBreakScheduler) Check(elapsed int) (int, bool) {
	if s.target == 0 || elapsed < s.target {
		return 0, false
	}
	s.fired++
	n := s.fired
	s.Reset(elapsed)
	return n, true
}

// Fired returns how many reminders have fired this round.
func (s *MicroBreakScheduler) Fired() int { return s.fired }
