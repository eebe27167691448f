package timer

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusd/internal/testutil"
)

var testBase = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func engineConfig() Config {
	return Config{
		StudySeconds:             10,
		FinalReminderLeadSeconds: 3,
		RestSeconds:              4,
		MicroBreakMinSeconds:     2,
		MicroBreakMaxSeconds:     3,
		MicroBreakSuggestSeconds: 1,
	}
}

func newTestEngine(cfg Config, sink *testutil.MockSink) (*Engine, *testutil.MockMetrics, *testutil.MockLogger) {
	metrics := &testutil.MockMetrics{}
	logger := &testutil.MockLogger{}
	e := NewEngine(cfg, Options{
		Rand: rand.New(rand.NewSource(1)),
		Now:  func() time.Time { return testBase },
	}, logger, &testutil.MockSounds{}, metrics, sink)
	return e, metrics, logger
}

// runTicks advances the engine n seconds, stamping each tick with a
// wall-clock second past the base time.
func runTicks(e *Engine, from, n int) {
	for i := 0; i < n; i++ {
		e.tick(testBase.Add(time.Duration(from+i+1) * time.Second))
	}
}

func drainEvents(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func eventsOfType(events []Event, et EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == et {
			out = append(out, ev)
		}
	}
	return out
}

func TestEngine_FullRound(t *testing.T) {
	sink := &testutil.MockSink{}
	e, metrics, _ := newTestEngine(engineConfig(), sink)
	ch := e.Subscribe(256)

	require.NoError(t, e.StartStudy())
	assert.Equal(t, PhaseStudying, e.Phase())
	assert.Equal(t, 10, e.Remaining())

	runTicks(e, 0, 10)
	assert.Equal(t, PhaseResting, e.Phase())
	assert.Equal(t, 4, e.Remaining())

	// Exactly one segment spanning the full study duration.
	calls := sink.Recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, testBase, calls[0].Start)
	assert.Equal(t, 10*time.Second, calls[0].End.Sub(calls[0].Start))

	runTicks(e, 10, 4)
	assert.Equal(t, PhaseIdle, e.Phase())

	events := drainEvents(ch)
	assert.Len(t, eventsOfType(events, EventStudyComplete), 1)
	assert.Len(t, eventsOfType(events, EventRestComplete), 1)
	assert.Len(t, eventsOfType(events, EventTick), 14)
	assert.Greater(t, metrics.MicroBreaks, 0)
}

func TestEngine_FinalReminderFiresOnce(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)
	ch := e.Subscribe(256)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 10)

	reminders := eventsOfType(drainEvents(ch), EventFinalReminder)
	require.Len(t, reminders, 1)
	assert.Equal(t, 3, reminders[0].Remaining)
	assert.Equal(t, "beep", reminders[0].Sound)
}

func TestEngine_NoFinalReminderWithZeroLead(t *testing.T) {
	cfg := engineConfig()
	cfg.FinalReminderLeadSeconds = 0
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(cfg, sink)
	ch := e.Subscribe(256)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 10)

	assert.Empty(t, eventsOfType(drainEvents(ch), EventFinalReminder))
}

func TestEngine_MicroBreakEvents(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)
	ch := e.Subscribe(256)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 10)

	breaks := eventsOfType(drainEvents(ch), EventMicroBreak)
	require.NotEmpty(t, breaks)
	for i, ev := range breaks {
		assert.Equal(t, i+1, ev.MicroBreakIndex)
		assert.Equal(t, 1, ev.SuggestedSeconds)
		assert.Equal(t, "beep", ev.Sound)
	}
}

func TestEngine_PauseDoesNotInflateSegment(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 4)
	require.NoError(t, e.Pause())
	assert.Equal(t, PhasePaused, e.Phase())

	// Ticks while paused must not advance the countdown.
	runTicks(e, 4, 30)
	assert.Equal(t, 6, e.Remaining())

	require.NoError(t, e.Resume())
	assert.Equal(t, PhaseStudying, e.Phase())
	runTicks(e, 34, 6)

	calls := sink.Recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, 10*time.Second, calls[0].End.Sub(calls[0].Start))
}

func TestEngine_StopRecordsPartialSegment(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 7)
	require.NoError(t, e.Stop())

	assert.Equal(t, PhaseIdle, e.Phase())
	calls := sink.Recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, 7*time.Second, calls[0].End.Sub(calls[0].Start))
}

func TestEngine_StopWhilePausedStudyRecords(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 5)
	require.NoError(t, e.Pause())
	require.NoError(t, e.Stop())

	calls := sink.Recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, 5*time.Second, calls[0].End.Sub(calls[0].Start))
	assert.Equal(t, PhaseIdle, e.Phase())
}

func TestEngine_StopDuringRestRecordsNothingExtra(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 10)
	require.Equal(t, PhaseResting, e.Phase())
	require.NoError(t, e.Stop())

	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Len(t, sink.Recorded(), 1)
}

func TestEngine_ImmediateStopRecordsNothing(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	require.NoError(t, e.Stop())

	assert.Empty(t, sink.Recorded())
}

func TestEngine_StopWhenIdleIsNoop(t *testing.T) {
	sink := &testutil.MockSink{}
	e, metrics, _ := newTestEngine(engineConfig(), sink)
	ch := e.Subscribe(16)

	require.NoError(t, e.Stop())
	require.NoError(t, e.Stop())

	assert.Empty(t, drainEvents(ch))
	assert.Empty(t, metrics.InvalidTransitions)
}

func TestEngine_InvalidTransitions(t *testing.T) {
	sink := &testutil.MockSink{}
	e, metrics, _ := newTestEngine(engineConfig(), sink)

	assert.ErrorIs(t, e.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, e.Resume(), ErrInvalidTransition)

	require.NoError(t, e.StartStudy())
	assert.ErrorIs(t, e.StartStudy(), ErrInvalidTransition)
	assert.ErrorIs(t, e.Resume(), ErrInvalidTransition)

	require.NoError(t, e.Pause())
	assert.ErrorIs(t, e.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, e.StartStudy(), ErrInvalidTransition)

	assert.Equal(t, 2, metrics.InvalidTransitions["start"])
	assert.Equal(t, 2, metrics.InvalidTransitions["pause"])
	assert.Equal(t, 2, metrics.InvalidTransitions["resume"])
}

func TestEngine_SinkFailureDoesNotBreakRound(t *testing.T) {
	sink := &testutil.MockSink{Err: errors.New("disk gone")}
	e, _, logger := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 10)

	assert.Equal(t, PhaseResting, e.Phase())
	assert.Contains(t, logger.Levels(), "error")
}

func TestEngine_UpdateConfigAppliesNextRound(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)

	require.NoError(t, e.StartStudy())
	next := engineConfig()
	next.StudySeconds = 20
	e.UpdateConfig(next)

	// Running round keeps its snapshot.
	assert.Equal(t, 10, e.Remaining())

	require.NoError(t, e.Stop())
	require.NoError(t, e.StartStudy())
	assert.Equal(t, 20, e.Remaining())
}

func TestEngine_SlowSubscriberDoesNotBlock(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)
	ch := e.Subscribe(1)

	require.NoError(t, e.StartStudy())
	runTicks(e, 0, 10)

	// Only the first event fit; the rest were dropped, not blocked on.
	assert.Len(t, drainEvents(ch), 1)
	assert.Equal(t, PhaseResting, e.Phase())
}

func TestEngine_RunCloseLifecycle(t *testing.T) {
	sink := &testutil.MockSink{}
	e, _, _ := newTestEngine(engineConfig(), sink)
	ch := e.Subscribe(16)

	e.Run()
	e.Run()
	e.Close()
	e.Close()

	_, open := <-ch
	assert.False(t, open)
}
