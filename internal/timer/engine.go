package timer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"focusd/internal/providers"
)

// SegmentSink receives finalized study segments. Persistence failures
// are the sink's problem: the engine logs them and keeps counting.
type SegmentSink interface {
	Record(start, end time.Time) error
}

// Options contains runtime knobs for the Engine.
type Options struct {
	TickInterval time.Duration
	Rand         *rand.Rand
	Now          func() time.Time
}

// Engine is the session state machine. One instance lives for the whole
// application; a single goroutine ticks it once per second and all
// transitions happen under one mutex, so there is exactly one active
// phase at any time.
type Engine struct {
	mu           sync.Mutex
	conf         Config
	round        Config
	options      Options
	logger       providers.Logger
	sounds       providers.SoundProviderInterface
	metrics      providers.MetricsProviderInterface
	sink         SegmentSink
	phase        Phase
	priorPhase   Phase
	clock        Clock
	scheduler    *MicroBreakScheduler
	reminderDone bool
	studyStart   time.Time
	events       []chan Event
	stopCh       chan struct{}
	running      bool
}

func NewEngine(conf Config, options Options, logger providers.Logger, sounds providers.SoundProviderInterface, metrics providers.MetricsProviderInterface, sink SegmentSink) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Engine{
		conf:    conf.normalized(),
		options: options,
		logger:  logger,
		sounds:  sounds,
		metrics: metrics,
		sink:    sink,
		phase:   PhaseIdle,
	}
}

// Subscribe registers a new observer channel. Events are delivered with
// a non-blocking send; the channel is closed on engine shutdown.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Run launches the ticking loop. Idempotent.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.mu.Unlock()

	go e.loop()
}

// Close terminates the ticking loop and closes observer channels.
func (e *Engine) Close() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopCh)
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (e *Engine) loop() {
	ticker := time.NewTicker(e.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.tick(e.options.Now())
		}
	}
}

// StartStudy begins a new study round from Idle. The current settings
// are snapshotted for the round.
func (e *Engine) StartStudy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseIdle {
		return e.rejectLocked("start")
	}

	e.round = e.conf.normalized()
	e.clock.Start(e.round.StudySeconds)
	e.scheduler = NewMicroBreakScheduler(e.round, e.options.Rand)
	e.reminderDone = false
	e.studyStart = e.options.Now()
	e.phase = PhaseStudying

	e.emitLocked(Event{
		Type:      EventPhaseChanged,
		Phase:     PhaseStudying,
		Remaining: e.clock.Remaining(),
		At:        e.studyStart,
	})
	return nil
}

// Pause suspends the active countdown, retaining the suspended phase.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseStudying && e.phase != PhaseResting {
		return e.rejectLocked("pause")
	}
	if err := e.clock.Pause(); err != nil {
		return e.rejectLocked("pause")
	}

	e.priorPhase = e.phase
	e.phase = PhasePaused
	e.emitLocked(Event{
		Type:      EventPhaseChanged,
		Phase:     PhasePaused,
		Remaining: e.clock.Remaining(),
		At:        e.options.Now(),
	})
	return nil
}

// Resume continues the phase suspended by Pause. Remaining time picks up
// exactly where it froze.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePaused {
		return e.rejectLocked("resume")
	}
	if err := e.clock.Resume(); err != nil {
		return e.rejectLocked("resume")
	}

	e.phase = e.priorPhase
	e.emitLocked(Event{
		Type:      EventPhaseChanged,
		Phase:     e.phase,
		Remaining: e.clock.Remaining(),
		At:        e.options.Now(),
	})
	return nil
}

// Stop ends the current round, finalizing any in-progress study segment
// first. Stopping while Idle is a no-op.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseIdle {
		return nil
	}

	if e.phase == PhaseStudying || (e.phase == PhasePaused && e.priorPhase == PhaseStudying) {
		e.finalizeStudyLocked(ReasonInterrupted)
	}

	e.clock.Stop()
	e.phase = PhaseIdle
	e.emitLocked(Event{
		Type:  EventPhaseChanged,
		Phase: PhaseIdle,
		At:    e.options.Now(),
	})
	return nil
}

// UpdateConfig replaces the timer settings. The active round keeps its
// snapshot; the new values apply from the next StartStudy.
func (e *Engine) UpdateConfig(conf Config) {
	e.mu.Lock()
	e.conf = conf.normalized()
	e.mu.Unlock()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Remaining returns the seconds left in the current countdown.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Remaining()
}

func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case PhaseStudying:
		e.tickStudyLocked(now)
	case PhaseResting:
		e.tickRestLocked(now)
	}
}

func (e *Engine) tickStudyLocked(now time.Time) {
	remaining := e.clock.Tick()
	elapsed := e.clock.Elapsed()

	e.emitLocked(Event{
		Type:      EventTick,
		Phase:     PhaseStudying,
		Remaining: remaining,
		At:        now,
	})

	if n, ok := e.scheduler.Check(elapsed); ok {
		e.metrics.IncMicroBreaks()
		e.emitLocked(Event{
			Type:             EventMicroBreak,
			Phase:            PhaseStudying,
			Remaining:        remaining,
			MicroBreakIndex:  n,
			SuggestedSeconds: e.round.MicroBreakSuggestSeconds,
			Sound:            e.sounds.Resolve("micro_break"),
			At:               now,
		})
	}

	lead := e.round.FinalReminderLeadSeconds
	if !e.reminderDone && lead > 0 && remaining <= lead {
		e.reminderDone = true
		e.emitLocked(Event{
			Type:      EventFinalReminder,
			Phase:     PhaseStudying,
			Remaining: remaining,
			Sound:     e.sounds.Resolve("final_reminder"),
			At:        now,
		})
	}

	if remaining == 0 {
		e.emitLocked(Event{
			Type:  EventStudyComplete,
			Phase: PhaseStudying,
			Sound: e.sounds.Resolve("study_end"),
			At:    now,
		})
		e.finalizeStudyLocked(ReasonCompleted)

		e.phase = PhaseResting
		e.clock.Start(e.round.RestSeconds)
		e.emitLocked(Event{
			Type:      EventPhaseChanged,
			Phase:     PhaseResting,
			Remaining: e.clock.Remaining(),
			At:        now,
		})
	}
}

func (e *Engine) tickRestLocked(now time.Time) {
	remaining := e.clock.Tick()

	e.emitLocked(Event{
		Type:      EventTick,
		Phase:     PhaseResting,
		Remaining: remaining,
		At:        now,
	})

	if remaining == 0 {
		e.clock.Stop()
		e.phase = PhaseIdle
		e.emitLocked(Event{
			Type:  EventRestComplete,
			Phase: PhaseResting,
			Sound: e.sounds.Resolve("rest_end"),
			At:    now,
		})
		e.emitLocked(Event{
			Type:  EventPhaseChanged,
			Phase: PhaseIdle,
			At:    now,
		})
	}
}

// finalizeStudyLocked hands the finished segment to the sink. The end
// timestamp is start plus clock-elapsed seconds, so paused time never
// counts as study time.
func (e *Engine) finalizeStudyLocked(reason StopReason) {
	elapsed := e.clock.Elapsed()
	if elapsed <= 0 {
		return
	}
	end := e.studyStart.Add(time.Duration(elapsed) * time.Second)

	e.logger.Infof(providers.TypeTimer, "Study segment %s: %ds", reason, elapsed)
	if err := e.sink.Record(e.studyStart, end); err != nil {
		e.logger.Errorf(providers.TypeTimer, "Persist segment: %s", err)
	}
}

func (e *Engine) rejectLocked(command string) error {
	e.metrics.IncInvalidTransitions(command)
	e.logger.Warnf(providers.TypeTimer, "Command %q rejected in phase %s", command, e.phase)
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, command, e.phase)
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}
