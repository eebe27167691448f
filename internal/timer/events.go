package timer

import "time"

// Phase is what the timer is currently counting down.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseStudying Phase = "studying"
	PhaseResting  Phase = "resting"
	PhasePaused   Phase = "paused"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventPhaseChanged  EventType = "phase_changed"
	EventTick          EventType = "tick"
	EventMicroBreak    EventType = "micro_break"
	EventFinalReminder EventType = "final_reminder"
	EventStudyComplete EventType = "study_complete"
	EventRestComplete  EventType = "rest_complete"
)

// Event is a fire-and-forget notification for observers. Consumers must
// drain their channel; slow consumers lose events rather than block the
// engine.
type Event struct {
	Type             EventType
	Phase            Phase
	Remaining        int
	MicroBreakIndex  int
	SuggestedSeconds int
	Sound            string
	At               time.Time
}
