package timer

import "focusd/internal/structures"

// Config is the immutable per-round snapshot of timer durations, in
// whole seconds. The engine takes a copy at round start; settings
// changes apply from the next round on.
type Config struct {
	StudySeconds             int
	FinalReminderLeadSeconds int
	RestSeconds              int
	MicroBreakMinSeconds     int
	MicroBreakMaxSeconds     int
	MicroBreakSuggestSeconds int
}

// SnapshotConfig converts the loaded timer settings to whole seconds.
func SnapshotConfig(t structures.TimerConfig) Config {
	return Config{
		StudySeconds:             int(t.StudyDuration.Seconds()),
		FinalReminderLeadSeconds: int(t.FinalReminderLead.Seconds()),
		RestSeconds:              int(t.RestDuration.Seconds()),
		MicroBreakMinSeconds:     int(t.MicroBreakMin.Seconds()),
		MicroBreakMaxSeconds:     int(t.MicroBreakMax.Seconds()),
		MicroBreakSuggestSeconds: int(t.MicroBreakDuration.Seconds()),
	}.normalized()
}

// normalized repairs values that would otherwise break round math. The
// config provider already normalizes user input; this guards direct
// construction in code.
func (c Config) normalized() Config {
	if c.StudySeconds < 1 {
		c.StudySeconds = 1
	}
	if c.RestSeconds < 1 {
		c.RestSeconds = 1
	}
	if c.MicroBreakMinSeconds < 0 {
		c.MicroBreakMinSeconds = 0
	}
	if c.MicroBreakMaxSeconds < 0 {
		c.MicroBreakMaxSeconds = 0
	}
	if c.FinalReminderLeadSeconds < 0 || c.FinalReminderLeadSeconds >= c.StudySeconds {
		c.FinalReminderLeadSeconds = 0
	}
	return c
}
