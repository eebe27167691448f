package providers

import (
	"os"

	"focusd/internal/structures"
)

// SoundBeep is the guaranteed fallback identifier: consumers that get it
// play the system beep instead of a sound file.
const SoundBeep = "beep"

type SoundProviderInterface interface {
	Resolve(event string) string
}

// SoundProvider maps timer events to configured sound files. Resolution
// happens once per event firing and never fails: a missing or unreadable
// file degrades to SoundBeep.
type SoundProvider struct {
	sounds map[string]string
}

func NewSoundProvider(conf *structures.Config) SoundProviderInterface {
	return &SoundProvider{
		sounds: map[string]string{
			"micro_break":    conf.Sounds.MicroBreak,
			"final_reminder": conf.Sounds.FinalReminder,
			"study_end":      conf.Sounds.StudyEnd,
			"rest_end":       conf.Sounds.RestEnd,
		},
	}
}

func (sp *SoundProvider) Resolve(event string) string {
	path, ok := sp.sounds[event]
	if !ok || path == "" {
		return SoundBeep
	}
	if _, err := os.Stat(path); err != nil {
		return SoundBeep
	}
	return path
}
