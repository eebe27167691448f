package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusd/internal/structures"
)

func TestSoundProvider_ResolvesConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chime.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))

	sp := NewSoundProvider(&structures.Config{
		Sounds: structures.SoundConfig{MicroBreak: path},
	})

	assert.Equal(t, path, sp.Resolve("micro_break"))
}

func TestSoundProvider_MissingFileFallsBackToBeep(t *testing.T) {
	sp := NewSoundProvider(&structures.Config{
		Sounds: structures.SoundConfig{StudyEnd: "/no/such/file.wav"},
	})

	assert.Equal(t, SoundBeep, sp.Resolve("study_end"))
}

func TestSoundProvider_EmptyPathFallsBackToBeep(t *testing.T) {
	sp := NewSoundProvider(&structures.Config{})

	assert.Equal(t, SoundBeep, sp.Resolve("micro_break"))
	assert.Equal(t, SoundBeep, sp.Resolve("final_reminder"))
	assert.Equal(t, SoundBeep, sp.Resolve("study_end"))
	assert.Equal(t, SoundBeep, sp.Resolve("rest_end"))
}

func TestSoundProvider_UnknownEventFallsBackToBeep(t *testing.T) {
	sp := NewSoundProvider(&structures.Config{})
	assert.Equal(t, SoundBeep, sp.Resolve("no_such_event"))
}
