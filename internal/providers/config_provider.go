package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"focusd/internal/structures"
)

// defaultConfig is written on first run when no config file exists yet,
// mirroring the stock timing plan (90m study, reminder 10m before the
// end, 20m rest, micro-breaks every 5-8m).
const defaultConfig = `timer:
  studyDuration: 90m
  finalReminderLead: 10m
  restDuration: 20m
  microBreakMin: 5m
  microBreakMax: 8m
  microBreakDuration: 10s
sounds:
  microBreak: ""
  finalReminder: ""
  studyEnd: ""
  restEnd: ""
ui:
  theme: light
storage:
  dbPath: study_stats.db
  journalPath: pending_segments.zst
  flushInterval: 30s
  location: Local
logger:
  level: info
  mode: 420
  dir: .
cache:
  enabled: true
  size: 8
  ttl: 60
metrics:
  enabled: false
`

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	if _, err := os.Stat(flags.ConfigPath); os.IsNotExist(err) {
		if err := os.WriteFile(flags.ConfigPath, []byte(defaultConfig), 0644); err != nil {
			return nil, fmt.Errorf("unable to write default config: %w", err)
		}
	}

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "FOCUSD_LOG_LEVEL")
	viper.BindEnv("timer.studyDuration", "FOCUSD_STUDY_DURATION")
	viper.BindEnv("timer.restDuration", "FOCUSD_REST_DURATION")
	viper.BindEnv("storage.flushInterval", "FOCUSD_FLUSH_INTERVAL")
	viper.BindEnv("cache.enabled", "FOCUSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "FOCUSD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	NormalizeConfig(&conf)

	conf.AppName = "focusd"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// NormalizeConfig repairs out-of-range timer values instead of failing:
// inverted micro-break bounds are reordered, the final-reminder lead is
// clamped into [0, studyDuration), and an unknown theme falls back to
// light. The timer never sees a configuration it could crash on.
func NormalizeConfig(conf *structures.Config) {
	t := &conf.Timer
	if t.MicroBreakMin < 0 {
		t.MicroBreakMin = 0
	}
	if t.MicroBreakMax < 0 {
		t.MicroBreakMax = 0
	}
	if t.MicroBreakMin > t.MicroBreakMax {
		t.MicroBreakMin, t.MicroBreakMax = t.MicroBreakMax, t.MicroBreakMin
	}
	if t.FinalReminderLead < 0 {
		t.FinalReminderLead = 0
	}
	if t.FinalReminderLead >= t.StudyDuration {
		t.FinalReminderLead = 0
	}
	if conf.UI.Theme != "light" && conf.UI.Theme != "dark" {
		conf.UI.Theme = "light"
	}
}
