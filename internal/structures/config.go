package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type TimerConfig struct {
	StudyDuration      time.Duration `yaml:"studyDuration" validate:"required|min:1"`
	FinalReminderLead  time.Duration `yaml:"finalReminderLead"`
	RestDuration       time.Duration `yaml:"restDuration" validate:"required|min:1"`
	MicroBreakMin      time.Duration `yaml:"microBreakMin"`
	MicroBreakMax      time.Duration `yaml:"microBreakMax"`
	MicroBreakDuration time.Duration `yaml:"microBreakDuration"`
}

type SoundConfig struct {
	MicroBreak    string `yaml:"microBreak"`
	FinalReminder string `yaml:"finalReminder"`
	StudyEnd      string `yaml:"studyEnd"`
	RestEnd       string `yaml:"restEnd"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

type StorageConfig struct {
	DBPath        string        `yaml:"dbPath" validate:"required"`
	JournalPath   string        `yaml:"journalPath" validate:"required"`
	FlushInterval time.Duration `yaml:"flushInterval" validate:"required|min:1"`
	Location      string        `yaml:"location"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName string
	Debug   bool
	Path    string
	Timer   TimerConfig   `yaml:"timer"`
	Sounds  SoundConfig   `yaml:"sounds"`
	UI      UIConfig      `yaml:"ui"`
	Storage StorageConfig `yaml:"storage"`
	Logger  LoggerConfig  `yaml:"logger"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
}
