package di

import (
	"focusd/internal/providers"
	"focusd/internal/stats"
	"focusd/internal/structures"
	"focusd/internal/timer"
)

func provideSegmentStore(conf *structures.Config) (*stats.SegmentStore, error) {
	return stats.OpenSegmentStore(conf.Storage.DBPath)
}

func provideEngine(conf *structures.Config, logger providers.Logger, sounds providers.SoundProviderInterface, metrics providers.MetricsProviderInterface, recorder stats.RecorderInterface) *timer.Engine {
	return timer.NewEngine(timer.SnapshotConfig(conf.Timer), timer.Options{}, logger, sounds, metrics, recorder)
}
