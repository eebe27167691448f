//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"focusd/internal"
	"focusd/internal/providers"
	"focusd/internal/services"
	"focusd/internal/stats"
	"focusd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewSoundProvider,

		stats.NewZstdCompressor,
		stats.NewJournal,
		provideSegmentStore,
		stats.NewRecorder,
		stats.NewFlusher,
		stats.NewAggregator,

		provideEngine,
		services.NewSessionService,
		internal.NewApp,
	)

	return nil, nil
}
