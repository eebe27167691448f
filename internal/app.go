package internal

import (
	"os"
	"os/signal"
	"syscall"

	"focusd/internal/providers"
	"focusd/internal/services"
	"focusd/internal/stats"
	"focusd/internal/stats/interfaces"
	"focusd/internal/structures"
	"focusd/internal/timer"
)

type App struct {
	Service services.SessionServiceInterface
}

// NewApp wires the timer to storage and blocks until a shutdown signal.
// On shutdown any in-progress study segment is finalized and the retry
// queue journaled before the process exits.
func NewApp(service services.SessionServiceInterface, engine *timer.Engine, flusher interfaces.FlusherInterface, store *stats.SegmentStore, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	if err := flusher.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	flusher.Init()
	engine.Run()

	events := service.Events(16)
	go func() {
		for ev := range events {
			logger.Debugf(providers.TypeTimer, "Event %s phase=%s remaining=%d", ev.Type, ev.Phase, ev.Remaining)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof(providers.TypeApp, "Shutdown signal received")

	if err := engine.Stop(); err != nil {
		logger.Errorf(providers.TypeApp, "Stop error: %s", err)
	}
	engine.Close()
	flusher.Stop()

	if err := flusher.Persist(); err != nil {
		return nil, err
	}
	if err := store.Close(); err != nil {
		logger.Errorf(providers.TypeApp, "Close store: %s", err)
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return &App{Service: service}, nil
}
