package stats

import (
	"sync"

	"github.com/roylee0704/gron"

	"focusd/internal/providers"
	"focusd/internal/stats/interfaces"
	"focusd/internal/structures"
)

// Flusher retries queued segment writes on a fixed interval. Storage
// being down only delays persistence; it never loses segments.
type Flusher struct {
	config   *structures.Config
	logger   providers.Logger
	recorder RecorderInterface
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func NewFlusher(config *structures.Config, logger providers.Logger, recorder RecorderInterface) interfaces.FlusherInterface {
	return &Flusher{
		config:   config,
		logger:   logger,
		recorder: recorder,
	}
}

func (f *Flusher) Init() {
	f.cron = gron.New()

	f.cron.AddFunc(gron.Every(f.config.Storage.FlushInterval), func() {
		f.opsMu.Lock()
		defer f.opsMu.Unlock()

		count := f.recorder.Pending()
		if count == 0 {
			return
		}
		if err := f.recorder.Flush(); err != nil {
			f.logger.Warnf(providers.TypeStats, "Flush retry failed, %d still pending: %s", f.recorder.Pending(), err)
			return
		}
		f.logger.Infof(providers.TypeStats, "Flushed %d queued segments", count)
	})

	f.cron.Start()
}

func (f *Flusher) Stop() {
	if f.cron != nil {
		f.cron.Stop()
	}
}

// Restore loads the journal from the previous run and tries an eager
// flush. A failed flush is not fatal; the cron retries.
func (f *Flusher) Restore() error {
	if err := f.recorder.Restore(); err != nil {
		return err
	}
	if f.recorder.Pending() == 0 {
		return nil
	}
	if err := f.recorder.Flush(); err != nil {
		f.logger.Warnf(providers.TypeStats, "Startup flush failed, %d pending: %s", f.recorder.Pending(), err)
	}
	return nil
}

// Persist journals whatever is still queued. Called on shutdown.
func (f *Flusher) Persist() error {
	f.opsMu.Lock()
	defer f.opsMu.Unlock()

	if f.recorder.Pending() == 0 {
		return nil
	}
	f.logger.Infof(providers.TypeStats, "Journaling %d unflushed segments", f.recorder.Pending())
	err := f.recorder.PersistJournal()
	if err != nil {
		f.logger.Errorf(providers.TypeStats, "Error while journaling segments: %s", err)
		return err
	}
	return nil
}
