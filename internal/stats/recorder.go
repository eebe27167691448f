package stats

import (
	"fmt"
	"sync"
	"time"

	"focusd/internal/models"
	"focusd/internal/providers"
)

type RecorderInterface interface {
	Record(start, end time.Time) error
	Flush() error
	Restore() error
	PersistJournal() error
	Pending() int
}

// Recorder appends finished study segments to durable storage. A failed
// write queues the segment instead of dropping it: the flusher retries
// on its interval, and the queue is journaled to disk so it survives
// restarts. The timer never stops over a storage hiccup.
type Recorder struct {
	mu      sync.Mutex
	store   *SegmentStore
	journal *Journal
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	pending []models.Segment
}

func NewRecorder(store *SegmentStore, journal *Journal, logger providers.Logger, metrics providers.MetricsProviderInterface) RecorderInterface {
	return &Recorder{
		store:   store,
		journal: journal,
		logger:  logger,
		metrics: metrics,
	}
}

// Record validates and persists one segment. Inverted or zero-duration
// segments are dropped silently; that is not an error the user sees.
// On storage failure the segment is queued and a recoverable error
// returned.
func (r *Recorder) Record(start, end time.Time) error {
	seg, ok := models.NewSegment(start, end)
	if !ok {
		r.metrics.IncSegmentsDropped()
		r.logger.Debugf(providers.TypeStats, "Dropped segment with no positive duration")
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Earlier failures first: a fresh segment must not jump the queue.
	if len(r.pending) > 0 {
		r.queueLocked(seg)
		return fmt.Errorf("segment queued behind %d pending: %w", len(r.pending)-1, ErrStorageUnavailable)
	}

	began := time.Now()
	if err := r.store.Append(seg); err != nil {
		r.queueLocked(seg)
		return fmt.Errorf("segment queued for retry: %w", err)
	}
	r.metrics.ObservePersistenceDuration(time.Since(began))
	r.metrics.IncSegmentsRecorded()
	return nil
}

// Flush drains the pending queue in order. Stops at the first failure,
// leaving the rest queued.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked()
}

func (r *Recorder) flushLocked() error {
	for len(r.pending) > 0 {
		if err := r.store.Append(r.pending[0]); err != nil {
			r.saveJournalLocked()
			return err
		}
		r.metrics.IncSegmentsRecorded()
		r.pending = r.pending[1:]
	}
	r.metrics.SetPendingSegments(0)
	if err := r.journal.Save(nil); err != nil {
		r.logger.Warnf(providers.TypeStats, "Truncate journal: %s", err)
	}
	return nil
}

// Restore loads journaled segments from a previous run into the queue.
func (r *Recorder) Restore() error {
	pending, err := r.journal.Load()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(pending, r.pending...)
	r.metrics.SetPendingSegments(len(r.pending))
	r.logger.Infof(providers.TypeStats, "Restored %d journaled segments", len(pending))
	return nil
}

// PersistJournal writes the current queue to disk. Called on shutdown.
func (r *Recorder) PersistJournal() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.journal.Save(r.pending)
}

func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Recorder) queueLocked(seg models.Segment) {
	r.pending = append(r.pending, seg)
	r.metrics.IncSegmentsQueued()
	r.metrics.SetPendingSegments(len(r.pending))
	r.saveJournalLocked()
}

func (r *Recorder) saveJournalLocked() {
	if err := r.journal.Save(r.pending); err != nil {
		r.logger.Warnf(providers.TypeStats, "Journal write failed: %s", err)
	}
}
