package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusd/internal/models"
	"focusd/internal/stats"
	"focusd/internal/structures"
	"focusd/internal/testutil"
	"focusd/internal/timer"
)

type serviceFixture struct {
	service SessionServiceInterface
	store   *stats.SegmentStore
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	store, err := stats.OpenSegmentStore(filepath.Join(t.TempDir(), "segments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	conf := &structures.Config{
		Storage: structures.StorageConfig{Location: "UTC"},
	}
	aggregator, err := stats.NewAggregator(conf, store, testutil.NewMockCache(), &testutil.MockMetrics{})
	require.NoError(t, err)

	engine := timer.NewEngine(timer.Config{
		StudySeconds: 10,
		RestSeconds:  5,
	}, timer.Options{}, &testutil.MockLogger{}, &testutil.MockSounds{}, &testutil.MockMetrics{}, &testutil.MockSink{})

	return &serviceFixture{
		service: NewSessionService(engine, aggregator),
		store:   store,
	}
}

func (f *serviceFixture) seed(t *testing.T, start time.Time, d time.Duration) {
	t.Helper()
	seg, ok := models.NewSegment(start, start.Add(d))
	require.True(t, ok)
	require.NoError(t, f.store.Append(seg))
}

func TestSessionService_TimerCommands(t *testing.T) {
	f := newServiceFixture(t)

	assert.Equal(t, timer.PhaseIdle, f.service.Phase())

	require.NoError(t, f.service.StartStudy())
	assert.Equal(t, timer.PhaseStudying, f.service.Phase())
	assert.Equal(t, 10, f.service.Remaining())

	require.NoError(t, f.service.Pause())
	assert.Equal(t, timer.PhasePaused, f.service.Phase())

	require.NoError(t, f.service.Resume())
	assert.Equal(t, timer.PhaseStudying, f.service.Phase())

	require.NoError(t, f.service.Stop())
	assert.Equal(t, timer.PhaseIdle, f.service.Phase())
}

func TestSessionService_EventsDeliverPhaseChanges(t *testing.T) {
	f := newServiceFixture(t)
	ch := f.service.Events(16)

	require.NoError(t, f.service.StartStudy())

	ev := <-ch
	assert.Equal(t, timer.EventPhaseChanged, ev.Type)
	assert.Equal(t, timer.PhaseStudying, ev.Phase)
}

func TestSessionService_DailyTotal(t *testing.T) {
	f := newServiceFixture(t)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f.seed(t, day.Add(9*time.Hour), 90*time.Minute)
	f.seed(t, day.Add(14*time.Hour), 45*time.Minute)
	// Previous day: out of range.
	f.seed(t, day.Add(-2*time.Hour), time.Hour)

	rounds, seconds, err := f.service.DailyTotal(day.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, rounds)
	assert.Equal(t, int64(8100), seconds)
}

func TestSessionService_DailyTotalEmptyDay(t *testing.T) {
	f := newServiceFixture(t)

	rounds, seconds, err := f.service.DailyTotal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, rounds)
	assert.Equal(t, int64(0), seconds)
}

func TestSessionService_MonthlyDailyTotals(t *testing.T) {
	f := newServiceFixture(t)

	f.seed(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), time.Hour)
	f.seed(t, time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC), 30*time.Minute)
	// Next month: must not leak in.
	f.seed(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), time.Hour)

	buckets, err := f.service.MonthlyDailyTotals(2024, time.January)
	require.NoError(t, err)
	require.Len(t, buckets, 31)

	assert.Equal(t, "2024-01-01", buckets[0].PeriodKey)
	assert.Equal(t, int64(0), buckets[0].TotalSeconds)
	assert.Equal(t, int64(3600), buckets[4].TotalSeconds)
	assert.Equal(t, int64(1800), buckets[19].TotalSeconds)
	assert.Equal(t, "2024-01-31", buckets[30].PeriodKey)
}

func TestSessionService_MonthlyDailyTotalsLeapFebruary(t *testing.T) {
	f := newServiceFixture(t)

	buckets, err := f.service.MonthlyDailyTotals(2024, time.February)
	require.NoError(t, err)
	assert.Len(t, buckets, 29)
}

func TestSessionService_YearlyMonthlyTotals(t *testing.T) {
	f := newServiceFixture(t)

	f.seed(t, time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC), 2*time.Hour)
	f.seed(t, time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), time.Hour)
	f.seed(t, time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC), time.Hour)

	buckets, err := f.service.YearlyMonthlyTotals(2024)
	require.NoError(t, err)
	require.Len(t, buckets, 12)

	assert.Equal(t, "2024-01", buckets[0].PeriodKey)
	assert.Equal(t, int64(0), buckets[0].TotalSeconds)
	assert.Equal(t, int64(10800), buckets[2].TotalSeconds)
	assert.Equal(t, 2, buckets[2].SegmentCount)
	assert.Equal(t, int64(3600), buckets[10].TotalSeconds)
	assert.Equal(t, "2024-12", buckets[11].PeriodKey)
}
