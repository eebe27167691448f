package services

import (
	"time"

	"focusd/internal/models"
	"focusd/internal/stats"
	"focusd/internal/timer"
)

// SessionServiceInterface is the surface the UI layer talks to: timer
// commands and event stream on one side, stats views on the other.
type SessionServiceInterface interface {
	StartStudy() error
	Pause() error
	Resume() error
	Stop() error
	Phase() timer.Phase
	Remaining() int
	Events(buffer int) <-chan timer.Event

	DailyTotal(day time.Time) (int, int64, error)
	MonthlyDailyTotals(year int, month time.Month) ([]models.Bucket, error)
	YearlyMonthlyTotals(year int) ([]models.Bucket, error)
}

type SessionService struct {
	engine     *timer.Engine
	aggregator stats.AggregatorInterface
}

func NewSessionService(engine *timer.Engine, aggregator stats.AggregatorInterface) SessionServiceInterface {
	return &SessionService{
		engine:     engine,
		aggregator: aggregator,
	}
}

func (s *SessionService) StartStudy() error { return s.engine.StartStudy() }
func (s *SessionService) Pause() error      { return s.engine.Pause() }
func (s *SessionService) Resume() error     { return s.engine.Resume() }
func (s *SessionService) Stop() error       { return s.engine.Stop() }

func (s *SessionService) Phase() timer.Phase { return s.engine.Phase() }
func (s *SessionService) Remaining() int     { return s.engine.Remaining() }

func (s *SessionService) Events(buffer int) <-chan timer.Event {
	return s.engine.Subscribe(buffer)
}

// DailyTotal returns the number of completed rounds and total study
// seconds for one calendar day. A round counts toward the day it
// started on, so sessions crossing midnight are not split.
func (s *SessionService) DailyTotal(day time.Time) (int, int64, error) {
	from, to := dayBounds(day.In(s.aggregator.Location()))
	buckets, err := s.aggregator.Aggregate(stats.Query{
		Granularity:  models.GranularityDay,
		From:         from,
		To:           to,
		IncludeEmpty: true,
	})
	if err != nil {
		return 0, 0, err
	}
	if len(buckets) == 0 {
		return 0, 0, nil
	}
	return buckets[0].SegmentCount, buckets[0].TotalSeconds, nil
}

// MonthlyDailyTotals returns one bucket per day of the given month,
// zero-filled for days without study time.
func (s *SessionService) MonthlyDailyTotals(year int, month time.Month) ([]models.Bucket, error) {
	loc := s.aggregator.Location()
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return s.aggregator.Aggregate(stats.Query{
		Granularity:  models.GranularityDay,
		From:         from,
		To:           to,
		IncludeEmpty: true,
	})
}

// YearlyMonthlyTotals returns one bucket per month of the given year,
// zero-filled for months without study time.
func (s *SessionService) YearlyMonthlyTotals(year int) ([]models.Bucket, error) {
	loc := s.aggregator.Location()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(1, 0, 0).Add(-time.Second)
	return s.aggregator.Aggregate(stats.Query{
		Granularity:  models.GranularityMonth,
		From:         from,
		To:           to,
		IncludeEmpty: true,
	})
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1).Add(-time.Second)
}
