package stats

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"focusd/internal/models"
	"focusd/internal/providers"
	"focusd/internal/structures"
)

// Query selects segments by start time and a grouping granularity.
// IncludeEmpty reports zero buckets for periods without segments; the
// default omits them.
type Query struct {
	Granularity  models.Granularity
	From         time.Time
	To           time.Time
	IncludeEmpty bool
}

type AggregatorInterface interface {
	Aggregate(q Query) ([]models.Bucket, error)
	Location() *time.Location
}

// Aggregator derives per-period study totals from the segment log. Pure
// reader: it never mutates stored records, and identical queries against
// an unchanged store return identical results.
type Aggregator struct {
	store   *SegmentStore
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	loc     *time.Location
}

func NewAggregator(conf *structures.Config, store *SegmentStore, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) (AggregatorInterface, error) {
	loc := time.Local
	if name := conf.Storage.Location; name != "" && name != "Local" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("load stats location: %w", err)
		}
	}
	return &Aggregator{
		store:   store,
		cache:   cache,
		metrics: metrics,
		loc:     loc,
	}, nil
}

// Location is the fixed reference zone all period keys are computed in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

func (a *Aggregator) Aggregate(q Query) ([]models.Bucket, error) {
	if !q.Granularity.Valid() {
		return nil, fmt.Errorf("unknown granularity %q", q.Granularity)
	}

	key := a.cacheKey(q)
	if data, ok := a.cache.Get(key); ok {
		var buckets []models.Bucket
		if err := json.Unmarshal(data, &buckets); err == nil {
			return buckets, nil
		}
	}

	began := time.Now()
	segments, err := a.store.Scan(q.From.Unix(), q.To.Unix())
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*models.Bucket)
	order := make([]string, 0, len(segments))
	for _, seg := range segments {
		periodKey := models.PeriodKey(q.Granularity, seg.Start(a.loc))
		bucket, ok := totals[periodKey]
		if !ok {
			bucket = &models.Bucket{PeriodKey: periodKey}
			totals[periodKey] = bucket
			order = append(order, periodKey)
		}
		bucket.TotalSeconds += seg.StudySeconds
		bucket.SegmentCount++
	}

	var buckets []models.Bucket
	if q.IncludeEmpty {
		from := models.PeriodStart(q.Granularity, q.From.In(a.loc))
		to := q.To.In(a.loc)
		for p := from; !p.After(to); p = models.NextPeriod(q.Granularity, p) {
			periodKey := models.PeriodKey(q.Granularity, p)
			if bucket, ok := totals[periodKey]; ok {
				buckets = append(buckets, *bucket)
			} else {
				buckets = append(buckets, models.Bucket{PeriodKey: periodKey})
			}
		}
	} else {
		// Segments arrive ordered by start time, so first-seen period
		// order is already chronological.
		buckets = make([]models.Bucket, 0, len(order))
		for _, periodKey := range order {
			buckets = append(buckets, *totals[periodKey])
		}
	}
	a.metrics.ObserveAggregateDuration(string(q.Granularity), time.Since(began))

	if data, err := json.Marshal(buckets); err == nil {
		a.cache.Set(key, data)
	}
	return buckets, nil
}

// cacheKey includes the store generation: a successful write bumps it,
// so stale aggregates are never served.
func (a *Aggregator) cacheKey(q Query) string {
	return "agg:" + string(q.Granularity) +
		":" + cast.ToString(q.From.Unix()) +
		":" + cast.ToString(q.To.Unix()) +
		":" + cast.ToString(q.IncludeEmpty) +
		":" + cast.ToString(a.store.Generation())
}
