package models

import "time"

// Granularity selects the calendar period segments are grouped by.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Valid reports whether g is one of the known granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// Bucket is a derived per-period summary. It is recomputed from segments
// on demand and never stored.
type Bucket struct {
	PeriodKey    string `json:"period"`
	TotalSeconds int64  `json:"total_seconds"`
	SegmentCount int    `json:"segment_count"`
}

// PeriodKey formats t as the bucket key for the given granularity:
// "2006-01-02" for days, "2006-01" for months, "2006" for years.
func PeriodKey(g Granularity, t time.Time) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// PeriodStart truncates t to the start of its period in t's location.
func PeriodStart(g Granularity, t time.Time) time.Time {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// NextPeriod advances t by exactly one period.
func NextPeriod(g Granularity, t time.Time) time.Time {
	switch g {
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	case GranularityYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}
