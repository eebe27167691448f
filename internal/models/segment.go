package models

import "time"

// Segment is one durable study interval. Rows are append-only: once
// written they are never edited or deleted by the core.
type Segment struct {
	ID           int64 `json:"id,omitempty"`
	StartTime    int64 `json:"start_time"`
	EndTime      int64 `json:"end_time"`
	StudySeconds int64 `json:"study_seconds"`
}

// NewSegment builds a Segment from wall-clock bounds, truncated to whole
// seconds. Returns false for inverted bounds or zero duration; such
// segments are dropped, not persisted.
func NewSegment(start, end time.Time) (Segment, bool) {
	startTS := start.Unix()
	endTS := end.Unix()
	if endTS <= startTS {
		return Segment{}, false
	}
	return Segment{
		StartTime:    startTS,
		EndTime:      endTS,
		StudySeconds: endTS - startTS,
	}, true
}

// Start returns the segment start as a time.Time in loc.
func (s Segment) Start(loc *time.Location) time.Time {
	return time.Unix(s.StartTime, 0).In(loc)
}
