package model

import (
	"strings"
	"time"
)

const (
	EntityName = "calendar"
)

// RawEvent is one record as returned by a calendar source, before any
// normalization. Date fields are strings because the sources disagree on
// format; ResourceID and ClassName are both optional and either may carry
// the seat assignment.
type RawEvent struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Start      string `json:"start"`
	End        string `json:"end"`
	ResourceID string `json:"resourceId"`
	ClassName  string `json:"className"`
}

// Event is a canonical, normalized occupancy of one seat over a half-open
// interval [Start, End). SeatID is empty when no resource could be resolved;
// such events are skipped by per-seat checks but still visible to
// calendar-wide duplicate detection.
type Event struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	SeatID string
}

// ZeroLength reports whether the event covers no time at all. Zero-length
// events never overlap anything; upstream uses them as informational markers
// (e.g. operating-hours banners).
func (e Event) ZeroLength() bool {
	return !e.Start.Before(e.End)
}

// Overlaps reports whether the event's interval intersects the half-open
// interval [start, end). Touching boundaries do not overlap.
func (e Event) Overlaps(start, end time.Time) bool {
	if e.ZeroLength() {
		return false
	}

	return e.Start.Before(end) && e.End.After(start)
}

// OnSeat reports whether the event sits on the given seat. Seat keys are
// compared by their trailing numeric token, so "1" and "dobong-1" match.
func (e Event) OnSeat(seatID string) bool {
	if e.SeatID == "" {
		return false
	}

	return SeatSuffix(e.SeatID) == SeatSuffix(seatID)
}

// SeatSuffix returns the token after the last dash of a seat key, or the key
// itself when it has no dash. The ERP is inconsistent about whether resource
// ids carry the site prefix.
func SeatSuffix(seatID string) string {
	if idx := strings.LastIndex(seatID, "-"); idx >= 0 {
		return seatID[idx+1:]
	}

	return seatID
}
