// Package engine holds the allocation rules for the booking desk: the
// operating-hours gate, seat classification, duplicate detection and the
// overlap resolver. It is pure: given an immutable event snapshot and one
// request it computes a deterministic result, with no I/O and no shared
// state. Callers supply a complete snapshot per evaluation.
package engine

import (
	"strings"
	"time"
	"unicode"

	"bookingdesk/config"
	calmodel "bookingdesk/internal/domains/calendar/model"
	"bookingdesk/internal/domains/availability/model"
)

type Engine struct {
	policy *config.Policy
}

// New expects a validated policy; pool/excluded disjointness is enforced at
// load time, never re-checked per request.
func New(policy *config.Policy) *Engine {
	return &Engine{policy: policy}
}

// IsOpen reports whether the desk accepts reservations starting at the given
// local instant.
func (e *Engine) IsOpen(start time.Time) bool {
	var hours config.HourRange

	switch start.Weekday() {
	case time.Sunday:
		if !e.policy.SundayOpen {
			return false
		}
		hours = e.policy.WeekdayHours
	case time.Saturday:
		hours = e.policy.SaturdayHours
	default:
		hours = e.policy.WeekdayHours
	}

	hour := start.Hour()

	return hour >= hours.Open && hour < hours.Close
}

// Classify decides which seat pool a request competes for. Matching is
// case-sensitive substring containment on the configured keyword sets.
// A review-note request stays in the driving pool even when the product
// would otherwise read as a consultation.
func (e *Engine) Classify(productName, requestNote string) (model.EventType, []string) {
	if containsAny(requestNote, e.policy.ReviewNoteKeywords) || containsAny(productName, e.policy.TrialKeywords) {
		return model.EventTypeDriving, e.policy.DrivingSeats
	}

	if containsAny(productName, e.policy.ConsultationKeywords) || containsAny(requestNote, e.policy.ConsultationKeywords) {
		return model.EventTypeConsultation, e.policy.ConsultationSeats
	}

	return model.EventTypeDriving, e.policy.DrivingSeats
}

// HasDuplicate reports whether the requester already holds an overlapping
// event anywhere on the calendar, regardless of seat. Titles embed the name
// between time and tag prefixes with inconsistent spacing, so both sides are
// compared with all whitespace stripped.
func (e *Engine) HasDuplicate(requesterName string, events []calmodel.Event, start, end time.Time) bool {
	name := stripWhitespace(requesterName)
	if name == "" {
		return false
	}

	for _, event := range events {
		if !event.Overlaps(start, end) {
			continue
		}

		if strings.Contains(stripWhitespace(event.Title), name) {
			return true
		}
	}

	return false
}

// OccupiedSeats returns the distinct seats of the pool that hold an event
// overlapping [start, end), in pool order. A double-booked seat counts once.
// Events without a resolved seat never occupy anything.
func (e *Engine) OccupiedSeats(pool []string, events []calmodel.Event, start, end time.Time) []string {
	occupied := make([]string, 0, len(pool))

	for _, seat := range pool {
		for _, event := range events {
			if event.OnSeat(seat) && event.Overlaps(start, end) {
				occupied = append(occupied, seat)
				break
			}
		}
	}

	return occupied
}

// Resolve assigns the first free seat of the pool, or reports the pool full.
// The first-fit assignment and the occupancy figure come from the same
// occupied-seat set so the two views cannot disagree.
func (e *Engine) Resolve(eventType model.EventType, pool []string, events []calmodel.Event, start, end time.Time) model.Result {
	result := model.Result{
		Type:     eventType,
		Capacity: len(pool),
	}

	if len(pool) == 0 {
		result.Status = model.StatusFull
		result.Occupied = []string{}

		return result
	}

	occupied := e.OccupiedSeats(pool, events, start, end)
	result.Occupied = occupied

	if len(occupied) >= len(pool) {
		result.Status = model.StatusFull

		return result
	}

	occupiedSet := make(map[string]bool, len(occupied))
	for _, seat := range occupied {
		occupiedSet[seat] = true
	}

	for _, seat := range pool {
		if !occupiedSet[seat] {
			result.Status = model.StatusAvailable
			result.AssignedSeat = seat

			return result
		}
	}

	// Unreachable while occupied ⊆ pool, but a full verdict is the safe
	// answer if that ever breaks.
	result.Status = model.StatusFull

	return result
}

// Evaluate runs one request through the full decision chain: hours gate,
// duplicate check, classification, then seat resolution. Business outcomes
// are result values, never errors.
func (e *Engine) Evaluate(req model.ReservationRequest, events []calmodel.Event) model.Result {
	eventType, pool := e.Classify(req.ProductName, req.RequestNote)

	if !e.IsOpen(req.Start) {
		return model.Result{
			Status:   model.StatusOutOfHours,
			Type:     eventType,
			Capacity: len(pool),
			Occupied: []string{},
		}
	}

	if e.HasDuplicate(req.CustomerName, events, req.Start, req.End) {
		return model.Result{
			Status:   model.StatusDuplicate,
			Type:     eventType,
			Capacity: len(pool),
			Occupied: []string{},
		}
	}

	return e.Resolve(eventType, pool, events, req.Start, req.End)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(s, keyword) {
			return true
		}
	}

	return false
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}
