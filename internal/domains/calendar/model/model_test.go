package model_test

import (
	"testing"
	"time"

	"bookingdesk/internal/domains/calendar/model"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 12, 22, hour, minute, 0, 0, time.UTC)
}

func TestEvent_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		event    model.Event
		start    time.Time
		end      time.Time
		expected bool
	}{
		{
			name:     "touching boundaries do not overlap",
			event:    model.Event{Start: at(10, 0), End: at(11, 0)},
			start:    at(11, 0),
			end:      at(12, 0),
			expected: false,
		},
		{
			name:     "touching boundaries do not overlap, reversed",
			event:    model.Event{Start: at(11, 0), End: at(12, 0)},
			start:    at(10, 0),
			end:      at(11, 0),
			expected: false,
		},
		{
			name:     "partial overlap",
			event:    model.Event{Start: at(10, 0), End: at(11, 0)},
			start:    at(10, 30),
			end:      at(11, 30),
			expected: true,
		},
		{
			name:     "containment",
			event:    model.Event{Start: at(9, 0), End: at(13, 0)},
			start:    at(10, 0),
			end:      at(11, 0),
			expected: true,
		},
		{
			name:     "identical interval",
			event:    model.Event{Start: at(10, 0), End: at(11, 0)},
			start:    at(10, 0),
			end:      at(11, 0),
			expected: true,
		},
		{
			name:     "disjoint",
			event:    model.Event{Start: at(8, 0), End: at(9, 0)},
			start:    at(10, 0),
			end:      at(11, 0),
			expected: false,
		},
		{
			name:     "zero-length event never overlaps",
			event:    model.Event{Start: at(10, 30), End: at(10, 30)},
			start:    at(10, 0),
			end:      at(11, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Overlaps(tt.start, tt.end))
		})
	}
}

func TestEvent_ZeroLength(t *testing.T) {
	assert.True(t, model.Event{Start: at(10, 0), End: at(10, 0)}.ZeroLength())
	assert.False(t, model.Event{Start: at(10, 0), End: at(10, 1)}.ZeroLength())
}

func TestEvent_OnSeat(t *testing.T) {
	tests := []struct {
		name     string
		eventSID string
		seatID   string
		expected bool
	}{
		{
			name:     "exact match",
			eventSID: "dobong-1",
			seatID:   "dobong-1",
			expected: true,
		},
		{
			name:     "bare number matches prefixed seat",
			eventSID: "1",
			seatID:   "dobong-1",
			expected: true,
		},
		{
			name:     "prefixed matches bare number",
			eventSID: "dobong-3",
			seatID:   "3",
			expected: true,
		},
		{
			name:     "different suffix",
			eventSID: "dobong-1",
			seatID:   "dobong-2",
			expected: false,
		},
		{
			name:     "unresolved seat matches nothing",
			eventSID: "",
			seatID:   "dobong-1",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := model.Event{SeatID: tt.eventSID}
			assert.Equal(t, tt.expected, event.OnSeat(tt.seatID))
		})
	}
}

func TestSeatSuffix(t *testing.T) {
	assert.Equal(t, "1", model.SeatSuffix("dobong-1"))
	assert.Equal(t, "1", model.SeatSuffix("1"))
	assert.Equal(t, "9", model.SeatSuffix("site-a-9"))
	assert.Equal(t, "", model.SeatSuffix(""))
}
