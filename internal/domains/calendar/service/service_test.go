package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookingdesk/config"
	otelMocks "bookingdesk/infras/otel/mocks"
	"bookingdesk/internal/domains/calendar/mocks"
	"bookingdesk/internal/domains/calendar/model"
	"bookingdesk/internal/domains/calendar/service"
	"bookingdesk/internal/domains/calendar/source"
	"bookingdesk/shared/failure"
	"bookingdesk/shared/timezone"
)

func newService(sources ...source.EventSource) service.Calendar {
	return service.New(sources, config.DefaultPolicy(), otelMocks.NewOtel())
}

func day(dayOfMonth int) time.Time {
	return time.Date(2025, 12, dayOfMonth, 0, 0, 0, 0, timezone.GetLocation())
}

func TestService_Normalize_DateFormats(t *testing.T) {
	svc := newService()

	raw := []model.RawEvent{
		{ID: "a", Title: "iso with offset", Start: "2025-12-22T10:00:00+09:00", End: "2025-12-22T11:00:00+09:00"},
		{ID: "b", Title: "naive iso", Start: "2025-12-22T13:00:00", End: "2025-12-22T14:00:00"},
		{ID: "c", Title: "space separated", Start: "2025-12-22 15:00:00", End: "2025-12-22 16:00:00"},
		{ID: "d", Title: "bare date marker", Start: "2025-12-22"},
		{ID: "e", Title: "garbage", Start: "not-a-date"},
	}

	events := svc.Normalize(raw, day(22), day(22))

	require.Len(t, events, 4)

	byID := map[string]model.Event{}
	for _, event := range events {
		byID[event.ID] = event
	}

	loc := timezone.GetLocation()
	assert.Equal(t, time.Date(2025, 12, 22, 10, 0, 0, 0, loc), byID["a"].Start.In(loc))
	assert.Equal(t, time.Date(2025, 12, 22, 13, 0, 0, 0, loc), byID["b"].Start)
	assert.Equal(t, time.Date(2025, 12, 22, 15, 0, 0, 0, loc), byID["c"].Start)

	// A bare date is an all-day marker: zero length, never overlapping.
	assert.True(t, byID["d"].ZeroLength())
	assert.False(t, byID["d"].Overlaps(day(22), day(23)))

	_, kept := byID["e"]
	assert.False(t, kept, "unparseable record must be dropped")
}

func TestService_Normalize_Idempotence(t *testing.T) {
	svc := newService()

	raw := []model.RawEvent{
		{ID: "evt-1", Title: "수업 A", Start: "2025-12-22 10:00:00", End: "2025-12-22 11:00:00", ResourceID: "dobong-1"},
		{ID: "evt-2", Title: "수업 B", Start: "2025-12-22 11:00:00", End: "2025-12-22 12:00:00", ResourceID: "dobong-2"},
	}

	once := svc.Normalize(raw, day(22), day(22))
	twice := svc.Normalize(append(append([]model.RawEvent{}, raw...), raw...), day(22), day(22))

	assert.Equal(t, once, twice, "re-fetched pages must not produce duplicate events")
	assert.Len(t, once, 2)
}

func TestService_Normalize_KeepsRecordsWithoutID(t *testing.T) {
	svc := newService()

	raw := []model.RawEvent{
		{Title: "무제", Start: "2025-12-22 10:00:00", End: "2025-12-22 11:00:00"},
		{Title: "무제", Start: "2025-12-22 10:00:00", End: "2025-12-22 11:00:00"},
	}

	events := svc.Normalize(raw, day(22), day(22))

	// Without an upstream id, possible duplicates are preferable to dropping
	// distinct events.
	assert.Len(t, events, 2)
}

func TestService_Normalize_WindowFilter(t *testing.T) {
	svc := newService()

	raw := []model.RawEvent{
		{ID: "before", Title: "too early", Start: "2025-12-21 10:00:00"},
		{ID: "first", Title: "window start", Start: "2025-12-22 10:00:00"},
		{ID: "last", Title: "window end", Start: "2025-12-24 10:00:00"},
		{ID: "after", Title: "too late", Start: "2025-12-25 10:00:00"},
	}

	events := svc.Normalize(raw, day(22), day(24))

	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].ID)
	assert.Equal(t, "last", events[1].ID)
}

func TestService_Normalize_SeatResolution(t *testing.T) {
	svc := newService()

	tests := []struct {
		name     string
		raw      model.RawEvent
		expected string
	}{
		{
			name:     "explicit resource used verbatim",
			raw:      model.RawEvent{ID: "a", Start: "2025-12-22 10:00:00", ResourceID: "dobong-3"},
			expected: "dobong-3",
		},
		{
			name:     "resource is trimmed and lower-cased",
			raw:      model.RawEvent{ID: "b", Start: "2025-12-22 10:00:00", ResourceID: "  Dobong-5 "},
			expected: "dobong-5",
		},
		{
			name:     "device tag fallback",
			raw:      model.RawEvent{ID: "c", Start: "2025-12-22 10:00:00", ClassName: "bg_red device3"},
			expected: "dobong-3",
		},
		{
			name:     "resource wins over device tag",
			raw:      model.RawEvent{ID: "d", Start: "2025-12-22 10:00:00", ResourceID: "dobong-1", ClassName: "device9"},
			expected: "dobong-1",
		},
		{
			name:     "no source yields empty seat",
			raw:      model.RawEvent{ID: "e", Start: "2025-12-22 10:00:00", ClassName: "bg_red"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := svc.Normalize([]model.RawEvent{tt.raw}, day(22), day(22))

			require.Len(t, events, 1)
			assert.Equal(t, tt.expected, events[0].SeatID)
		})
	}
}

func TestService_Snapshot(t *testing.T) {
	t.Run("merges sources and normalizes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := mocks.NewMockEventSource(ctrl)
		ics := mocks.NewMockEventSource(ctrl)

		erp.EXPECT().
			FetchEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RawEvent{
				{ID: "erp-1", Title: "수업", Start: "2025-12-22 10:00:00", End: "2025-12-22 11:00:00", ResourceID: "dobong-1"},
			}, nil)
		ics.EXPECT().
			FetchEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RawEvent{
				{ID: "ics-1", Title: "휴무", Start: "2025-12-22T13:00:00+09:00", End: "2025-12-22T18:00:00+09:00"},
			}, nil)

		svc := newService(erp, ics)

		events, err := svc.Snapshot(context.Background(), day(22), day(22))

		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("empty calendar is a valid snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := mocks.NewMockEventSource(ctrl)
		erp.EXPECT().
			FetchEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		svc := newService(erp)

		events, err := svc.Snapshot(context.Background(), day(22), day(22))

		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("fetch failure is never an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		erp := mocks.NewMockEventSource(ctrl)
		erp.EXPECT().
			FetchEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("session expired"))

		svc := newService(erp)

		events, err := svc.Snapshot(context.Background(), day(22), day(22))

		require.Error(t, err)
		assert.True(t, failure.IsUpstreamFetch(err))
		assert.Nil(t, events)
	})
}
