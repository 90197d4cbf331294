package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingdesk/internal/domains/availability/model"
	"bookingdesk/internal/domains/availability/model/dto"
	"bookingdesk/shared/timezone"
)

func TestCheckAvailabilityRequest_ToModel(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := dto.CheckAvailabilityRequest{
			CustomerName: "  홍길동  ",
			ProductName:  "1시간 (체험권)",
			Date:         "2025-12-22",
			StartTime:    "10:00",
			EndTime:      "11:30",
		}

		request, err := req.ToModel()

		require.NoError(t, err)
		assert.Equal(t, "홍길동", request.CustomerName)
		assert.Equal(t, time.Date(2025, 12, 22, 10, 0, 0, 0, timezone.GetLocation()), request.Start)
		assert.Equal(t, time.Date(2025, 12, 22, 11, 30, 0, 0, timezone.GetLocation()), request.End)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		req := dto.CheckAvailabilityRequest{CustomerName: "홍길동", Date: "22-12-2025", StartTime: "10:00", EndTime: "11:00"}

		_, err := req.ToModel()

		assert.Error(t, err)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		req := dto.CheckAvailabilityRequest{CustomerName: "홍길동", Date: "2025-12-22", StartTime: "10am", EndTime: "11:00"}

		_, err := req.ToModel()

		assert.Error(t, err)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		req := dto.CheckAvailabilityRequest{CustomerName: "홍길동", Date: "2025-12-22", StartTime: "11:00", EndTime: "10:00"}

		_, err := req.ToModel()

		assert.Error(t, err)
	})

	t.Run("rejects zero-length range", func(t *testing.T) {
		req := dto.CheckAvailabilityRequest{CustomerName: "홍길동", Date: "2025-12-22", StartTime: "10:00", EndTime: "10:00"}

		_, err := req.ToModel()

		assert.Error(t, err)
	})
}

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		name     string
		result   model.Result
		expected string
	}{
		{
			name:     "available names the seat",
			result:   model.Result{Status: model.StatusAvailable, Type: model.EventTypeDriving, AssignedSeat: "dobong-3"},
			expected: "가능 (dobong-3)",
		},
		{
			name: "driving full shows the count",
			result: model.Result{
				Status:   model.StatusFull,
				Type:     model.EventTypeDriving,
				Occupied: []string{"dobong-1", "dobong-2", "dobong-3", "dobong-5", "dobong-6"},
				Capacity: 5,
			},
			expected: "예약 마감 (5/5)",
		},
		{
			name:     "consultation full",
			result:   model.Result{Status: model.StatusFull, Type: model.EventTypeConsultation, Occupied: []string{"dobong-9"}, Capacity: 1},
			expected: "상담 마감",
		},
		{
			name:     "empty pool",
			result:   model.Result{Status: model.StatusFull, Type: model.EventTypeDriving, Capacity: 0},
			expected: "좌석 없음",
		},
		{
			name:     "duplicate",
			result:   model.Result{Status: model.StatusDuplicate, Type: model.EventTypeDriving},
			expected: "이미 예약됨 (중복)",
		},
		{
			name:     "out of hours",
			result:   model.Result{Status: model.StatusOutOfHours, Type: model.EventTypeDriving},
			expected: "영업시간 아님",
		},
		{
			name:     "upstream failure",
			result:   model.Result{Status: model.StatusError, Type: model.EventTypeDriving},
			expected: "데이터 조회 실패",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dto.RenderMessage(tt.result))
		})
	}
}

func TestAvailabilityResponse_FromResult(t *testing.T) {
	t.Run("nil occupied becomes empty slice", func(t *testing.T) {
		var res dto.AvailabilityResponse
		res.FromResult(model.Result{Status: model.StatusOutOfHours, Type: model.EventTypeDriving, Capacity: 5})

		assert.NotNil(t, res.OccupiedSeats)
		assert.Empty(t, res.OccupiedSeats)
		assert.Equal(t, "영업시간 아님", res.Message)
	})

	t.Run("carries the result through", func(t *testing.T) {
		var res dto.AvailabilityResponse
		res.FromResult(model.Result{
			Status:       model.StatusAvailable,
			Type:         model.EventTypeDriving,
			AssignedSeat: "dobong-2",
			Occupied:     []string{"dobong-1"},
			Capacity:     5,
		})

		assert.Equal(t, "available", res.Status)
		assert.Equal(t, "driving", res.EventType)
		assert.Equal(t, "dobong-2", res.AssignedSeat)
		assert.Equal(t, []string{"dobong-1"}, res.OccupiedSeats)
		assert.Equal(t, 5, res.SeatCapacity)
	})
}
