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
	"bookingdesk/internal/domains/availability/engine"
	availabilityMocks "bookingdesk/internal/domains/availability/mocks"
	"bookingdesk/internal/domains/availability/model"
	"bookingdesk/internal/domains/availability/model/dto"
	"bookingdesk/internal/domains/availability/service"
	calendarMocks "bookingdesk/internal/domains/calendar/mocks"
	calmodel "bookingdesk/internal/domains/calendar/model"
	"bookingdesk/shared/cache"
	gDto "bookingdesk/shared/dto"
	"bookingdesk/shared/timezone"
)

type fixture struct {
	repo     *availabilityMocks.MockEvaluation
	calendar *calendarMocks.MockCalendar
	cache    *cacheMock
	svc      service.Availability
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := &fixture{
		repo:     availabilityMocks.NewMockEvaluation(ctrl),
		calendar: calendarMocks.NewMockCalendar(ctrl),
		cache:    newCacheMock(),
	}

	f.svc = service.New(f.repo, f.calendar, engine.New(config.DefaultPolicy()), cfg, f.cache, otelMocks.NewOtel())

	return f
}

func monday(hour, minute int) time.Time {
	return time.Date(2025, 12, 22, hour, minute, 0, 0, timezone.GetLocation())
}

func checkReq(startTime, endTime string) dto.CheckAvailabilityRequest {
	return dto.CheckAvailabilityRequest{
		CustomerName: "홍길동",
		ProductName:  "1시간 (체험권)",
		Date:         "2025-12-22",
		StartTime:    startTime,
		EndTime:      endTime,
	}
}

func TestService_Check(t *testing.T) {
	t.Run("assigns first free seat", func(t *testing.T) {
		f := newFixture(t)

		f.calendar.EXPECT().
			Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]calmodel.Event{
				{ID: "e1", Title: "10:00 김철수", Start: monday(10, 0), End: monday(11, 0), SeatID: "dobong-1"},
			}, nil)

		var saved model.Evaluation
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, evaluation model.Evaluation) error {
				saved = evaluation
				return nil
			})

		res, err := f.svc.Check(context.Background(), checkReq("10:00", "11:00"))

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusAvailable), res.Status)
		assert.Equal(t, "dobong-2", res.AssignedSeat)
		assert.Equal(t, []string{"dobong-1"}, res.OccupiedSeats)
		assert.Equal(t, 5, res.SeatCapacity)
		assert.Equal(t, "가능 (dobong-2)", res.Message)
		assert.Equal(t, saved.ID, res.EvaluationID)

		assert.Equal(t, string(model.StatusAvailable), saved.Status)
		assert.Equal(t, "홍길동", saved.CustomerName)
		assert.Equal(t, "dobong-1", saved.OccupiedSeats)

		f.cache.waitForClears(t, 2)
	})

	t.Run("out of hours never fetches the calendar", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Check(context.Background(), checkReq("22:00", "23:00"))

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusOutOfHours), res.Status)
		assert.Equal(t, "영업시간 아님", res.Message)
		assert.Empty(t, res.AssignedSeat)

		f.cache.waitForClears(t, 2)
	})

	t.Run("fetch failure is an error result, not empty calendar", func(t *testing.T) {
		f := newFixture(t)

		f.calendar.EXPECT().
			Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("backend down"))

		var saved model.Evaluation
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, evaluation model.Evaluation) error {
				saved = evaluation
				return nil
			})

		res, err := f.svc.Check(context.Background(), checkReq("10:00", "11:00"))

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusError), res.Status)
		assert.Equal(t, "데이터 조회 실패", res.Message)
		assert.Equal(t, string(model.StatusError), saved.Status)

		f.cache.waitForClears(t, 2)
	})

	t.Run("audit insert failure still answers", func(t *testing.T) {
		f := newFixture(t)

		f.calendar.EXPECT().
			Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		res, err := f.svc.Check(context.Background(), checkReq("10:00", "11:00"))

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusAvailable), res.Status)
		assert.Empty(t, res.EvaluationID)
	})

	t.Run("invalid time range is a bad request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Check(context.Background(), checkReq("11:00", "10:00"))

		assert.Error(t, err)
	})
}

func TestService_CheckBatch(t *testing.T) {
	t.Run("one snapshot serves the whole batch", func(t *testing.T) {
		f := newFixture(t)

		f.calendar.EXPECT().
			Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]calmodel.Event{
				{ID: "e1", Title: "10:00 김철수", Start: monday(10, 0), End: monday(11, 0), SeatID: "dobong-1"},
			}, nil).
			Times(1)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.CheckBatch(context.Background(), dto.CheckAvailabilityBatchRequest{
			Requests: []dto.CheckAvailabilityRequest{
				checkReq("10:00", "11:00"),
				checkReq("13:00", "14:00"),
			},
		})

		require.NoError(t, err)
		require.Len(t, res.Results, 2)
		assert.Equal(t, string(model.StatusAvailable), res.Results[0].Status)
		assert.Equal(t, "dobong-2", res.Results[0].AssignedSeat)
		assert.Equal(t, "dobong-1", res.Results[1].AssignedSeat)

		f.cache.waitForClears(t, 4)
	})

	t.Run("all out of hours skips the fetch", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.CheckBatch(context.Background(), dto.CheckAvailabilityBatchRequest{
			Requests: []dto.CheckAvailabilityRequest{
				checkReq("22:00", "23:00"),
				checkReq("06:00", "07:00"),
			},
		})

		require.NoError(t, err)
		require.Len(t, res.Results, 2)
		for _, result := range res.Results {
			assert.Equal(t, string(model.StatusOutOfHours), result.Status)
		}

		f.cache.waitForClears(t, 4)
	})

	t.Run("malformed row rejects the batch", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CheckBatch(context.Background(), dto.CheckAvailabilityBatchRequest{
			Requests: []dto.CheckAvailabilityRequest{
				checkReq("10:00", "11:00"),
				{CustomerName: "x", Date: "not-a-date", StartTime: "10:00", EndTime: "11:00"},
			},
		})

		assert.Error(t, err)
	})
}

func TestService_GetEvaluation(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Evaluation{
				ID:           "eval-1",
				CustomerName: "홍길동",
				StartAt:      monday(10, 0),
				EndAt:        monday(11, 0),
				Status:       string(model.StatusAvailable),
				AssignedSeat: "dobong-1",
			}, nil)

		res, err := f.svc.GetEvaluation(context.Background(), "eval-1")

		require.NoError(t, err)
		assert.Equal(t, "eval-1", res.ID)
		assert.Equal(t, "dobong-1", res.AssignedSeat)

		f.cache.waitForSaves(t, 1)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Evaluation{}, nil)

		_, err := f.svc.GetEvaluation(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestService_GetAllEvaluations(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Evaluation{
			{
				ID:           "eval-1",
				CustomerName: "홍길동",
				StartAt:      monday(10, 0),
				EndAt:        monday(11, 0),
				Status:       string(model.StatusFull),
			},
		}, nil)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldStartAt, SortDir: gDto.SortDirDesc}
	filter := gDto.FilterGroup{Operator: "AND"}

	res, err := f.svc.GetAllEvaluations(context.Background(), params, filter)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Evaluations, 1)
	assert.Equal(t, "eval-1", res.Evaluations[0].ID)

	f.cache.waitForSaves(t, 2)
}

// cacheMock always misses on Get and records Save/Clear calls on channels so
// tests can wait for the invalidation goroutines before the controller
// finishes.
type cacheMock struct {
	clears chan string
	saves  chan string
}

var _ cache.RedisCache = (*cacheMock)(nil)

func newCacheMock() *cacheMock {
	return &cacheMock{
		clears: make(chan string, 16),
		saves:  make(chan string, 16),
	}
}

func (c *cacheMock) Save(_ context.Context, key string, _ any, _ int) error {
	c.saves <- key
	return nil
}

func (c *cacheMock) Get(_ context.Context, _ string, _ any) error {
	return cache.Nil
}

func (c *cacheMock) Delete(_ context.Context, _ string) error {
	return nil
}

func (c *cacheMock) Clear(_ context.Context, prefix string) error {
	c.clears <- prefix
	return nil
}

func (c *cacheMock) waitForClears(t *testing.T, n int) {
	t.Helper()
	waitFor(t, c.clears, n)
}

func (c *cacheMock) waitForSaves(t *testing.T, n int) {
	t.Helper()
	waitFor(t, c.saves, n)
}

func waitFor(t *testing.T, ch chan string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for cache call %d of %d", i+1, n)
		}
	}
}
