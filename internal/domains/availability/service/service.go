package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookingdesk/config"
	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/availability/engine"
	"bookingdesk/internal/domains/availability/model"
	"bookingdesk/internal/domains/availability/model/dto"
	"bookingdesk/internal/domains/availability/repository"
	calmodel "bookingdesk/internal/domains/calendar/model"
	calservice "bookingdesk/internal/domains/calendar/service"
	"bookingdesk/shared"
	"bookingdesk/shared/cache"
	"bookingdesk/shared/constant"
	gDto "bookingdesk/shared/dto"
	gModel "bookingdesk/shared/model"
	"bookingdesk/shared/failure"
	"bookingdesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetEvaluation    = "evaluation:get"
	cacheGetAllEvaluation = "evaluation:gets"
	cacheCountEvaluation  = "evaluation:count"

	systemUser = "system"
)

type Availability interface {
	Check(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
	CheckBatch(ctx context.Context, req dto.CheckAvailabilityBatchRequest) (dto.CheckAvailabilityBatchResponse, error)
	GetAllEvaluations(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEvaluationsResponse, error)
	CountEvaluations(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetEvaluation(ctx context.Context, id string) (dto.EvaluationResponse, error)
}

type serviceImpl struct {
	repo     repository.Evaluation
	calendar calservice.Calendar
	engine   *engine.Engine
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Evaluation, calendar calservice.Calendar, engine *engine.Engine, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:     repo,
		calendar: calendar,
		engine:   engine,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Check evaluates one reservation inquiry against a fresh calendar snapshot.
// Business outcomes (full, duplicate, out of hours) and upstream fetch
// failures are all reported inside the response; only invalid input returns
// an error.
func (s *serviceImpl) Check(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	request, err := req.ToModel()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse availability request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	var events []calmodel.Event

	// An out-of-hours request never needs the event set, so the upstream
	// fetch is skipped entirely.
	if s.engine.IsOpen(request.Start) {
		events, err = s.calendar.Snapshot(ctx, request.Start, request.End)
		if err != nil {
			result := errorResult(s.engine, request)
			res = s.finishEvaluation(ctx, request, result)

			return res, nil
		}
	}

	result := s.engine.Evaluate(request, events)
	res = s.finishEvaluation(ctx, request, result)

	return res, nil
}

// CheckBatch evaluates several inquiries against one shared snapshot, so a
// staff member triaging a day's waiting list produces a single upstream
// fetch instead of one per row.
func (s *serviceImpl) CheckBatch(ctx context.Context, req dto.CheckAvailabilityBatchRequest) (res dto.CheckAvailabilityBatchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckBatch")
	defer scope.End()
	defer scope.TraceIfError(err)

	requests := make([]model.ReservationRequest, 0, len(req.Requests))
	for i, item := range req.Requests {
		request, err := item.ToModel()
		if err != nil {
			log.Error().Err(err).Int("index", i).Msg("failed to parse batch availability request")

			return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format at index %d: %v", i, err)) // nolint:wrapcheck
		}

		requests = append(requests, request)
	}

	var (
		events     []calmodel.Event
		fetchError bool
	)

	if from, to, needed := snapshotWindow(s.engine, requests); needed {
		events, err = s.calendar.Snapshot(ctx, from, to)
		if err != nil {
			fetchError = true
			err = nil
		}
	}

	res.Results = make([]dto.AvailabilityResponse, len(requests))

	for i, request := range requests {
		var result model.Result

		switch {
		case !s.engine.IsOpen(request.Start):
			result = s.engine.Evaluate(request, nil)
		case fetchError:
			result = errorResult(s.engine, request)
		default:
			result = s.engine.Evaluate(request, events)
		}

		res.Results[i] = s.finishEvaluation(ctx, request, result)
	}

	return res, nil
}

// finishEvaluation renders the response and persists the audit row. A failed
// audit insert is logged and the availability answer still returned; the
// desk decision must not hinge on the audit store.
func (s *serviceImpl) finishEvaluation(ctx context.Context, request model.ReservationRequest, result model.Result) dto.AvailabilityResponse {
	var res dto.AvailabilityResponse
	res.FromResult(result)

	evaluation := model.Evaluation{
		ID:            uuid.NewString(),
		CustomerName:  request.CustomerName,
		ProductName:   request.ProductName,
		RequestNote:   request.RequestNote,
		StartAt:       request.Start,
		EndAt:         request.End,
		EventType:     string(result.Type),
		Status:        string(result.Status),
		AssignedSeat:  result.AssignedSeat,
		OccupiedSeats: strings.Join(result.Occupied, ","),
		SeatCapacity:  result.Capacity,
		Message:       res.Message,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  systemUser,
			ModifiedBy: systemUser,
		},
	}

	if err := s.repo.Insert(ctx, evaluation); err != nil {
		log.Error().Err(err).Str("customer", request.CustomerName).Msg("failed to persist evaluation")

		return res
	}

	res.EvaluationID = evaluation.ID

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvaluation)
		shared.InvalidateCaches(c, s.cache, cacheCountEvaluation)
	}()

	return res
}

func (s *serviceImpl) GetAllEvaluations(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEvaluationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllEvaluations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvaluation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for evaluations")

		return res, nil
	}

	total, err := s.CountEvaluations(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count evaluations")

		return res, fmt.Errorf("failed to count evaluations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get evaluations")

		return res, fmt.Errorf("failed to get evaluations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save evaluations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CountEvaluations(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountEvaluations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEvaluation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for evaluation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count evaluations")

		return res, fmt.Errorf("failed to count evaluations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save evaluation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetEvaluation(ctx context.Context, id string) (res dto.EvaluationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEvaluation")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEvaluation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for evaluation")

		return res, nil
	}

	evaluation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get evaluation")

		return res, fmt.Errorf("failed to get evaluation: %w", err)
	}

	if evaluation.ID == constant.Empty {
		return res, failure.NotFound("evaluation not found") // nolint:wrapcheck
	}

	res.FromModel(evaluation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save evaluation to cache")
		}
	}()

	return res, nil
}

// errorResult keeps the classification detail so the audit row still records
// what pool the failed check was for.
func errorResult(e *engine.Engine, request model.ReservationRequest) model.Result {
	eventType, pool := e.Classify(request.ProductName, request.RequestNote)

	return model.Result{
		Status:   model.StatusError,
		Type:     eventType,
		Capacity: len(pool),
		Occupied: []string{},
	}
}

// snapshotWindow computes the smallest window covering every request that
// passes the hours gate. Requests that are out of hours never touch the
// event set, so a batch of only closed-hours rows skips the fetch.
func snapshotWindow(e *engine.Engine, requests []model.ReservationRequest) (time.Time, time.Time, bool) {
	var (
		from, to time.Time
		needed   bool
	)

	for _, request := range requests {
		if !e.IsOpen(request.Start) {
			continue
		}

		if !needed || request.Start.Before(from) {
			from = request.Start
		}
		if !needed || request.End.After(to) {
			to = request.End
		}

		needed = true
	}

	return from, to, needed
}
