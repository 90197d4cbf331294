package availability

import (
	"net/http"
	"time"

	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/availability/model"
	"bookingdesk/internal/domains/availability/model/dto"
	"bookingdesk/internal/domains/availability/service"
	"bookingdesk/shared/constant"
	gDto "bookingdesk/shared/dto"
	"bookingdesk/shared/failure"
	"bookingdesk/shared/timezone"
	"bookingdesk/shared/validator"
	"bookingdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Post("/check", handler.CheckAvailability)
		routerGroup.Post("/check-batch", handler.CheckAvailabilityBatch)
	})

	router.Route("/evaluations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEvaluations)
		routerGroup.Get("/{id}", handler.GetEvaluationByID)
	})
}

// CheckAvailability evaluates one reservation inquiry and returns the
// allocation decision. Business denials (full, duplicate, out of hours) are
// part of the 200 response, not errors.
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.CheckAvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.Check(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability checked: " + result.Status)

	response.WithJSON(w, http.StatusOK, result)
}

// CheckAvailabilityBatch evaluates several inquiries against one shared
// calendar snapshot.
func (handler *Handler) CheckAvailabilityBatch(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailabilityBatch")
	defer scope.End()

	req := dto.CheckAvailabilityBatchRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.CheckBatch(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability batch")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability batch checked")

	response.WithJSON(w, http.StatusOK, result)
}

// GetEvaluations retrieves the persisted evaluation audit log with optional
// filtering and pagination.
func (handler *Handler) GetEvaluations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvaluations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	eventType := r.URL.Query().Get(model.FieldEventType)
	customerName := r.URL.Query().Get(model.FieldCustomerName)
	date := r.URL.Query().Get(constant.RequestParamDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if date != "" {
		day, err := timezone.Parse(constant.DateOnlyFormat, date)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("date", date).Msg("failed to parse date filter")

			response.WithError(w, failure.BadRequestFromString("date must be formatted as 2006-01-02"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters,
			gDto.Filter{
				ArgName:  "start_at_from",
				Field:    model.FieldStartAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    day,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "start_at_to",
				Field:    model.FieldStartAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    day.AddDate(0, 0, 1).Add(-time.Second),
				Table:    model.TableName,
			},
		)
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if eventType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEventType,
			Operator: gDto.FilterOperatorEq,
			Value:    eventType,
			Table:    model.TableName,
		})
	}

	if customerName != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCustomerName,
			Operator: gDto.FilterOperatorEq,
			Value:    customerName,
			Table:    model.TableName,
		})
	}

	evaluations, err := handler.service.GetAllEvaluations(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get evaluations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Evaluations retrieved successfully")

	response.WithJSON(w, http.StatusOK, evaluations)
}

// GetEvaluationByID retrieves one evaluation audit record.
func (handler *Handler) GetEvaluationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvaluationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	evaluation, err := handler.service.GetEvaluation(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get evaluation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Evaluation retrieved successfully")

	response.WithJSON(w, http.StatusOK, evaluation)
}
