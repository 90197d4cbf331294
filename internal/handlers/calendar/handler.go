package calendar

import (
	"fmt"
	"net/http"

	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/calendar/model/dto"
	"bookingdesk/internal/domains/calendar/service"
	"bookingdesk/shared/constant"
	"bookingdesk/shared/failure"
	"bookingdesk/shared/timezone"
	"bookingdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Get("/events", handler.GetEvents)
	})
}

// GetEvents returns the normalized event snapshot for a date window. Unlike
// the availability check, an upstream fetch failure here surfaces as a 502.
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	fromParam := r.URL.Query().Get(constant.RequestParamFrom)
	toParam := r.URL.Query().Get(constant.RequestParamTo)

	from, err := timezone.Parse(constant.DateOnlyFormat, fromParam)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString(fmt.Sprintf("invalid from date: %q", fromParam)))

		return
	}

	to, err := timezone.Parse(constant.DateOnlyFormat, toParam)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString(fmt.Sprintf("invalid to date: %q", toParam)))

		return
	}

	if to.Before(from) {
		response.WithError(w, failure.BadRequestFromString("to date must not precede from date"))

		return
	}

	events, err := handler.service.Snapshot(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar snapshot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Calendar events retrieved successfully")

	res := dto.GetEventsResponse{}
	res.FromModels(events)

	response.WithJSON(w, http.StatusOK, res)
}
