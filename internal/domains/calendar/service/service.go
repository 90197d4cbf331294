package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bookingdesk/config"
	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/calendar/model"
	"bookingdesk/internal/domains/calendar/source"
	"bookingdesk/shared/constant"
	"bookingdesk/shared/failure"
	"bookingdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

// deviceTagPattern extracts the seat number the ERP embeds in event CSS
// classes, e.g. "bg_red device3".
var deviceTagPattern = regexp.MustCompile(`device(\d+)`)

// Calendar produces normalized event snapshots for a date window.
type Calendar interface {
	// Snapshot fetches all sources for [from, to] and normalizes the result.
	// It fails only when a source fetch fails; an empty calendar is a valid
	// snapshot.
	Snapshot(ctx context.Context, from, to time.Time) ([]model.Event, error)

	// Normalize converts raw records into canonical events: date parsing with
	// format fallbacks, seat resolution, id-based dedup and window filtering.
	// Malformed records are dropped and counted, never fatal.
	Normalize(raw []model.RawEvent, from, to time.Time) []model.Event
}

type serviceImpl struct {
	sources []source.EventSource
	policy  *config.Policy
	otel    otel.Otel
}

func New(sources []source.EventSource, policy *config.Policy, otel otel.Otel) Calendar {
	return &serviceImpl{
		sources: sources,
		policy:  policy,
		otel:    otel,
	}
}

func (s *serviceImpl) Snapshot(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Snapshot")
	defer scope.End()

	var raw []model.RawEvent

	for _, src := range s.sources {
		fetched, err := src.FetchEvents(ctx, from, to)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).
				Time("from", from).
				Time("to", to).
				Msg("calendar source fetch failed")

			return nil, failure.UpstreamFetch(err) //nolint:wrapcheck
		}

		raw = append(raw, fetched...)
	}

	events := s.Normalize(raw, from, to)

	scope.SetAttribute("calendar.raw_count", len(raw))
	scope.SetAttribute("calendar.event_count", len(events))

	return events, nil
}

func (s *serviceImpl) Normalize(raw []model.RawEvent, from, to time.Time) []model.Event {
	events := make([]model.Event, 0, len(raw))
	seenIDs := make(map[string]bool, len(raw))
	dropped := 0

	fromDate := dateOnly(from)
	toDate := dateOnly(to)

	for _, record := range raw {
		// The same event comes back on every page of a month-by-month fetch;
		// records without an upstream id are kept as-is, accepting possible
		// duplicates over the risk of dropping distinct events.
		if record.ID != "" {
			if seenIDs[record.ID] {
				continue
			}
			seenIDs[record.ID] = true
		}

		start, err := parseInstant(record.Start)
		if err != nil {
			dropped++
			log.Warn().Err(err).Str("title", record.Title).Str("start", record.Start).
				Msg("dropping event with unparseable start")

			continue
		}

		end := start
		if record.End != "" {
			end, err = parseInstant(record.End)
			if err != nil {
				dropped++
				log.Warn().Err(err).Str("title", record.Title).Str("end", record.End).
					Msg("dropping event with unparseable end")

				continue
			}
		}

		startDate := dateOnly(start)
		if startDate.Before(fromDate) || startDate.After(toDate) {
			continue
		}

		events = append(events, model.Event{
			ID:     record.ID,
			Title:  record.Title,
			Start:  start,
			End:    end,
			SeatID: s.resolveSeat(record),
		})
	}

	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Int("kept", len(events)).
			Msg("some calendar records could not be normalized")
	}

	return events
}

// resolveSeat prefers the explicit resource field; failing that it scans the
// CSS class tags for a deviceN marker. Events that resolve neither way keep
// an empty seat and are excluded from per-seat checks.
func (s *serviceImpl) resolveSeat(record model.RawEvent) string {
	if resource := strings.ToLower(strings.TrimSpace(record.ResourceID)); resource != "" {
		return resource
	}

	if match := deviceTagPattern.FindStringSubmatch(record.ClassName); match != nil {
		return fmt.Sprintf("%s-%s", s.policy.SeatPrefix, match[1])
	}

	return ""
}

// parseInstant tries the formats the sources are known to emit, most specific
// first. A bare date parses as midnight, i.e. a zero-length marker.
func parseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(timezone.GetLocation()), nil
	}

	if t, err := timezone.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, nil
	}

	if t, err := timezone.Parse(constant.EventDateTimeFormat, value); err == nil {
		return t, nil
	}

	return timezone.Parse(constant.DateOnlyFormat, value)
}

func dateOnly(t time.Time) time.Time {
	t = timezone.ToAppTime(t)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
