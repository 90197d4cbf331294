package icsfeed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookingdesk/config"
	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/calendar/model"
	"bookingdesk/internal/domains/calendar/source"
	"bookingdesk/shared/constant"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/teambition/rrule-go"
)

const (
	fetchTimeout = 15 * time.Second

	// Runaway RRULEs (no UNTIL/COUNT with a tight interval) are capped per
	// event rather than failing the whole feed.
	maxOccurrencesPerEvent = 500
)

// Feed is a read-only ICS calendar merged into the event snapshot, used for
// blocked hours kept outside the ERP (holidays, maintenance windows).
// Recurring VEVENTs are expanded into concrete occurrences inside the
// requested window.
type Feed struct {
	httpClient *http.Client
	url        string
	sourceID   string
	otel       otel.Otel
}

var _ source.EventSource = (*Feed)(nil)

func New(cfg *config.Config, otel otel.Otel) *Feed {
	return &Feed{
		httpClient: &http.Client{Timeout: fetchTimeout},
		url:        cfg.ICS.URL,
		sourceID:   cfg.ICS.SourceID,
		otel:       otel,
	}
}

func (f *Feed) FetchEvents(ctx context.Context, from, to time.Time) ([]model.RawEvent, error) {
	ctx, scope := f.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".icsfeed.FetchEvents")
	defer scope.End()

	body, err := f.download(ctx)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		scope.TraceError(err)
		return nil, errors.Wrap(err, "parsing ics feed")
	}

	// Window end is exclusive of the day after `to` so same-day events match.
	windowEnd := to.AddDate(0, 0, 1)

	var events []model.RawEvent

	for _, ve := range cal.Events() {
		occurrences, err := f.expand(ve, from, windowEnd)
		if err != nil {
			log.Warn().Err(err).Msg("skipping unparseable ics event")
			continue
		}

		events = append(events, occurrences...)
	}

	scope.SetAttribute("ics.event_count", len(events))

	return events, nil
}

func (f *Feed) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building ics request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting ics feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("ics feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading ics feed")
	}

	return body, nil
}

// expand turns one VEVENT into raw records for every occurrence that starts
// inside [from, windowEnd). Non-recurring events produce at most one record.
func (f *Feed) expand(ve *ical.VEvent, from, windowEnd time.Time) ([]model.RawEvent, error) {
	uid := ""
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		uid = p.Value
	}

	summary := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, errors.Wrap(err, "reading DTSTART")
	}

	end, err := ve.GetEndAt()
	if err != nil {
		end = start
	}

	rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
	if rruleProp == nil {
		if start.Before(from) || !start.Before(windowEnd) {
			return nil, nil
		}

		return []model.RawEvent{f.toRaw(uid, summary, start, end, 0)}, nil
	}

	rule, err := rrule.StrToRRule(rruleProp.Value)
	if err != nil {
		return nil, errors.Wrap(err, "parsing RRULE")
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)

	duration := end.Sub(start)
	occurrences := set.Between(from.In(start.Location()), windowEnd.In(start.Location()), true)

	if len(occurrences) > maxOccurrencesPerEvent {
		log.Warn().Str("uid", uid).Int("count", len(occurrences)).
			Msg("ics recurrence expansion capped")
		occurrences = occurrences[:maxOccurrencesPerEvent]
	}

	raw := make([]model.RawEvent, 0, len(occurrences))
	for i, occStart := range occurrences {
		raw = append(raw, f.toRaw(uid, summary, occStart, occStart.Add(duration), i))
	}

	return raw, nil
}

func (f *Feed) toRaw(uid, summary string, start, end time.Time, occurrence int) model.RawEvent {
	id := ""
	if uid != "" {
		// Prefixing keeps feed ids from colliding with ERP record ids, and the
		// occurrence index keeps expanded instances distinct.
		id = fmt.Sprintf("%s:%s:%d", f.sourceID, uid, occurrence)
	}

	return model.RawEvent{
		ID:    id,
		Title: strings.TrimSpace(summary),
		Start: start.Format(time.RFC3339),
		End:   end.Format(time.RFC3339),
	}
}
