package erpcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookingdesk/config"
	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/calendar/model"
	"bookingdesk/internal/domains/calendar/source"
	"bookingdesk/shared/constant"
	"bookingdesk/shared/timezone"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultTimeoutSeconds = 15

// Client reads the reservation calendar of the ERP backend. The calendar
// endpoint serves at most one month per request, so longer windows are
// fetched month by month and merged.
type Client struct {
	httpClient *http.Client
	eventURL   string
	idx        string
	cookie     string
	otel       otel.Otel
}

var _ source.EventSource = (*Client)(nil)

func New(cfg *config.Config, otel otel.Otel) *Client {
	timeout := cfg.ERP.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		eventURL:   strings.TrimRight(cfg.ERP.BaseURL, "/") + cfg.ERP.EventPath,
		idx:        cfg.ERP.CalendarIdx,
		cookie:     cfg.ERP.SessionCookie,
		otel:       otel,
	}
}

func (c *Client) FetchEvents(ctx context.Context, from, to time.Time) ([]model.RawEvent, error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".erpcal.FetchEvents")
	defer scope.End()

	var events []model.RawEvent

	for cursor := monthStart(from); !cursor.After(to); cursor = cursor.AddDate(0, 1, 0) {
		monthEnd := cursor.AddDate(0, 1, -1)

		page, err := c.fetchMonth(ctx, cursor, monthEnd)
		if err != nil {
			scope.TraceError(err)
			return nil, err
		}

		events = append(events, page...)
	}

	log.Debug().
		Str("from", timezone.Format(from, constant.DateOnlyFormat)).
		Str("to", timezone.Format(to, constant.DateOnlyFormat)).
		Int("count", len(events)).
		Msg("fetched erp calendar events")

	return events, nil
}

func (c *Client) fetchMonth(ctx context.Context, start, end time.Time) ([]model.RawEvent, error) {
	form := url.Values{}
	form.Set("idx", c.idx)
	form.Set("start", start.Format(constant.DateOnlyFormat))
	form.Set("end", end.Format(constant.DateOnlyFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.eventURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "building erp calendar request")
	}

	req.Header.Set(constant.RequestHeaderContentType, "application/x-www-form-urlencoded")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting erp calendar")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading erp calendar response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("erp calendar returned status %d", resp.StatusCode)
	}

	// A session that expired mid-run answers with the login page instead of
	// an error status.
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return nil, errors.New("erp calendar returned non-JSON payload, session may have expired")
	}

	var events []model.RawEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("decoding erp calendar response for %s", start.Format(constant.DateOnlyFormat)))
	}

	return events, nil
}

func monthStart(t time.Time) time.Time {
	t = timezone.ToAppTime(t)

	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
