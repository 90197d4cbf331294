package di

import (
	"bookingdesk/config"
	"bookingdesk/infras/erpcal"
	"bookingdesk/infras/icsfeed"
	"bookingdesk/infras/otel"
	"bookingdesk/internal/domains/calendar/source"
)

// provideEventSources assembles the calendar sources the snapshot merges.
// The ERP backend is always present; the ICS feed joins only when enabled.
func provideEventSources(cfg *config.Config, otl otel.Otel) []source.EventSource {
	sources := []source.EventSource{erpcal.New(cfg, otl)}

	if cfg.ICS.Enable {
		sources = append(sources, icsfeed.New(cfg, otl))
	}

	return sources
}
