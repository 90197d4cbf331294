package source

//go:generate go run go.uber.org/mock/mockgen -source=./source.go -destination=../mocks/source_mock.go -package=mocks

import (
	"context"
	"time"

	"bookingdesk/internal/domains/calendar/model"
)

// EventSource supplies raw calendar records for a date window. A source must
// return an error when the upstream could not be queried; an empty slice is a
// valid "no events" answer and the two must never be conflated. Sources hand
// back the complete window in one call so that every availability evaluation
// runs against a single immutable snapshot.
type EventSource interface {
	FetchEvents(ctx context.Context, from, to time.Time) ([]model.RawEvent, error)
}
