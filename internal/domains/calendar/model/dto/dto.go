package dto

import (
	"bookingdesk/internal/domains/calendar/model"
	"bookingdesk/shared/constant"
	"bookingdesk/shared/timezone"
)

type EventResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	SeatID string `json:"seat_id"`
}

type GetEventsResponse struct {
	Events []EventResponse `json:"events"`
}

func (r *GetEventsResponse) FromModels(events []model.Event) {
	r.Events = make([]EventResponse, len(events))
	for i, event := range events {
		r.Events[i] = EventResponse{
			ID:     event.ID,
			Title:  event.Title,
			Start:  timezone.Format(event.Start, constant.DateFormat),
			End:    timezone.Format(event.End, constant.DateFormat),
			SeatID: event.SeatID,
		}
	}
}
