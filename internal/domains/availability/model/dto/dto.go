package dto

import (
	"fmt"
	"strings"

	"bookingdesk/internal/domains/availability/model"
	"bookingdesk/shared"
	"bookingdesk/shared/constant"
	gDto "bookingdesk/shared/dto"
	"bookingdesk/shared/timezone"

	"github.com/pkg/errors"
)

type CheckAvailabilityRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=100"`
	ProductName  string `json:"product_name"  validate:"omitempty,max=200"`
	RequestNote  string `json:"request_note"  validate:"omitempty,max=500"`
	Date         string `json:"date"          validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time"    validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time"      validate:"required,datetime=15:04"`
	Phone        string `json:"phone"         validate:"omitempty,max=20"`
}

// ToModel combines the date and time-of-day fields into concrete local
// instants. The event type is decided later by the classifier.
func (c *CheckAvailabilityRequest) ToModel() (model.ReservationRequest, error) {
	start, err := timezone.Parse(constant.DateOnlyFormat+" "+constant.TimeOnlyFormat, c.Date+" "+c.StartTime)
	if err != nil {
		return model.ReservationRequest{}, errors.Wrap(err, "parsing start time")
	}

	end, err := timezone.Parse(constant.DateOnlyFormat+" "+constant.TimeOnlyFormat, c.Date+" "+c.EndTime)
	if err != nil {
		return model.ReservationRequest{}, errors.Wrap(err, "parsing end time")
	}

	if !start.Before(end) {
		return model.ReservationRequest{}, errors.New("start_time must be before end_time")
	}

	return model.ReservationRequest{
		CustomerName: strings.TrimSpace(c.CustomerName),
		ProductName:  c.ProductName,
		RequestNote:  c.RequestNote,
		Start:        start,
		End:          end,
	}, nil
}

type CheckAvailabilityBatchRequest struct {
	Requests []CheckAvailabilityRequest `json:"requests" validate:"required,min=1,max=50,dive"`
}

type AvailabilityResponse struct {
	Status        string   `json:"status"`
	EventType     string   `json:"event_type"`
	AssignedSeat  string   `json:"assigned_seat,omitempty"`
	OccupiedSeats []string `json:"occupied_seats"`
	SeatCapacity  int      `json:"seat_capacity"`
	Message       string   `json:"message"`
	EvaluationID  string   `json:"evaluation_id,omitempty"`
}

func (r *AvailabilityResponse) FromResult(result model.Result) {
	r.Status = string(result.Status)
	r.EventType = string(result.Type)
	r.AssignedSeat = result.AssignedSeat
	r.OccupiedSeats = result.Occupied
	if r.OccupiedSeats == nil {
		r.OccupiedSeats = []string{}
	}
	r.SeatCapacity = result.Capacity
	r.Message = RenderMessage(result)
}

type CheckAvailabilityBatchResponse struct {
	Results []AvailabilityResponse `json:"results"`
}

// RenderMessage produces the desk staff's Korean status line for a result.
func RenderMessage(result model.Result) string {
	switch result.Status {
	case model.StatusAvailable:
		return fmt.Sprintf("가능 (%s)", result.AssignedSeat)
	case model.StatusFull:
		if result.Capacity == 0 {
			return "좌석 없음"
		}
		if result.Type == model.EventTypeConsultation {
			return "상담 마감"
		}
		return fmt.Sprintf("예약 마감 (%d/%d)", len(result.Occupied), result.Capacity)
	case model.StatusDuplicate:
		return "이미 예약됨 (중복)"
	case model.StatusOutOfHours:
		return "영업시간 아님"
	case model.StatusError:
		return "데이터 조회 실패"
	default:
		return string(result.Status)
	}
}

type EvaluationResponse struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	ProductName   string `json:"product_name"`
	RequestNote   string `json:"request_note"`
	StartAt       string `json:"start_at"`
	EndAt         string `json:"end_at"`
	EventType     string `json:"event_type"`
	Status        string `json:"status"`
	AssignedSeat  string `json:"assigned_seat"`
	OccupiedSeats string `json:"occupied_seats"`
	SeatCapacity  int    `json:"seat_capacity"`
	Message       string `json:"message"`
	gDto.Metadata
}

func (r *EvaluationResponse) FromModel(model model.Evaluation) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.ProductName = model.ProductName
	r.RequestNote = model.RequestNote
	r.StartAt = timezone.Format(model.StartAt, constant.DateFormat)
	r.EndAt = timezone.Format(model.EndAt, constant.DateFormat)
	r.EventType = model.EventType
	r.Status = model.Status
	r.AssignedSeat = model.AssignedSeat
	r.OccupiedSeats = model.OccupiedSeats
	r.SeatCapacity = model.SeatCapacity
	r.Message = model.Message
	r.Metadata.FromModel(model.Metadata)
}

type GetEvaluationsResponse struct {
	Evaluations []EvaluationResponse `json:"evaluations"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetEvaluationsResponse) FromModels(models []model.Evaluation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Evaluations = make([]EvaluationResponse, len(models))
	for i, mod := range models {
		r.Evaluations[i].FromModel(mod)
	}
}

