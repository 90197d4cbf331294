package model

import (
	"time"

	"bookingdesk/shared/model"
)

const (
	TableName  = "availability_evaluations"
	EntityName = "evaluation"

	FieldID            = "id"
	FieldCustomerName  = "customer_name"
	FieldProductName   = "product_name"
	FieldRequestNote   = "request_note"
	FieldStartAt       = "start_at"
	FieldEndAt         = "end_at"
	FieldEventType     = "event_type"
	FieldStatus        = "status"
	FieldAssignedSeat  = "assigned_seat"
	FieldOccupiedSeats = "occupied_seats"
	FieldSeatCapacity  = "seat_capacity"
	FieldMessage       = "message"
)

// Status is the outcome of one availability evaluation.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusFull       Status = "full"
	StatusDuplicate  Status = "duplicate"
	StatusOutOfHours Status = "out_of_hours"
	StatusError      Status = "error"
)

// EventType is what kind of calendar entry the reservation would become,
// decided from the product and request text.
type EventType string

const (
	EventTypeDriving      EventType = "driving"
	EventTypeConsultation EventType = "consultation"
)

// ReservationRequest is the classified, time-resolved form of an incoming
// booking inquiry, ready for the allocation rules.
type ReservationRequest struct {
	CustomerName string
	ProductName  string
	RequestNote  string
	Start        time.Time
	End          time.Time
	Type         EventType
}

// Result is what the allocation rules decided for one request. It carries
// structured detail only; user-facing message rendering happens at the
// transport layer.
type Result struct {
	Status       Status
	Type         EventType
	AssignedSeat string
	Occupied     []string
	Capacity     int
}

// Evaluation is the persisted audit record of one availability decision.
type Evaluation struct {
	ID            string    `db:"id"`
	CustomerName  string    `db:"customer_name"`
	ProductName   string    `db:"product_name"`
	RequestNote   string    `db:"request_note"`
	StartAt       time.Time `db:"start_at"`
	EndAt         time.Time `db:"end_at"`
	EventType     string    `db:"event_type"`
	Status        string    `db:"status"`
	AssignedSeat  string    `db:"assigned_seat"`
	OccupiedSeats string    `db:"occupied_seats"`
	SeatCapacity  int       `db:"seat_capacity"`
	Message       string    `db:"message"`
	model.Metadata
}
