package events

import "time"

// Event types emitted on the booking lifecycle stream.
const (
	TypeBookingCreated  = "booking.created"
	TypeStatusChanged   = "booking.status_changed"
	TypeBookingDeleted  = "booking.deleted"
	TypeBookingReminder = "booking.reminder"
)

// BookingEvent is the JSON payload published to Kafka. The order ID is the
// partition key so one booking's events stay ordered.
type BookingEvent struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	OrderID string    `json:"orderId"`
	Date    string    `json:"date,omitempty"`
	Slot    string    `json:"slot,omitempty"`
	Status  string    `json:"status,omitempty"`
	At      time.Time `json:"at"`
}
