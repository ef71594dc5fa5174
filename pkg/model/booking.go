package model

import "time"

// Booking is one row of the bookings table. Rows are created by a booking
// submission and mutated only by admin status updates or deletion.
type Booking struct {
	OrderID      string        `json:"orderId" bson:"order_id"`
	Date         string        `json:"date" bson:"date"` // canonical YYYY-MM-DD
	Time         string        `json:"time" bson:"time"` // slot label HH:MM
	StaffID      string        `json:"staffId,omitempty" bson:"staff_id,omitempty"`
	CustomerName string        `json:"name" bson:"customer_name"`
	Phone        string        `json:"phone" bson:"phone"` // free text, may contain separators
	ServiceID    string        `json:"serviceId" bson:"service_id"`
	ServiceName  string        `json:"service" bson:"service_name"`
	Design       string        `json:"design,omitempty" bson:"design,omitempty"`
	Addons       string        `json:"addons,omitempty" bson:"addons,omitempty"`
	DurationMin  int           `json:"duration" bson:"duration_min"`
	Details      string        `json:"details,omitempty" bson:"details,omitempty"`
	Location     string        `json:"location,omitempty" bson:"location,omitempty"`
	Address      string        `json:"address,omitempty" bson:"address,omitempty"`
	Price        string        `json:"price" bson:"price"`
	Status       BookingStatus `json:"status" bson:"status"`
	SlipURL      string        `json:"slipUrl,omitempty" bson:"slip_url,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	ApprovedBy   string        `json:"approvedBy,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt   *time.Time    `json:"approvedAt,omitempty" bson:"approved_at,omitempty"`
	Notes        string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// BookingRequest is the submission payload after field extraction, prior to
// validation. Field names drive the "Missing: <field>" messages.
type BookingRequest struct {
	Service  string `validate:"required" field:"service"`
	Date     string `validate:"required" field:"date"`
	Time     string `validate:"required" field:"time"`
	Name     string `validate:"required" field:"name"`
	Phone    string `validate:"required" field:"phone"`
	StaffID  string
	Design   string
	Addons   string
	Details  string
	Location string
	Address  string
	Price    string
}

// ServiceRecord rows are written when a completed visit is archived.
type ServiceRecord struct {
	RecordID        string    `json:"recordId" bson:"record_id"`
	OrderID         string    `json:"orderId" bson:"order_id"`
	Date            string    `json:"date" bson:"date"`
	StaffID         string    `json:"staffId,omitempty" bson:"staff_id,omitempty"`
	CustomerID      string    `json:"customerId,omitempty" bson:"customer_id,omitempty"`
	ServicesDone    string    `json:"servicesDone,omitempty" bson:"services_done,omitempty"`
	StaffNotes      string    `json:"staffNotes,omitempty" bson:"staff_notes,omitempty"`
	NextAppointment string    `json:"nextAppointment,omitempty" bson:"next_appointment,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}
