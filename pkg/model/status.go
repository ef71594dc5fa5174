package model

// BookingStatus is stored as a string cell in the bookings table.
type BookingStatus string

const (
	StatusPendingPayment  BookingStatus = "pending_payment"
	StatusPaymentUploaded BookingStatus = "payment_uploaded"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusInService       BookingStatus = "in_service"
	StatusCompleted       BookingStatus = "completed"
	StatusCancelled       BookingStatus = "cancelled"
)

// AllStatuses lists every status an admin may write. There is no enforced
// transition table: any status may overwrite any other.
var AllStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusPaymentUploaded,
	StatusConfirmed,
	StatusInService,
	StatusCompleted,
	StatusCancelled,
}

func (s BookingStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Blocks reports whether a booking in this status occupies its time slot
// against new submissions. Everything but cancelled blocks.
func (s BookingStatus) Blocks() bool {
	return s != StatusCancelled && s.Valid()
}

// Active reports whether a booking still counts as the customer's live
// booking for the day. Completed bookings no longer do, so a customer can
// book again the same day after being served.
func (s BookingStatus) Active() bool {
	return s.Blocks() && s != StatusCompleted
}

// CountsAsRevenue reports whether the booking contributes to revenue
// dashboards.
func (s BookingStatus) CountsAsRevenue() bool {
	switch s {
	case StatusConfirmed, StatusInService, StatusCompleted:
		return true
	}
	return false
}
