package service

import (
	"nailbook/pkg/model"
	"nailbook/pkg/sanitizer"
)

// Conflict explains why a submission cannot take its slot.
type Conflict struct {
	Reason string
}

// findConflict checks a candidate against the full bookings snapshot. Rows
// on other dates and cancelled rows never conflict. A taken slot blocks for
// every non-cancelled status; a duplicate customer (hyphen-insensitive
// phone) blocks only while their booking is still active, so a customer who
// was already served can book again the same day. The first hit wins.
func findConflict(candidate *model.Booking, existing []model.Booking) *Conflict {
	for i := range existing {
		row := &existing[i]
		if row.Date != candidate.Date || !row.Status.Blocks() {
			continue
		}
		if row.Time == candidate.Time {
			return &Conflict{Reason: "This time slot is already booked"}
		}
		if row.Status.Active() && sanitizer.SamePhone(row.Phone, candidate.Phone) {
			return &Conflict{Reason: "You already have an active booking on this date"}
		}
	}
	return nil
}
