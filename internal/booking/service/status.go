package service

import (
	"context"

	"nailbook/internal/booking/repository"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/events"
	"nailbook/pkg/model"
)

// UpdateStatus writes the new status and runs its side effects. There is no
// transition table: the admin may move a booking from any status to any
// other, including re-confirming an already-confirmed booking (which creates
// a second calendar event). Collaborator failures degrade: the status write
// is the operation, everything after it is best effort.
func (s *bookingService) UpdateStatus(ctx context.Context, orderID string, status model.BookingStatus) (*StatusUpdateResult, error) {
	if orderID == "" {
		return nil, apperrors.MissingField("orderId")
	}
	if !status.Valid() {
		return nil, apperrors.InvalidInput("Unknown booking status: " + string(status))
	}

	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	booking := s.findByOrderID(bookings, orderID)
	if booking == nil {
		return nil, apperrors.NotFound("Booking")
	}

	matched, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		s.cfg.Log.Error("Failed to update booking status", "order_id", orderID, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}
	if !matched {
		return nil, apperrors.NotFound("Booking")
	}
	booking.Status = status

	result := &StatusUpdateResult{Booking: booking}
	switch status {
	case model.StatusConfirmed:
		result.CalendarLink = s.onConfirmed(ctx, booking)
	case model.StatusCancelled:
		s.onCancelled(ctx, booking)
	case model.StatusCompleted:
		s.onCompleted(ctx, booking)
	}

	s.publish(ctx, events.TypeStatusChanged, booking)
	s.cfg.Log.Info("Booking status updated", "order_id", orderID, "status", status)
	return result, nil
}

func (s *bookingService) onConfirmed(ctx context.Context, booking *model.Booking) string {
	now := s.dates.Now()
	booking.ApprovedBy = "Admin"
	booking.ApprovedAt = &now
	if err := s.repo.SetApproval(ctx, booking.OrderID, booking.ApprovedBy, now); err != nil {
		s.cfg.Log.Warn("Failed to record approval", "order_id", booking.OrderID, "error", err)
	}

	settings, err := s.shop.Load(ctx)
	if err != nil {
		s.cfg.Log.Warn("Failed to load settings for calendar event", "order_id", booking.OrderID, "error", err)
		return ""
	}
	link, err := s.calendar.CreateEvent(ctx, booking, settings)
	if err != nil {
		// Non-fatal: the booking is confirmed either way, only the link is lost.
		s.cfg.Log.Warn("Failed to create calendar event", "order_id", booking.OrderID, "error", err)
		return ""
	}
	return link
}

func (s *bookingService) onCancelled(ctx context.Context, booking *model.Booking) {
	if err := s.calendar.RemoveEvent(ctx, booking.OrderID); err != nil {
		s.cfg.Log.Warn("Failed to remove calendar event", "order_id", booking.OrderID, "error", err)
	}
}

// onCompleted archives the visit and rolls it into the customer profile.
func (s *bookingService) onCompleted(ctx context.Context, booking *model.Booking) {
	record := repository.NewServiceRecord(booking, s.dates.Now())
	if err := s.records.Insert(ctx, record); err != nil {
		s.cfg.Log.Warn("Failed to archive service record", "order_id", booking.OrderID, "error", err)
	}
	if err := s.customers.RecordVisit(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to update customer profile", "order_id", booking.OrderID, "error", err)
	}
}

// Delete removes the booking row permanently. Cancellation is the softer
// path; deletion exists for test rows and data hygiene.
func (s *bookingService) Delete(ctx context.Context, orderID string) error {
	if orderID == "" {
		return apperrors.MissingField("orderId")
	}

	deleted, err := s.repo.Delete(ctx, orderID)
	if err != nil {
		s.cfg.Log.Error("Failed to delete booking", "order_id", orderID, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}
	if !deleted {
		return apperrors.NotFound("Booking")
	}

	s.publish(ctx, events.TypeBookingDeleted, &model.Booking{OrderID: orderID})
	s.cfg.Log.Info("Booking deleted", "order_id", orderID)
	return nil
}
