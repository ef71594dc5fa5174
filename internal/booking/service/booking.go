package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"nailbook/internal/booking/repository"
	"nailbook/internal/booking/validator"
	"nailbook/internal/dates"
	shopservice "nailbook/internal/shop/service"
	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/events"
	"nailbook/pkg/model"
	"nailbook/pkg/sanitizer"
)

// Calendar abstracts the appointment calendar. Implementations must degrade
// gracefully: an unreachable calendar never fails a booking operation.
type Calendar interface {
	CreateEvent(ctx context.Context, booking *model.Booking, settings *model.ShopSettings) (string, error)
	RemoveEvent(ctx context.Context, orderID string) error
}

// CustomerLedger archives a served visit into the customer profile.
type CustomerLedger interface {
	RecordVisit(ctx context.Context, booking *model.Booking) error
}

// OccupiedSlot is one occupancy entry in the public booked-slots view. It
// carries enough for the caller to grey out a slot and to recognize its own
// booking in the list.
type OccupiedSlot struct {
	Time    string              `json:"time"`
	StaffID string              `json:"staffId"`
	Status  model.BookingStatus `json:"status"`
	OrderID string              `json:"orderId"`
}

type BookedSlotsResult struct {
	Occupied    []OccupiedSlot
	TimeSlots   []string
	ShopOpen    bool
	ShopMessage string
	ServerDate  string
	ServerTime  string
}

type AdminData struct {
	Bookings []model.Booking
	Settings map[string]string
	Total    int
}

type StatusUpdateResult struct {
	Booking      *model.Booking
	CalendarLink string
}

type BookingService interface {
	Submit(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	BookedSlots(ctx context.Context, date string) (*BookedSlotsResult, error)
	AvailableSlots(ctx context.Context, date string) ([]string, error)
	Search(ctx context.Context, query string) (*model.Booking, error)
	ByDate(ctx context.Context, date string) ([]model.Booking, error)
	AdminData(ctx context.Context) (*AdminData, error)
	UpdateStatus(ctx context.Context, orderID string, status model.BookingStatus) (*StatusUpdateResult, error)
	Delete(ctx context.Context, orderID string) error
	RevenueReport(ctx context.Context, from, to string) (*RevenueReport, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	SendReminders(ctx context.Context) (int, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	records   repository.ServiceRecordRepository
	customers CustomerLedger
	shop      shopservice.ShopService
	calendar  Calendar
	publisher events.Publisher
	validator *validator.BookingValidator
	dates     *dates.Normalizer
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	records repository.ServiceRecordRepository,
	customers CustomerLedger,
	shop shopservice.ShopService,
	calendar Calendar,
	publisher events.Publisher,
	norm *dates.Normalizer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		records:   records,
		customers: customers,
		shop:      shop,
		calendar:  calendar,
		publisher: publisher,
		validator: validator.NewBookingValidator(),
		dates:     norm,
		cfg:       cfg,
	}
}

// Submit runs the full admission pipeline: required fields, shop
// availability, slot-in-the-past, then conflicts against the fresh bookings
// snapshot. Callers hold the advisory lock, so the snapshot cannot go stale
// between the scan and the insert.
func (s *bookingService) Submit(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	date := s.dates.Normalize(req.Date)

	settings, err := s.shop.Load(ctx)
	if err != nil {
		return nil, err
	}
	if avail := shopservice.CheckAvailability(settings, date); !avail.Open {
		return nil, apperrors.Conflict(avail.Message)
	}
	if s.dates.IsPast(date, req.Time) {
		return nil, apperrors.Conflict("This time slot has already passed")
	}

	existing, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	now := s.dates.Now()
	booking := &model.Booking{
		OrderID:      s.cfg.OrderIDPrefix + now.Format("0102150405"),
		Date:         date,
		Time:         req.Time,
		StaffID:      req.StaffID,
		CustomerName: req.Name,
		Phone:        req.Phone,
		ServiceID:    req.Service,
		ServiceName:  req.Service,
		Design:       req.Design,
		Addons:       req.Addons,
		DurationMin:  config.DefaultServiceDuration,
		Details:      req.Details,
		Location:     req.Location,
		Address:      req.Address,
		Price:        req.Price,
		Status:       model.StatusPendingPayment,
		CreatedAt:    now,
	}

	if conflict := findConflict(booking, existing); conflict != nil {
		return nil, apperrors.Conflict(conflict.Reason)
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to insert booking", "order_id", booking.OrderID, "error", err)
		return nil, apperrors.Internal("Failed to save booking", err)
	}

	s.publish(ctx, events.TypeBookingCreated, booking)
	s.cfg.Log.Info("Booking submitted",
		"order_id", booking.OrderID,
		"date", booking.Date,
		"slot", booking.Time,
	)
	return booking, nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Service = sanitizer.TrimAndNormalize(req.Service)
	req.Name = sanitizer.TrimAndNormalize(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Time = strings.TrimSpace(req.Time)
	req.Date = strings.TrimSpace(req.Date)
}

// BookedSlots is the public pre-booking view: which slots are taken, whether
// the shop accepts bookings that day, and the server clock so the client can
// grey out past slots.
func (s *bookingService) BookedSlots(ctx context.Context, date string) (*BookedSlotsResult, error) {
	date = s.dates.Normalize(date)
	if date == "" {
		return nil, apperrors.MissingField("date")
	}

	settings, err := s.shop.Load(ctx)
	if err != nil {
		return nil, err
	}
	avail := shopservice.CheckAvailability(settings, date)

	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	occupied := make([]OccupiedSlot, 0)
	for i := range bookings {
		b := &bookings[i]
		// Any non-cancelled row occupies its slot here, even one with a
		// status this version no longer recognizes.
		if b.Date == date && b.Status != model.StatusCancelled {
			occupied = append(occupied, OccupiedSlot{
				Time:    b.Time,
				StaffID: b.StaffID,
				Status:  b.Status,
				OrderID: b.OrderID,
			})
		}
	}
	sort.Slice(occupied, func(i, j int) bool { return occupied[i].Time < occupied[j].Time })

	return &BookedSlotsResult{
		Occupied:    occupied,
		TimeSlots:   settings.TimeSlots,
		ShopOpen:    avail.Open,
		ShopMessage: avail.Message,
		ServerDate:  s.dates.Today(),
		ServerTime:  s.dates.NowClock(),
	}, nil
}

// AvailableSlots filters the configured slot labels down to the ones still
// bookable: not occupied and, for today, not already past.
func (s *bookingService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	booked, err := s.BookedSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	if !booked.ShopOpen {
		return []string{}, nil
	}

	taken := make(map[string]bool, len(booked.Occupied))
	for _, o := range booked.Occupied {
		taken[o.Time] = true
	}

	date = s.dates.Normalize(date)
	available := make([]string, 0, len(booked.TimeSlots))
	for _, slot := range booked.TimeSlots {
		if taken[slot] || s.dates.IsPast(date, slot) {
			continue
		}
		available = append(available, slot)
	}
	return available, nil
}

// Search looks a booking up by order ID or by phone. Phone matches are
// hyphen-insensitive; the newest matching row wins.
func (s *bookingService) Search(ctx context.Context, query string) (*model.Booking, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.MissingField("query")
	}

	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	var match *model.Booking
	for i := range bookings {
		b := &bookings[i]
		if !strings.EqualFold(b.OrderID, query) && !sanitizer.SamePhone(b.Phone, query) {
			continue
		}
		if match == nil || b.CreatedAt.After(match.CreatedAt) {
			match = b
		}
	}
	if match == nil {
		return nil, apperrors.NotFound("Booking")
	}
	return match, nil
}

func (s *bookingService) ByDate(ctx context.Context, date string) ([]model.Booking, error) {
	date = s.dates.Normalize(date)
	if date == "" {
		return nil, apperrors.MissingField("date")
	}

	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	out := make([]model.Booking, 0)
	for i := range bookings {
		if bookings[i].Date == date {
			out = append(out, bookings[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// AdminData returns the newest bookings plus the full settings table for the
// admin console. The row count is capped so a years-old table cannot blow up
// the response.
func (s *bookingService) AdminData(ctx context.Context) (*AdminData, error) {
	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	settings, err := s.shop.AllSettings(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	total := len(bookings)
	if len(bookings) > config.DefaultAdminBookingLimit {
		bookings = bookings[:config.DefaultAdminBookingLimit]
	}

	return &AdminData{Bookings: bookings, Settings: settings, Total: total}, nil
}

func (s *bookingService) findByOrderID(bookings []model.Booking, orderID string) *model.Booking {
	for i := range bookings {
		if bookings[i].OrderID == orderID {
			return &bookings[i]
		}
	}
	return nil
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *model.Booking) {
	err := s.publisher.Publish(ctx, events.BookingEvent{
		Type:    eventType,
		OrderID: b.OrderID,
		Date:    b.Date,
		Slot:    b.Time,
		Status:  string(b.Status),
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"type", eventType,
			"order_id", b.OrderID,
			"error", err,
		)
	}
}

// parsePrice reads the free-text price cell as a number. Currency symbols
// and thousand separators are tolerated; anything unparseable counts as 0.
func parsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
