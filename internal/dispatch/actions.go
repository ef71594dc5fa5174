package dispatch

import (
	"context"

	"nailbook/internal/advice"
	bookingservice "nailbook/internal/booking/service"
	catalogservice "nailbook/internal/catalog/service"
	customerservice "nailbook/internal/customer/service"
	"nailbook/internal/gallery"
	reviewservice "nailbook/internal/review/service"
	shopservice "nailbook/internal/shop/service"
	apperrors "nailbook/pkg/errors"
	nethttp "nailbook/pkg/http"
	"nailbook/pkg/model"
)

// Services bundles everything the action registry dispatches into.
type Services struct {
	Bookings  bookingservice.BookingService
	Shop      shopservice.ShopService
	Catalog   catalogservice.CatalogService
	Customers customerservice.CustomerService
	Reviews   reviewservice.ReviewService
	Gallery   gallery.GalleryService
	Advice    advice.Service
}

// RegisterActions binds every action name to its handler. The mutating flag
// decides whether the advisory lock wraps the call.
func RegisterActions(m *Mux, s *Services) {
	// Settings and shop state.
	m.Register("getPublicSettings", false, s.getPublicSettings)
	m.Register("getSettings", false, s.getSettings)
	m.Register("saveSettings", true, s.saveSettings)
	m.Register("adminLogin", false, s.adminLogin)
	m.Register("getShopStatus", false, s.getShopStatus)
	m.Register("setShopStatus", true, s.setShopStatus)
	m.Register("getSpecialDates", false, s.getSpecialDates)
	m.Register("addSpecialDate", true, s.addSpecialDate)
	m.Register("removeSpecialDate", true, s.removeSpecialDate)

	// Bookings.
	m.Register("getBookedSlots", false, s.getBookedSlots)
	m.Register("getAvailableSlots", false, s.getAvailableSlots)
	m.Register("submitBooking", true, s.submitBooking)
	m.Register("searchBooking", false, s.searchBooking)
	m.Register("getBookingsByDate", false, s.getBookingsByDate)
	m.Register("getAdminData", false, s.getAdminData)
	m.Register("updateBookingStatus", true, s.updateBookingStatus)
	m.Register("deleteBooking", true, s.deleteBooking)
	m.Register("getRevenueReport", false, s.getRevenueReport)
	m.Register("getDashboardStats", false, s.getDashboardStats)
	m.Register("sendReminders", false, s.sendReminders)

	// Catalog and customers.
	m.Register("getServices", false, s.getServices)
	m.Register("getStaffs", false, s.getStaffs)
	m.Register("getCustomers", false, s.getCustomers)
	m.Register("getCustomerProfile", false, s.getCustomerProfile)

	// Reviews and advice.
	m.Register("submitReview", true, s.submitReview)
	m.Register("getReviews", false, s.getReviews)
	m.Register("updateReviewStatus", true, s.updateReviewStatus)
	m.Register("seedReviews", true, s.seedReviews)
	m.Register("getAIAdvice", false, s.getAIAdvice)

	// Gallery.
	m.Register("uploadImage", true, s.uploadImage)
	m.Register("getPortfolio", false, s.getPortfolio)
	m.Register("deleteImage", true, s.deleteImage)
	m.Register("getGalleryFolderInfo", false, s.getGalleryFolderInfo)
}

// ────────────────────────────────────────────────
// Settings and shop state
// ────────────────────────────────────────────────

func (s *Services) getPublicSettings(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	settings, err := s.Shop.PublicSettings(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"settings": settings}), nil
}

func (s *Services) getSettings(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	settings, err := s.Shop.AllSettings(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"settings": settings}), nil
}

// saveSettings accepts either a nested "settings" object or the flat payload
// itself as the key set.
func (s *Services) saveSettings(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	values := map[string]string{}
	if raw := p.Get("settings"); raw != "" {
		values = decodeSettingsArg(raw)
	} else {
		for k, v := range p {
			values[k] = v
		}
	}
	if err := s.Shop.SaveSettings(ctx, values); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"message": "Settings saved"}), nil
}

func (s *Services) adminLogin(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	if err := s.Shop.Login(ctx, p.Get("password")); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"message": "Login successful"}), nil
}

func (s *Services) getShopStatus(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	settings, err := s.Shop.ShopStatus(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"shopOpen": settings.ShopOpen,
		"shopName": settings.ShopName,
	}), nil
}

func (s *Services) setShopStatus(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	open := p.Bool("open")
	if err := s.Shop.SetShopStatus(ctx, open); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"shopOpen": open}), nil
}

func (s *Services) getSpecialDates(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	dates, err := s.Shop.SpecialDates(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"specialDates": dates}), nil
}

func (s *Services) addSpecialDate(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	entry := model.SpecialDate{
		Date:   p.Get("date"),
		Status: p.Get("status"),
		Note:   p.Get("note"),
	}
	dates, err := s.Shop.AddSpecialDate(ctx, entry)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"specialDates": dates}), nil
}

func (s *Services) removeSpecialDate(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	dates, err := s.Shop.RemoveSpecialDate(ctx, p.Int("index", -1))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"specialDates": dates}), nil
}

// ────────────────────────────────────────────────
// Bookings
// ────────────────────────────────────────────────

func (s *Services) getBookedSlots(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	result, err := s.Bookings.BookedSlots(ctx, p.Get("date"))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"bookedSlots": result.Occupied,
		"timeSlots":   result.TimeSlots,
		"shopOpen":    result.ShopOpen,
		"shopMessage": result.ShopMessage,
		"serverDate":  result.ServerDate,
		"serverTime":  result.ServerTime,
	}), nil
}

func (s *Services) getAvailableSlots(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	slots, err := s.Bookings.AvailableSlots(ctx, p.Get("date"))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"availableSlots": slots}), nil
}

func (s *Services) submitBooking(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	req := &model.BookingRequest{
		Service:  p.Get("service"),
		Date:     p.Get("date"),
		Time:     p.Get("time"),
		Name:     p.Get("name"),
		Phone:    p.Get("phone"),
		StaffID:  p.Get("staffId"),
		Design:   p.Get("design"),
		Addons:   p.Get("addons"),
		Details:  p.Get("details"),
		Location: p.Get("location"),
		Address:  p.Get("address"),
		Price:    p.Get("price"),
	}
	booking, err := s.Bookings.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"orderId": booking.OrderID,
		"booking": booking,
	}), nil
}

// searchBooking answers with found/not_found envelopes rather than errors;
// an empty result is a normal outcome for this lookup.
func (s *Services) searchBooking(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	query := p.Get("query")
	if query == "" {
		query = p.Get("phone")
	}
	if query == "" {
		query = p.Get("orderId")
	}

	booking, err := s.Bookings.Search(ctx, query)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return nethttp.NotFound(), nil
		}
		return nil, err
	}
	return nethttp.Found(map[string]any{"booking": booking}), nil
}

func (s *Services) getBookingsByDate(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	bookings, err := s.Bookings.ByDate(ctx, p.Get("date"))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"bookings": bookings}), nil
}

func (s *Services) getAdminData(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	data, err := s.Bookings.AdminData(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"bookings": data.Bookings,
		"settings": data.Settings,
		"total":    data.Total,
	}), nil
}

func (s *Services) updateBookingStatus(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	result, err := s.Bookings.UpdateStatus(ctx, p.Get("orderId"), model.BookingStatus(p.Get("status")))
	if err != nil {
		return nil, err
	}
	payload := map[string]any{"booking": result.Booking}
	if result.CalendarLink != "" {
		payload["calendarLink"] = result.CalendarLink
	}
	return nethttp.Success(payload), nil
}

func (s *Services) deleteBooking(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	if err := s.Bookings.Delete(ctx, p.Get("orderId")); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"message": "Booking deleted"}), nil
}

func (s *Services) getRevenueReport(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	report, err := s.Bookings.RevenueReport(ctx, p.Get("from"), p.Get("to"))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"from":    report.From,
		"to":      report.To,
		"days":    report.Days,
		"total":   report.Total,
		"count":   report.Count,
		"average": report.Average,
	}), nil
}

func (s *Services) getDashboardStats(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	stats, err := s.Bookings.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"todayRevenue":  stats.TodayRevenue,
		"monthRevenue":  stats.MonthRevenue,
		"totalRevenue":  stats.TotalRevenue,
		"todayBookings": stats.TodayBookings,
		"pendingCount":  stats.PendingCount,
		"chart":         stats.Chart,
		"topServices":   stats.TopServices,
	}), nil
}

func (s *Services) sendReminders(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	sent, err := s.Bookings.SendReminders(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"sent": sent}), nil
}

// ────────────────────────────────────────────────
// Catalog and customers
// ────────────────────────────────────────────────

func (s *Services) getServices(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	services, err := s.Catalog.ActiveServices(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"services": services}), nil
}

func (s *Services) getStaffs(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	staffs, err := s.Catalog.ActiveStaffs(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"staffs": staffs}), nil
}

func (s *Services) getCustomers(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	customers, err := s.Customers.List(ctx, p.Get("search"))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"customers": customers}), nil
}

func (s *Services) getCustomerProfile(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	customer, err := s.Customers.Profile(ctx, p.Get("phone"))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return nethttp.NotFound(), nil
		}
		return nil, err
	}
	return nethttp.Found(map[string]any{"customer": customer}), nil
}

// ────────────────────────────────────────────────
// Reviews and advice
// ────────────────────────────────────────────────

func (s *Services) submitReview(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	review := &model.Review{
		OrderID:      p.Get("orderId"),
		CustomerName: p.Get("name"),
		Rating:       p.Int("rating", 0),
		Text:         p.Get("review"),
	}
	if err := s.Reviews.Submit(ctx, review); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"message": "Review submitted for approval"}), nil
}

func (s *Services) getReviews(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	list, err := s.Reviews.List(ctx, model.ReviewStatus(p.Get("status")), p.Int("limit", 0))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"reviews": list.Reviews,
		"average": list.Average,
		"total":   list.Total,
	}), nil
}

func (s *Services) updateReviewStatus(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	if err := s.Reviews.UpdateStatus(ctx, p.Get("orderId"), model.ReviewStatus(p.Get("status"))); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"message": "Review updated"}), nil
}

func (s *Services) seedReviews(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	count, err := s.Reviews.Seed(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"count": count}), nil
}

func (s *Services) getAIAdvice(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	result, err := s.Advice.Advise(ctx, &advice.Request{
		Question:       p.Get("question"),
		NailCondition:  p.Get("nailCondition"),
		PreferredStyle: p.Get("preferredStyle"),
	})
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"advice": result.Advice,
		"isAI":   result.IsAI,
	}), nil
}

// ────────────────────────────────────────────────
// Gallery
// ────────────────────────────────────────────────

func (s *Services) uploadImage(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	result, err := s.Gallery.Upload(ctx, &gallery.UploadRequest{
		ImageBase64: p.Get("image"),
		FileName:    p.Get("fileName"),
		MimeType:    p.Get("mimeType"),
		ImageType:   p.Get("type"),
		Caption:     p.Get("caption"),
		Category:    p.Get("category"),
		OrderID:     p.Get("orderId"),
	})
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"fileId":   result.FileID,
		"url":      result.URL,
		"thumbUrl": result.ThumbURL,
	}), nil
}

func (s *Services) getPortfolio(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	items, err := s.Gallery.Portfolio(ctx, p.Get("category"))
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"portfolio": items}), nil
}

func (s *Services) deleteImage(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	if err := s.Gallery.DeleteImage(ctx, p.Get("imageId")); err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{"message": "Image deleted"}), nil
}

func (s *Services) getGalleryFolderInfo(ctx context.Context, p Payload) (nethttp.Envelope, error) {
	info, err := s.Gallery.FolderInfo(ctx)
	if err != nil {
		return nil, err
	}
	return nethttp.Success(map[string]any{
		"folderId":   info.FolderID,
		"folderName": info.FolderName,
		"images":     info.Images,
	}), nil
}
