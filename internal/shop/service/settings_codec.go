package service

import (
	"nailbook/pkg/config"
	"nailbook/pkg/jsonx"
	"nailbook/pkg/model"
	"nailbook/pkg/sanitizer"
)

// DecodeSettings projects the raw key-value rows into the typed settings
// view. Missing or corrupt rows fall back to shipped defaults, the service
// keeps working on a half-initialized table.
func DecodeSettings(raw map[string]string) *model.ShopSettings {
	s := &model.ShopSettings{
		ShopName:      raw[model.SettingShopName],
		AdminPassword: raw[model.SettingAdminPassword],
		ShopOpen:      decodeShopOpen(raw),
		TimeSlots:     sanitizer.SplitCSV(raw[model.SettingTimeSlots]),
		SpecialDates:  jsonx.ParseOrDefault(raw[model.SettingSpecialDates], []model.SpecialDate{}),
		Portfolio:     jsonx.ParseOrDefault(raw[model.SettingPortfolio], []model.PortfolioItem{}),
		NotifyEmails:  sanitizer.SplitCSV(raw[model.SettingNotifyEmails]),
		Raw:           raw,
	}

	if s.ShopName == "" {
		s.ShopName = config.DefaultShopName
	}
	if s.AdminPassword == "" {
		s.AdminPassword = config.DefaultAdminPassword
	}
	if len(s.TimeSlots) == 0 {
		s.TimeSlots = sanitizer.SplitCSV(config.DefaultTimeSlots)
	}
	return s
}

// decodeShopOpen treats a missing row as open but anything other than the
// literal "true" as closed, so a corrupted value fails safe.
func decodeShopOpen(raw map[string]string) bool {
	v, ok := raw[model.SettingShopOpen]
	return !ok || v == "true"
}

// Availability is the per-date open/closed verdict used both by the public
// booked-slots view and by submission validation.
type Availability struct {
	Open    bool
	Message string
}

// CheckAvailability resolves whether the shop accepts bookings on a date. A
// closed override always blocks; when the global flag is off only an
// explicit open override lifts the block, any other status falls through.
func CheckAvailability(s *model.ShopSettings, date string) Availability {
	ov := s.Override(date)
	if ov != nil && ov.Status == model.SpecialClosed {
		msg := "The shop is closed on this date"
		if ov.Note != "" {
			msg += ": " + ov.Note
		}
		return Availability{Open: false, Message: msg}
	}
	if !s.ShopOpen && !(ov != nil && ov.Status == model.SpecialOpen) {
		return Availability{Open: false, Message: "The shop is temporarily not accepting bookings"}
	}
	return Availability{Open: true}
}
