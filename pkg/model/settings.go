package model

// Setting is one key-value row of the settings table.
type Setting struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

// Settings table keys with structured values.
const (
	SettingShopName      = "shopName"
	SettingTimeSlots     = "timeSlots"     // CSV of HH:MM labels
	SettingAdminPassword = "adminPassword" // plain string
	SettingShopOpen      = "shopOpen"      // "true" / "false"
	SettingSpecialDates  = "specialDates"  // JSON list of SpecialDate
	SettingPortfolio     = "portfolio"     // JSON list of PortfolioItem
	SettingNotifyEmails  = "notifyEmails"  // CSV of addresses
)

const (
	SpecialOpen   = "open"
	SpecialClosed = "closed"
)

// SpecialDate is a per-date override of the global shop-open flag. Its
// explicit status always wins for that date.
type SpecialDate struct {
	Date   string `json:"date"`
	Status string `json:"status"` // open | closed
	Note   string `json:"note,omitempty"`
}

// PortfolioItem is gallery metadata persisted as a serialized list inside
// the settings table; the image bytes live in blob storage.
type PortfolioItem struct {
	ID         string `json:"id"`
	Caption    string `json:"caption"`
	Category   string `json:"category,omitempty"`
	URL        string `json:"url"`
	ThumbURL   string `json:"thumb"`
	UploadedAt string `json:"date"`
}

// ShopSettings is the typed view of the settings table, loaded wholesale at
// the start of a request and written back as explicit key updates.
type ShopSettings struct {
	ShopName      string
	TimeSlots     []string
	AdminPassword string
	ShopOpen      bool
	SpecialDates  []SpecialDate
	Portfolio     []PortfolioItem
	NotifyEmails  []string

	// Raw preserves keys without a typed projection so getPublicSettings can
	// return the full table.
	Raw map[string]string
}

// Override returns the special-date entry matching the canonical date, or
// nil.
func (s *ShopSettings) Override(date string) *SpecialDate {
	for i := range s.SpecialDates {
		if s.SpecialDates[i].Date == date {
			return &s.SpecialDates[i]
		}
	}
	return nil
}
