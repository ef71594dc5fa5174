package service

import (
	"context"
	"sort"

	apperrors "nailbook/pkg/errors"
	"nailbook/pkg/events"
	"nailbook/pkg/model"
)

type RevenueDay struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type RevenueReport struct {
	From    string
	To      string
	Days    []RevenueDay
	Total   float64
	Count   int
	Average float64
}

type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

type DashboardStats struct {
	TodayRevenue  float64
	MonthRevenue  float64
	TotalRevenue  float64
	TodayBookings int
	PendingCount  int
	Chart         []RevenueDay
	TopServices   []ServiceCount
}

// RevenueReport rolls completed bookings up per day inside the inclusive
// date range. Only completed visits count: confirmed work that never
// happened is not revenue here.
func (s *bookingService) RevenueReport(ctx context.Context, from, to string) (*RevenueReport, error) {
	from = s.dates.Normalize(from)
	to = s.dates.Normalize(to)
	if from == "" || to == "" {
		return nil, apperrors.MissingField("from")
	}

	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	byDay := make(map[string]*RevenueDay)
	report := &RevenueReport{From: from, To: to}
	for i := range bookings {
		b := &bookings[i]
		if b.Status != model.StatusCompleted || b.Date < from || b.Date > to {
			continue
		}
		day, ok := byDay[b.Date]
		if !ok {
			day = &RevenueDay{Date: b.Date}
			byDay[b.Date] = day
		}
		price := parsePrice(b.Price)
		day.Revenue += price
		day.Bookings++
		report.Total += price
		report.Count++
	}

	report.Days = make([]RevenueDay, 0, len(byDay))
	for _, day := range byDay {
		report.Days = append(report.Days, *day)
	}
	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Date < report.Days[j].Date })

	if report.Count > 0 {
		report.Average = report.Total / float64(report.Count)
	}
	return report, nil
}

// DashboardStats aggregates the admin landing page numbers in one scan.
func (s *bookingService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	bookings, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	today := s.dates.Today()
	month := today[:7]

	stats := &DashboardStats{}
	chart := make([]RevenueDay, 7)
	chartIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := s.dates.NormalizeTime(s.dates.Now().AddDate(0, 0, i-6))
		chart[i] = RevenueDay{Date: date}
		chartIndex[date] = i
	}

	serviceCounts := make(map[string]int)
	for i := range bookings {
		b := &bookings[i]

		if b.Date == today && b.Status.Blocks() {
			stats.TodayBookings++
		}
		if b.Status == model.StatusPaymentUploaded {
			stats.PendingCount++
		}
		if b.Status.Blocks() && b.ServiceName != "" {
			serviceCounts[b.ServiceName]++
		}

		if !b.Status.CountsAsRevenue() {
			continue
		}
		price := parsePrice(b.Price)
		stats.TotalRevenue += price
		if b.Date == today {
			stats.TodayRevenue += price
		}
		if len(b.Date) >= 7 && b.Date[:7] == month {
			stats.MonthRevenue += price
		}
		if idx, ok := chartIndex[b.Date]; ok {
			chart[idx].Revenue += price
			chart[idx].Bookings++
		}
	}
	stats.Chart = chart

	stats.TopServices = make([]ServiceCount, 0, len(serviceCounts))
	for name, count := range serviceCounts {
		stats.TopServices = append(stats.TopServices, ServiceCount{Service: name, Count: count})
	}
	sort.Slice(stats.TopServices, func(i, j int) bool {
		if stats.TopServices[i].Count != stats.TopServices[j].Count {
			return stats.TopServices[i].Count > stats.TopServices[j].Count
		}
		return stats.TopServices[i].Service < stats.TopServices[j].Service
	})
	if len(stats.TopServices) > 5 {
		stats.TopServices = stats.TopServices[:5]
	}

	return stats, nil
}

// SendReminders publishes a reminder event for every confirmed booking
// tomorrow. Meant to be hit by a scheduler; returns how many went out.
func (s *bookingService) SendReminders(ctx context.Context) (int, error) {
	bookings, err := s.repo.All(ctx)
	if err != nil {
		return 0, apperrors.Internal("Failed to load bookings", err)
	}

	tomorrow := s.dates.NormalizeTime(s.dates.Now().AddDate(0, 0, 1))
	sent := 0
	for i := range bookings {
		b := &bookings[i]
		if b.Date != tomorrow || b.Status != model.StatusConfirmed {
			continue
		}
		s.publishReminder(ctx, b)
		sent++
	}

	if sent > 0 {
		s.cfg.Log.Info("Booking reminders sent", "date", tomorrow, "count", sent)
	}
	return sent, nil
}

func (s *bookingService) publishReminder(ctx context.Context, b *model.Booking) {
	s.publish(ctx, events.TypeBookingReminder, b)
}
