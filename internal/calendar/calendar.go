// Package calendar mirrors confirmed bookings into a Google Calendar over
// its REST API. Every method degrades gracefully: an unconfigured or
// unreachable calendar is logged and skipped, never an operation failure.
package calendar

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nailbook/internal/dates"
	"nailbook/pkg/client"
	"nailbook/pkg/config"
	"nailbook/pkg/model"
)

type Client struct {
	http  *client.HttpClient
	dates *dates.Normalizer
	cfg   *config.Config
}

func New(cfg *config.Config, norm *dates.Normalizer) *Client {
	var httpClient *client.HttpClient
	if cfg.CalendarID != "" && cfg.GoogleAPIToken != "" {
		httpClient = client.NewHttpClient(cfg.CalendarBaseURL, map[string]string{
			"Authorization": "Bearer " + cfg.GoogleAPIToken,
		})
	}
	return &Client{http: httpClient, dates: norm, cfg: cfg}
}

func (c *Client) configured() bool { return c.http != nil }

type eventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventReminder struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type event struct {
	ID          string          `json:"id,omitempty"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Location    string          `json:"location,omitempty"`
	ColorID     string          `json:"colorId,omitempty"`
	Start       eventDateTime   `json:"start"`
	End         eventDateTime   `json:"end"`
	Attendees   []eventAttendee `json:"attendees,omitempty"`
	Reminders   struct {
		UseDefault bool            `json:"useDefault"`
		Overrides  []eventReminder `json:"overrides"`
	} `json:"reminders"`
}

type eventList struct {
	Items []event `json:"items"`
}

// CreateEvent writes the appointment and returns a shareable render link.
// The order ID rides in the description; cancellation finds it there.
func (c *Client) CreateEvent(ctx context.Context, booking *model.Booking, settings *model.ShopSettings) (string, error) {
	if !c.configured() {
		c.cfg.Log.Info("Calendar not configured, skipping event", "order_id", booking.OrderID)
		return "", nil
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Time, c.cfg.Location)
	if err != nil {
		return "", fmt.Errorf("invalid booking date/time %s %s: %w", booking.Date, booking.Time, err)
	}
	duration := booking.DurationMin
	if duration <= 0 {
		duration = config.DefaultServiceDuration
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	ev := event{
		Summary:     fmt.Sprintf("%s - %s (%s)", settings.ShopName, booking.ServiceName, booking.CustomerName),
		Description: c.description(booking),
		Location:    booking.Address,
		ColorID:     "3",
		Start:       eventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: c.cfg.Timezone},
		End:         eventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: c.cfg.Timezone},
	}
	ev.Reminders.Overrides = []eventReminder{
		{Method: "popup", Minutes: 30},
		{Method: "popup", Minutes: 120},
		{Method: "email", Minutes: 1440},
		{Method: "email", Minutes: 120},
	}
	for _, email := range settings.NotifyEmails {
		ev.Attendees = append(ev.Attendees, eventAttendee{Email: email})
	}

	resp, err := c.http.POST(ctx, "/calendars/"+url.PathEscape(c.cfg.CalendarID)+"/events", ev)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("calendar create returned %d: %s", resp.StatusCode, resp.Body)
	}

	return c.renderLink(&ev), nil
}

func (c *Client) description(booking *model.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order: %s\n", booking.OrderID)
	fmt.Fprintf(&b, "Customer: %s\n", booking.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", booking.Phone)
	fmt.Fprintf(&b, "Service: %s\n", booking.ServiceName)
	if booking.Design != "" {
		fmt.Fprintf(&b, "Design: %s\n", booking.Design)
	}
	if booking.Details != "" {
		fmt.Fprintf(&b, "Details: %s\n", booking.Details)
	}
	return b.String()
}

// renderLink builds the calendar.google.com template URL customers can open
// to add the appointment to their own calendar.
func (c *Client) renderLink(ev *event) string {
	compact := func(rfc3339 string) string {
		s := strings.ReplaceAll(strings.ReplaceAll(rfc3339, "-", ""), ":", "")
		return s
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Summary)
	q.Set("details", ev.Description)
	q.Set("dates", compact(ev.Start.DateTime)+"/"+compact(ev.End.DateTime))
	if ev.Location != "" {
		q.Set("location", ev.Location)
	}
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// RemoveEvent deletes the first upcoming event whose description carries the
// order ID. The scan window is bounded; a booking far enough in the future
// simply keeps its event, matching how cancellations have always behaved.
func (c *Client) RemoveEvent(ctx context.Context, orderID string) error {
	if !c.configured() {
		return nil
	}

	now := c.dates.Now()
	q := url.Values{}
	q.Set("timeMin", now.Format(time.RFC3339))
	q.Set("timeMax", now.AddDate(0, 0, c.cfg.CalendarWindowDays).Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("q", orderID)

	path := "/calendars/" + url.PathEscape(c.cfg.CalendarID) + "/events?" + q.Encode()
	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("calendar list returned %d", resp.StatusCode)
	}

	var list eventList
	if err := resp.DecodeJSON(&list); err != nil {
		return fmt.Errorf("failed to decode event list: %w", err)
	}

	for _, ev := range list.Items {
		if !strings.Contains(ev.Description, orderID) {
			continue
		}
		delPath := "/calendars/" + url.PathEscape(c.cfg.CalendarID) + "/events/" + url.PathEscape(ev.ID)
		delResp, err := c.http.DELETE(ctx, delPath)
		if err != nil {
			return err
		}
		if !delResp.OK() && delResp.StatusCode != 404 {
			return fmt.Errorf("calendar delete returned %d", delResp.StatusCode)
		}
		c.cfg.Log.Info("Calendar event removed", "order_id", orderID, "event_id", ev.ID)
		return nil
	}

	// No matching event is fine: it may predate the window or never existed.
	return nil
}
