// Package calendar builds calendar exports and share links for a booking.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

const (
	productID      = "-//Barberia Smart//IT"
	utcStampFormat = "20060102T150405Z"
)

// Links ссылки, показываемые на странице подтверждения
type Links struct {
	Share          string `json:"share"`
	GoogleCalendar string `json:"googleCalendar"`
	Maps           string `json:"maps"`
	ICS            string `json:"ics"`
}

// BuildLinks collects every link for a booking. apiBase is the public API prefix used for the ICS download.
func BuildLinks(publicURL, apiBase string, b *domain.Booking, s *domain.ShopSettings, loc *time.Location) (Links, error) {
	gcal, err := GoogleCalendarURL(b, s, loc)
	if err != nil {
		return Links{}, err
	}
	return Links{
		Share:          ShareURL(publicURL, b.ID),
		GoogleCalendar: gcal,
		Maps:           MapsURL(s),
		ICS:            fmt.Sprintf("%s/bookings/%s/calendar.ics", strings.TrimRight(apiBase, "/"), url.PathEscape(b.ID)),
	}, nil
}

// BuildICS returns a single-event iCalendar document for the booking.
// Start and end are written in UTC; end is start plus the service duration.
func BuildICS(b *domain.Booking, s *domain.ShopSettings, loc *time.Location, now time.Time) (string, error) {
	start, err := b.StartsAt(loc)
	if err != nil {
		return "", fmt.Errorf("calendar: booking %s: %w", b.ID, err)
	}
	end, _ := b.EndsAt(loc)

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(b.ID + "@barberia")
	event.SetDtStampTime(now)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("%s @ %s", b.Service.Name, s.Name))
	event.SetDescription(fmt.Sprintf("Prenotazione confermata per %s. Grazie per aver scelto %s!", b.Service.Name, s.Name))
	event.SetLocation(s.Address)

	return cal.Serialize(), nil
}

// ICSFilename is the suggested download name
func ICSFilename(b *domain.Booking) string {
	return fmt.Sprintf("appuntamento-%s.ics", b.ID)
}

// GoogleCalendarURL returns a "create event" deep link
func GoogleCalendarURL(b *domain.Booking, s *domain.ShopSettings, loc *time.Location) (string, error) {
	start, err := b.StartsAt(loc)
	if err != nil {
		return "", fmt.Errorf("calendar: booking %s: %w", b.ID, err)
	}
	end, _ := b.EndsAt(loc)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", fmt.Sprintf("%s @ %s", b.Service.Name, s.Name))
	q.Set("dates", start.UTC().Format(utcStampFormat)+"/"+end.UTC().Format(utcStampFormat))
	q.Set("details", fmt.Sprintf("Prenotazione per %s. Ti aspettiamo!", b.Service.Name))
	q.Set("location", s.Address)

	return "https://calendar.google.com/calendar/render?" + q.Encode(), nil
}

// MapsURL returns a Google Maps search link for the shop
func MapsURL(s *domain.ShopSettings) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", s.Name+" "+s.Address)
	return "https://www.google.com/maps/search/?" + q.Encode()
}

// ShareURL returns the confirmation page address for a booking
func ShareURL(publicURL, bookingID string) string {
	return fmt.Sprintf("%s/#/confirmation/%s", strings.TrimRight(publicURL, "/"), url.PathEscape(bookingID))
}

// BookingPageURL is the public booking start page, encoded in the shop QR code
func BookingPageURL(publicURL string) string {
	return strings.TrimRight(publicURL, "/") + "/"
}
