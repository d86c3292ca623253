package bookings

import (
	"fmt"
	"strings"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
)

const emptyDaySummary = "Nessun appuntamento per oggi. È il momento ideale per far scansionare il tuo QR ai nuovi clienti!"

// computeStats считает агрегаты дня; выручка и самый загруженный час только по активным
func computeStats(bookings []*domain.Booking) models.AgendaStats {
	var stats models.AgendaStats
	perHour := make(map[int]int)

	for _, b := range bookings {
		switch b.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusCancelled:
			stats.Cancelled++
		}
		if !b.IsActive() {
			continue
		}
		stats.Total++
		stats.ExpectedRevenue += b.Service.Price
		if m, err := b.Time.Minutes(); err == nil {
			perHour[m/60]++
		}
	}

	busiest, max := -1, 0
	for hour, n := range perHour {
		if n > max || (n == max && hour < busiest) {
			busiest, max = hour, n
		}
	}
	if busiest >= 0 {
		stats.BusiestHour = fmt.Sprintf("%02d:00", busiest)
	}

	return stats
}

// LocalSummary детерминированная сводка дня, используется без внешнего сервиса
func LocalSummary(bookings []*domain.Booking) string {
	stats := computeStats(bookings)
	if stats.Total == 0 {
		return emptyDaySummary
	}

	var sb strings.Builder
	if stats.Total == 1 {
		sb.WriteString("Oggi hai 1 cliente")
	} else {
		fmt.Fprintf(&sb, "Oggi hai %d clienti", stats.Total)
	}
	if stats.BusiestHour != "" {
		fmt.Fprintf(&sb, ", l'orario più affollato è intorno alle %s", stats.BusiestHour)
	}
	fmt.Fprintf(&sb, " e un incasso previsto di €%.2f. Buon lavoro!", stats.ExpectedRevenue)
	return sb.String()
}
