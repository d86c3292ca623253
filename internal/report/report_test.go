package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
)

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("https://barberia.example/", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = QRCodePNG("", 128)
	assert.ErrorIs(t, err, ErrRender)
}

func TestAgendaPDF(t *testing.T) {
	booking := &models.BookingResponse{
		ID:            "abc",
		CustomerName:  "Niccolò",
		CustomerPhone: "+39 333",
		Service:       models.ServiceResponse{Name: "Taglio Classico", Price: 20},
		Date:          "2030-05-02",
		Time:          "09:00",
		Status:        "confirmed",
	}
	agenda := &models.AgendaResponse{
		Date: "2030-05-02",
		Timeline: []models.TimelineEntry{
			{Time: "09:00", Booking: booking},
			{Time: "09:30"},
		},
		Bookings: []models.BookingResponse{*booking},
		Stats:    models.AgendaStats{Total: 1, Confirmed: 1, ExpectedRevenue: 20, BusiestHour: "09:00"},
		Summary:  "Oggi hai 1 cliente. Buon lavoro!",
	}

	for _, url := range []string{"", "https://barberia.example/"} {
		doc, err := AgendaPDF(domain.DefaultSettings(), agenda, url)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	}

	assert.Equal(t, "agenda-2030-05-02.pdf", AgendaFilename("2030-05-02"))
}
