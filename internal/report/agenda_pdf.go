// Package report renders printable artefacts: the owner's daily agenda PDF and the shop QR code.
package report

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
)

const (
	qrImageName = "shop-qr"
	qrSideMM    = 35.0
)

var statusLabels = map[string]string{
	string(domain.StatusPending):   "In attesa",
	string(domain.StatusConfirmed): "Confermato",
	string(domain.StatusCompleted): "Completato",
	string(domain.StatusCancelled): "Annullato",
}

// AgendaPDF рендерит повестку дня на A4: шапка магазина, лента слотов, итоги и сводка.
// Непустой bookingURL печатается QR-кодом в правом верхнем углу.
func AgendaPDF(shop *domain.ShopSettings, agenda *models.AgendaResponse, bookingURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // встроенные шрифты работают в cp1252
	pdf.SetTitle(tr(fmt.Sprintf("Agenda %s - %s", agenda.Date, shop.Name)), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(shop.Name))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(shop.Address))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(shop.Phone))
	pdf.Ln(10)

	if bookingURL != "" {
		png, err := QRCodePNG(bookingURL, DefaultQRSize)
		if err != nil {
			return nil, err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
		pdf.ImageOptions(qrImageName, 165, 10, qrSideMM, qrSideMM, false, opts, 0, "")
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Agenda del "+agenda.Date))
	pdf.Ln(12)

	writeTimeline(pdf, tr, agenda.Timeline)
	pdf.Ln(6)
	writeStats(pdf, tr, agenda.Stats)

	if agenda.Summary != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, tr(agenda.Summary), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func writeTimeline(pdf *gofpdf.Fpdf, tr func(string) string, timeline []models.TimelineEntry) {
	widths := []float64{20, 55, 45, 45, 25}
	headers := []string{"Ora", "Cliente", "Telefono", "Servizio", "Stato"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range timeline {
		row := []string{e.Time, "", "", "", "Libero"}
		if e.Booking != nil {
			row = []string{
				e.Time,
				e.Booking.CustomerName,
				e.Booking.CustomerPhone,
				e.Booking.Service.Name,
				statusLabel(e.Booking.Status),
			}
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeStats(pdf *gofpdf.Fpdf, tr func(string) string, stats models.AgendaStats) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Riepilogo")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Appuntamenti: %d (in attesa %d, confermati %d, completati %d)",
			stats.Total, stats.Pending, stats.Confirmed, stats.Completed),
		fmt.Sprintf("Annullati: %d", stats.Cancelled),
		fmt.Sprintf("Incasso previsto: €%.2f", stats.ExpectedRevenue),
	}
	if stats.BusiestHour != "" {
		lines = append(lines, "Ora più affollata: "+stats.BusiestHour)
	}
	for _, l := range lines {
		pdf.Cell(0, 5, tr(l))
		pdf.Ln(5)
	}
}

func statusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// AgendaFilename имя файла для скачивания
func AgendaFilename(date string) string {
	return fmt.Sprintf("agenda-%s.pdf", date)
}
