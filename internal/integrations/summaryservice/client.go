package summaryservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

const summaryPrompt = "Sei l'assistente virtuale di una barberia. Fornisci un riassunto brevissimo (massimo 2 frasi) " +
	"per il barbiere: quanti clienti ci sono, qual è l'orario più affollato e un augurio di buon lavoro."

// Client клиент внешнего сервиса текстовых сводок дня
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса сводок
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSummary запрашивает сводку по бронированиям дня
func (c *Client) GetSummary(ctx context.Context, date types.DateString, bookings []*domain.Booking) (string, error) {
	payload := SummaryRequest{
		Date:     date.String(),
		Language: "it",
		Prompt:   summaryPrompt,
		Bookings: make([]BookingSummary, 0, len(bookings)),
	}
	for _, b := range bookings {
		payload.Bookings = append(payload.Bookings, BookingSummary{
			Time:         b.Time.String(),
			CustomerName: b.CustomerName,
			ServiceName:  b.Service.Name,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v1/summaries", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("%w: empty summary", ErrInvalidResponse)
	}

	return out.Text, nil
}

// Summarize получает сводку с graceful degradation: любая ошибка превращается в ErrServiceDegraded,
// и сводка строится локально
func (c *Client) Summarize(ctx context.Context, date types.DateString, bookings []*domain.Booking) (string, error) {
	c.log.Info("Fetching summary for date=%s, %d bookings", date, len(bookings))

	text, err := c.GetSummary(ctx, date, bookings)
	if err != nil {
		c.log.Error("SummaryService unavailable, applying graceful degradation for date=%s: %v", date, err)
		return "", fmt.Errorf("%w: date=%s, error=%v", ErrServiceDegraded, date, err)
	}

	return text, nil
}
