package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/BarberBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// SlotResponse один слот сетки
type SlotResponse struct {
	Time      string `json:"time"` // "10:00"
	IsBooked  bool   `json:"isBooked"`
	IsPast    bool   `json:"isPast"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceID       string         `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	Duration        int            `json:"duration"`
	IntervalMinutes int            `json:"intervalMinutes"`
	Slots           []SlotResponse `json:"slots"`
	AvailableCount  int            `json:"availableCount"`
}

// ToUseCaseRequest формирует запрос к use case; date парсится как YYYY-MM-DD
func ToUseCaseRequest(serviceID, excludeBookingID, date string) (*getAvailableSlots.Request, error) {
	d, err := types.NewDateStringFromString(date)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		ServiceID:        serviceID,
		Date:             d,
		ExcludeBookingID: excludeBookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for i := range resp.Slots {
		s := resp.Slots[i]
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			IsBooked:  s.IsBooked,
			IsPast:    s.IsPast,
			Available: s.IsAvailable(),
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		ServiceID:       resp.Service.ID,
		ServiceName:     resp.Service.Name,
		Duration:        resp.Service.DurationMinutes,
		IntervalMinutes: resp.IntervalMinutes,
		Slots:           slots,
		AvailableCount:  resp.AvailableCount,
	}
}
