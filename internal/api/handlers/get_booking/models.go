package get_booking

import (
	"github.com/m04kA/BarberBookingService/internal/calendar"
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
)

// ShopInfo контакты магазина для страницы подтверждения
type ShopInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// BookingViewResponse бронирование вместе со ссылками для клиента
type BookingViewResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Shop    ShopInfo                `json:"shop"`
	Links   calendar.Links          `json:"links"`
}

func toResponse(b *domain.Booking, s *domain.ShopSettings, links calendar.Links) *BookingViewResponse {
	return &BookingViewResponse{
		Booking: models.FromDomainBooking(b),
		Shop: ShopInfo{
			Name:    s.Name,
			Address: s.Address,
			Phone:   s.Phone,
		},
		Links: links,
	}
}
