package summaryservice

// SummaryRequest тело запроса к сервису сводок
type SummaryRequest struct {
	Date     string           `json:"date"`
	Language string           `json:"language"`
	Prompt   string           `json:"prompt"`
	Bookings []BookingSummary `json:"bookings"`
}

// BookingSummary строка дневного расписания
type BookingSummary struct {
	Time         string `json:"time"`
	CustomerName string `json:"customerName"`
	ServiceName  string `json:"serviceName"`
}

// SummaryResponse ответ сервиса сводок
type SummaryResponse struct {
	Text string `json:"text"`
}
