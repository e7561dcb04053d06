package qrcode

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingQRData содержимое QR-кода бронирования, его считывает терминал на въезде
type BookingQRData struct {
	BookingID string `json:"bookingId"`
	SpotID    string `json:"spotId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	UserID    string `json:"userId"`
}

// NewBookingQRData собирает payload по бронированию
func NewBookingQRData(b *domain.Booking) BookingQRData {
	return BookingQRData{
		BookingID: b.ID.String(),
		SpotID:    b.SpotID.String(),
		Date:      b.Window.Date.Format(domain.DateFormat),
		StartTime: b.Window.Start.String(),
		EndTime:   b.Window.End.String(),
		UserID:    b.UserID.String(),
	}
}
