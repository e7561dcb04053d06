package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID uuid.UUID `json:"userId"`
	Status *string   `json:"status,omitempty"`
}

// GetAllBookingsRequest запрос администратора на получение всех бронирований
type GetAllBookingsRequest struct {
	BuildingID *uuid.UUID `json:"buildingId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAllBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		BuildingID: r.BuildingID,
		Date:       r.Date,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	SpotID     uuid.UUID `json:"spotId"`
	Date       string    `json:"date"`      // "2025-06-01"
	StartTime  string    `json:"startTime"` // "09:00"
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	EntryTime  *string   `json:"entryTime,omitempty"` // ISO 8601
	ExitTime   *string   `json:"exitTime,omitempty"`
	FineAmount *float64  `json:"fineAmount,omitempty"`
	QRCode     *string   `json:"qrCode,omitempty"`

	// Денормализованные данные
	SpotNumber   int        `json:"spotNumber,omitempty"`
	BuildingID   *uuid.UUID `json:"buildingId,omitempty"`
	BuildingCode string     `json:"buildingCode,omitempty"`
	BuildingName string     `json:"buildingName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO; spot и building могут быть nil
func FromDomainBooking(b *domain.Booking, spot *domain.Spot, building *domain.Building) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		SpotID:     b.SpotID,
		Date:       b.Window.Date.Format(domain.DateFormat),
		StartTime:  b.Window.Start.String(),
		EndTime:    b.Window.End.String(),
		Status:     string(b.Status),
		EntryTime:  formatTime(b.EntryTime),
		ExitTime:   formatTime(b.ExitTime),
		FineAmount: b.FineAmount,
		QRCode:     b.QRCode,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if spot != nil {
		resp.SpotNumber = spot.SpotNumber
		buildingID := spot.BuildingID
		resp.BuildingID = &buildingID
	}
	if building != nil {
		resp.BuildingCode = building.Code
		resp.BuildingName = building.Name
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
