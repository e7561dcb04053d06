package transition_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/transition_booking"
)

// TransitionRequest HTTP request model; тело необязательно
type TransitionRequest struct {
	FineAmount  *float64   `json:"fineAmount,omitempty"`  // только для fine
	EffectiveAt *time.Time `json:"effectiveAt,omitempty"` // только для entry и exit, RFC3339
}

// ScanRequest HTTP request model для терминала въезда/выезда
type ScanRequest struct {
	QRData      string     `json:"qrData"` // текст, считанный с QR-кода
	Event       string     `json:"event"`  // entry | exit
	EffectiveAt *time.Time `json:"effectiveAt,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	SpotID     uuid.UUID `json:"spotId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	EntryTime  *string   `json:"entryTime,omitempty"`
	ExitTime   *string   `json:"exitTime,omitempty"`
	FineAmount *float64  `json:"fineAmount,omitempty"`
	UpdatedAt  string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(bookingID uuid.UUID, event domain.BookingEvent, actor transitionBooking.Actor) *transitionBooking.Request {
	return &transitionBooking.Request{
		BookingID:   bookingID,
		Event:       event,
		Actor:       actor,
		FineAmount:  r.FineAmount,
		EffectiveAt: r.EffectiveAt,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		SpotID:     resp.SpotID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Status:     resp.Status,
		EntryTime:  formatTime(resp.EntryTime),
		ExitTime:   formatTime(resp.ExitTime),
		FineAmount: resp.FineAmount,
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
