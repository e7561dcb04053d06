package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	goqrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize сторона PNG в пикселях
	DefaultSize = 256

	dataURLPrefix = "data:image/png;base64,"
)

// Encoder кодирует payload бронирования в PNG data URL
type Encoder struct {
	size  int
	level goqrcode.RecoveryLevel
}

// NewEncoder создает энкодер; size <= 0 означает DefaultSize
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{size: size, level: goqrcode.Medium}
}

// Encode возвращает ссылку вида data:image/png;base64,...
func (e *Encoder) Encode(data BookingQRData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: marshal payload: %v", ErrEncode, err)
	}

	png, err := goqrcode.Encode(string(raw), e.level, e.size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// Parse разбирает текст, считанный с QR-кода
func Parse(raw string) (*BookingQRData, error) {
	var data BookingQRData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if _, err := uuid.Parse(data.BookingID); err != nil {
		return nil, fmt.Errorf("%w: bookingId: %v", ErrInvalidPayload, err)
	}
	return &data, nil
}

// ParseBookingID разбирает текст QR-кода и возвращает ID бронирования
func ParseBookingID(raw string) (uuid.UUID, error) {
	data, err := Parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(data.BookingID), nil
}
