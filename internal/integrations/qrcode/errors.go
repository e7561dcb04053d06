package qrcode

import "errors"

var (
	// ErrEncode возвращается при ошибке генерации изображения
	ErrEncode = errors.New("qrcode: failed to generate QR code")

	// ErrInvalidPayload возвращается, когда содержимое QR-кода не разбирается
	ErrInvalidPayload = errors.New("qrcode: invalid payload")
)
