package notifier

import "errors"

var (
	// ErrInvalidNotification возвращается для пустого или слишком длинного заголовка, пустого текста
	ErrInvalidNotification = errors.New("notifier: invalid notification")

	// ErrDeliveryFailed возвращается, когда уведомление не удалось сохранить
	ErrDeliveryFailed = errors.New("notifier: failed to deliver notification")
)
