package analyze_space

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных запроса
	ErrInvalidInput = errors.New("invalid input data")

	// ErrHoursUnavailable возвращается, когда не удалось получить операционные часы локации
	ErrHoursUnavailable = errors.New("failed to fetch location hours")

	// ErrBookingsUnavailable возвращается, когда не удалось получить бронирования пространства
	ErrBookingsUnavailable = errors.New("failed to fetch space bookings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
