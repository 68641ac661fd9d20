package libcal

import "errors"

var (
	// ErrMissingCredentials возвращается, когда OAuth-учётные данные не заданы
	ErrMissingCredentials = errors.New("libcal client: oauth credentials are not configured")

	// ErrUnauthorized возвращается, когда API отклонил учётные данные или токен
	ErrUnauthorized = errors.New("libcal client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("libcal client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе API
	ErrInvalidResponse = errors.New("libcal client: invalid response")
)
