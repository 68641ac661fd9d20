package report

import "errors"

var (
	// ErrInvalidData возвращается при некорректном содержимом входного CSV
	ErrInvalidData = errors.New("report: invalid spaces file")

	// ErrNoResults возвращается при попытке записать пустой список результатов
	ErrNoResults = errors.New("report: no results to write")
)
