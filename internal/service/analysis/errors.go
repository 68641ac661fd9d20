package analysis

import "errors"

var (
	// ErrNoSpaces список пространств для анализа пуст
	ErrNoSpaces = errors.New("analysis.service: no spaces to analyze")

	// ErrAllSpacesFailed ни одно пространство не удалось проанализировать
	ErrAllSpacesFailed = errors.New("analysis.service: all spaces failed")
)
