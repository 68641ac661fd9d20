package analyze_space

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Space.SpaceID == "" {
		return fmt.Errorf("%w: space ID is required", ErrInvalidInput)
	}

	if req.Space.LocationID == "" {
		return fmt.Errorf("%w: location ID is required", ErrInvalidInput)
	}

	if req.AnalysisStart.IsZero() {
		return fmt.Errorf("%w: analysis start is required", ErrInvalidInput)
	}

	if req.WindowWeeks <= 0 {
		return fmt.Errorf("%w: window must be positive", ErrInvalidInput)
	}

	// Hours API не отдаёт больше MaxHoursAPIDays дней за один запрос
	if req.WindowWeeks*7 > domain.MaxHoursAPIDays {
		return fmt.Errorf("%w: window of %d weeks exceeds %d-day hours limit",
			ErrInvalidInput, req.WindowWeeks, domain.MaxHoursAPIDays)
	}

	minDuration := time.Duration(domain.MinSlotDurationMinutes) * time.Minute
	maxDuration := time.Duration(domain.MaxSlotDurationMinutes) * time.Minute
	if req.SlotDuration < minDuration || req.SlotDuration > maxDuration {
		return fmt.Errorf("%w: slot duration must be between %v and %v", ErrInvalidInput, minDuration, maxDuration)
	}

	if req.Buffer < 0 || req.Buffer > time.Duration(domain.MaxBufferMinutes)*time.Minute {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	return nil
}
