package cancel_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// validateRequest валидирует запрос на отмену
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	return validateReason(req.Reason)
}

// validateBulkRequest валидирует запрос на массовую отмену
func validateBulkRequest(req *BulkRequest) error {
	if len(req.AppointmentIDs) == 0 {
		return fmt.Errorf("%w: appointmentIds must not be empty", ErrInvalidInput)
	}
	if len(req.AppointmentIDs) > domain.MaxBulkCancelSize {
		return fmt.Errorf("%w: at most %d appointments per request", ErrInvalidInput, domain.MaxBulkCancelSize)
	}
	return validateReason(req.Reason)
}

func validateReason(reason string) error {
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

// uniqueIDs убирает повторы, сохраняя порядок
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
