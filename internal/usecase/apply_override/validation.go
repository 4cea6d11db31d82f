package apply_override

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
)

// buildOverride проверяет запрос и собирает исключение
func buildOverride(req *Request) (*domain.ScheduleOverride, error) {
	if req.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	date, err := parseDate(req.JalaliDate)
	if err != nil {
		return nil, err
	}

	overrideType, err := domain.ParseOverrideType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxOverrideReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxOverrideReasonLength)
	}

	override := &domain.ScheduleOverride{
		TherapistID: req.TherapistID,
		Date:        date,
		JalaliDate:  jalali.FromGregorian(date).String(),
		Type:        overrideType,
		Reason:      req.Reason,
	}

	switch overrideType {
	case domain.OverrideCustomHours:
		if req.StartTime == nil || req.EndTime == nil {
			return nil, fmt.Errorf("%w: custom_hours requires startTime and endTime", ErrInvalidInput)
		}
		start, err := req.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		end, err := req.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
		if end <= start {
			return nil, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, *req.StartTime, *req.EndTime)
		}
		override.StartTime = req.StartTime
		override.EndTime = req.EndTime
	case domain.OverrideUnavailable:
		// время для выходного не хранится
	}

	return override, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := jalali.JalaliToGregorian(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return date, nil
}
