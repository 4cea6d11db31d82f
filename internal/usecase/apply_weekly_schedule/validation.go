package apply_weekly_schedule

import (
	"fmt"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// validateRequest проверяет шаблон и возвращает строки для сохранения.
// Сохраняются только активные дни: отсутствие строки означает выходной.
func validateRequest(req *Request) ([]domain.TherapistSchedule, error) {
	if req.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	seen := make(map[domain.Weekday]bool, len(req.Days))
	days := make([]domain.TherapistSchedule, 0, len(req.Days))

	for _, d := range req.Days {
		weekday, err := domain.ParseWeekday(d.Weekday)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if seen[weekday] {
			return nil, fmt.Errorf("%w: weekday %s is listed twice", ErrInvalidInput, weekday)
		}
		seen[weekday] = true

		if !d.IsActive {
			continue
		}

		if err := validateDay(weekday, d); err != nil {
			return nil, err
		}

		days = append(days, domain.TherapistSchedule{
			TherapistID:  req.TherapistID,
			Weekday:      weekday,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			BreakMinutes: d.BreakMinutes,
			IsActive:     true,
		})
	}

	return days, nil
}

// validateDay проверяет рабочее окно активного дня
func validateDay(weekday domain.Weekday, d DayRequest) error {
	start, err := d.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s startTime: %v", ErrInvalidInput, weekday, err)
	}
	end, err := d.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %s endTime: %v", ErrInvalidInput, weekday, err)
	}

	if end <= start {
		return fmt.Errorf("%w: %s %s-%s", ErrInvalidTimeRange, weekday, d.StartTime, d.EndTime)
	}

	if end-start < domain.MinWorkingWindowMinutes {
		return fmt.Errorf("%w: %s window must be at least %d minutes",
			ErrInvalidInput, weekday, domain.MinWorkingWindowMinutes)
	}

	if d.BreakMinutes < 0 || d.BreakMinutes > domain.MaxBreakMinutes {
		return fmt.Errorf("%w: %s break must be between 0 and %d minutes",
			ErrInvalidInput, weekday, domain.MaxBreakMinutes)
	}

	return nil
}
