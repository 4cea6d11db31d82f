package get_available_slots

import (
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// generateTimeSlots генерирует свободные начала внутри рабочего окна.
// Начала идут от открытия с шагом step; слот целиком помещается в окно,
// начинается строго после now и не пересекается с подтверждёнными записями.
//
// Примеры для окна 09:00-12:00, услуги 60 минут и записи 10:00-11:00:
// - 09:00 → свободно (граничит с записью)
// - 09:15 → занято (09:15-10:15 пересекается)
// - 11:00 → свободно
// - 11:15 → не помещается в окно
func generateTimeSlots(
	window domain.WorkingWindow,
	date time.Time,
	durationMinutes int,
	stepMinutes int,
	now time.Time,
	appointments []*domain.Appointment,
	loc *time.Location,
) ([]domain.AvailableSlot, error) {
	bounds, err := window.Bounds(date, loc)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(stepMinutes) * time.Minute

	slots := make([]domain.AvailableSlot, 0)
	for start := bounds.Start; !start.Add(duration).After(bounds.End); start = start.Add(step) {
		if !start.After(now) {
			continue
		}

		candidate := domain.TimeRange{Start: start, End: start.Add(duration)}
		if overlapsAny(candidate, appointments) {
			continue
		}

		slots = append(slots, domain.AvailableSlot{
			StartTime:       types.NewTimeString(candidate.Start.In(loc)),
			EndTime:         types.NewTimeString(candidate.End.In(loc)),
			DurationMinutes: durationMinutes,
		})
	}

	return slots, nil
}

// overlapsAny проверяет пересечение слота с занимающими время записями
func overlapsAny(candidate domain.TimeRange, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if !a.Status.BlocksTime() {
			continue
		}
		if candidate.Overlaps(a.Range()) {
			return true
		}
	}
	return false
}
