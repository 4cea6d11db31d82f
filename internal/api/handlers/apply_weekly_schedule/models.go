package apply_weekly_schedule

import (
	applyWeeklySchedule "github.com/m04kA/massage-scheduler/internal/usecase/apply_weekly_schedule"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// WeeklyScheduleRequest HTTP request model: новый шаблон целиком
type WeeklyScheduleRequest struct {
	Days []ScheduleDayRequest `json:"days"`
}

// ScheduleDayRequest день шаблона
type ScheduleDayRequest struct {
	Weekday      int    `json:"weekday"`   // 0 = воскресенье
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "17:00"
	BreakMinutes int    `json:"breakMinutes"`
	IsActive     bool   `json:"isActive"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат времени проверяет use case.
func (r *WeeklyScheduleRequest) ToUseCaseRequest(therapistID int64) *applyWeeklySchedule.Request {
	days := make([]applyWeeklySchedule.DayRequest, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, applyWeeklySchedule.DayRequest{
			Weekday:      d.Weekday,
			StartTime:    types.TimeString(d.StartTime),
			EndTime:      types.TimeString(d.EndTime),
			BreakMinutes: d.BreakMinutes,
			IsActive:     d.IsActive,
		})
	}

	return &applyWeeklySchedule.Request{
		TherapistID: therapistID,
		Days:        days,
	}
}
