package apply_weekly_schedule

import (
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// DayRequest один день предлагаемого шаблона
type DayRequest struct {
	Weekday      int              // 0 = воскресенье ... 6 = суббота
	StartTime    types.TimeString // "09:00"
	EndTime      types.TimeString // "17:00"
	BreakMinutes int              // 0..120
	IsActive     bool
}

// Request полная замена недельного шаблона терапевта
type Request struct {
	TherapistID int64
	Days        []DayRequest
}
