package get_available_slots

import (
	"github.com/m04kA/massage-scheduler/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	TherapistID int64  // ID терапевта
	ServiceID   int64  // ID услуги, задаёт длительность слота
	JalaliDate  string // Дата по джалали ("1403-01-15" или "1403/01/15")
}

// Response модель ответа со списком свободных слотов
type Response struct {
	TherapistID     int64  `json:"therapistId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`          // по джалали
	GregorianDate   string `json:"gregorianDate"` // YYYY-MM-DD
	DurationMinutes int    `json:"durationMinutes"`
	StepMinutes     int    `json:"stepMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot свободное время начала
type Slot struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

func toSlots(slots []domain.AvailableSlot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{StartTime: s.StartTime.String(), EndTime: s.EndTime.String()})
	}
	return result
}
