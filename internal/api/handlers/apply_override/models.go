package apply_override

import (
	applyOverride "github.com/m04kA/massage-scheduler/internal/usecase/apply_override"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// OverrideRequest HTTP request model
type OverrideRequest struct {
	Date      string  `json:"date"` // по джалали
	Type      string  `json:"type"` // unavailable | custom_hours
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OverrideRequest) ToUseCaseRequest(therapistID int64) *applyOverride.Request {
	return &applyOverride.Request{
		TherapistID: therapistID,
		JalaliDate:  r.Date,
		Type:        r.Type,
		StartTime:   timeOf(r.StartTime),
		EndTime:     timeOf(r.EndTime),
		Reason:      r.Reason,
	}
}

func timeOf(s *string) *types.TimeString {
	if s == nil {
		return nil
	}
	t := types.TimeString(*s)
	return &t
}
