package apply_override

import (
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// Request исключение на одну дату
type Request struct {
	TherapistID int64
	JalaliDate  string            // "1403-01-15" или "1403/01/15"
	Type        string            // unavailable | custom_hours
	StartTime   *types.TimeString // только для custom_hours
	EndTime     *types.TimeString // только для custom_hours
	Reason      *string
}

// DeleteRequest удаление исключения на дату
type DeleteRequest struct {
	TherapistID int64
	JalaliDate  string
}
