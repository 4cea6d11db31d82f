package domain

import "github.com/m04kA/massage-scheduler/pkg/types"

// AvailableSlot a free start time for a service of the given duration
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
