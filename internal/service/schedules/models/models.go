package models

import (
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// Request модели

// ListOverridesRequest запрос исключений терапевта за период (даты по джалали, включительно)
type ListOverridesRequest struct {
	TherapistID int64   `json:"therapistId"`
	From        *string `json:"from,omitempty"`
	To          *string `json:"to,omitempty"`
}

// Response модели

// ScheduleDayResponse день недельного шаблона
type ScheduleDayResponse struct {
	ID           int64  `json:"id"`
	Weekday      int    `json:"weekday"` // 0 = воскресенье
	WeekdayName  string `json:"weekdayName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	BreakMinutes int    `json:"breakMinutes"`
	IsActive     bool   `json:"isActive"`
}

// WeeklyScheduleResponse недельный шаблон терапевта
type WeeklyScheduleResponse struct {
	TherapistID int64                 `json:"therapistId"`
	Days        []ScheduleDayResponse `json:"days"`
}

// OverrideResponse исключение на дату
type OverrideResponse struct {
	ID            int64     `json:"id"`
	TherapistID   int64     `json:"therapistId"`
	Date          string    `json:"date"`          // по джалали, "1403-01-15"
	GregorianDate string    `json:"gregorianDate"` // "2024-04-03"
	Type          string    `json:"type"`
	StartTime     *string   `json:"startTime,omitempty"`
	EndTime       *string   `json:"endTime,omitempty"`
	Reason        *string   `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OverrideListResponse список исключений
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// AvailabilityResponse рабочие часы терапевта на дату
type AvailabilityResponse struct {
	TherapistID  int64   `json:"therapistId"`
	Date         string  `json:"date"`
	Kind         string  `json:"kind"` // unavailable | override | weekly
	IsAvailable  bool    `json:"isAvailable"`
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
	BreakMinutes *int    `json:"breakMinutes,omitempty"`
}

// ConflictResponse запись, которая не помещается в новое расписание
type ConflictResponse struct {
	AppointmentID int64     `json:"appointmentId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	ClientName    *string   `json:"clientName,omitempty"`
	Reason        string    `json:"reason"`
}

// ConflictReportResponse результат предпросмотра изменения расписания
type ConflictReportResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// Методы конвертации

// FromDomainWeekly конвертирует недельный шаблон в DTO
func FromDomainWeekly(therapistID int64, days []domain.TherapistSchedule) *WeeklyScheduleResponse {
	resp := &WeeklyScheduleResponse{
		TherapistID: therapistID,
		Days:        make([]ScheduleDayResponse, 0, len(days)),
	}

	for _, d := range days {
		resp.Days = append(resp.Days, ScheduleDayResponse{
			ID:           d.ID,
			Weekday:      int(d.Weekday),
			WeekdayName:  d.Weekday.String(),
			StartTime:    d.StartTime.String(),
			EndTime:      d.EndTime.String(),
			BreakMinutes: d.BreakMinutes,
			IsActive:     d.IsActive,
		})
	}

	return resp
}

// FromDomainOverride конвертирует исключение в DTO
func FromDomainOverride(o *domain.ScheduleOverride) *OverrideResponse {
	if o == nil {
		return nil
	}

	resp := &OverrideResponse{
		ID:            o.ID,
		TherapistID:   o.TherapistID,
		Date:          o.JalaliDate,
		GregorianDate: o.Date.Format(domain.DateFormat),
		Type:          string(o.Type),
		StartTime:     timeStringPtr(o.StartTime),
		EndTime:       timeStringPtr(o.EndTime),
		Reason:        o.Reason,
		CreatedAt:     o.CreatedAt,
	}

	if resp.Date == "" {
		resp.Date = jalali.FromGregorian(o.Date).String()
	}

	return resp
}

// FromDomainOverrideList конвертирует список исключений в DTO
func FromDomainOverrideList(overrides []domain.ScheduleOverride) *OverrideListResponse {
	resp := &OverrideListResponse{
		Overrides: make([]OverrideResponse, 0, len(overrides)),
	}

	for i := range overrides {
		resp.Overrides = append(resp.Overrides, *FromDomainOverride(&overrides[i]))
	}

	return resp
}

// FromDomainAvailability конвертирует доступность на дату в DTO
func FromDomainAvailability(therapistID int64, date time.Time, a domain.Availability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		TherapistID: therapistID,
		Date:        jalali.FromGregorian(date).String(),
		Kind:        string(a.Kind),
		IsAvailable: a.IsAvailable(),
	}

	if a.Window != nil {
		start := a.Window.Start.String()
		end := a.Window.End.String()
		breakMinutes := a.Window.BreakMinutes
		resp.StartTime = &start
		resp.EndTime = &end
		resp.BreakMinutes = &breakMinutes
	}

	return resp
}

// FromDomainConflicts конвертирует список конфликтов в DTO
func FromDomainConflicts(conflicts []domain.Conflict, loc *time.Location) *ConflictReportResponse {
	resp := &ConflictReportResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    make([]ConflictResponse, 0, len(conflicts)),
	}

	for _, c := range conflicts {
		start := c.StartsAt.In(loc)
		end := c.EndsAt.In(loc)
		resp.Conflicts = append(resp.Conflicts, ConflictResponse{
			AppointmentID: c.AppointmentID,
			Date:          jalali.FromGregorian(start).String(),
			StartTime:     types.NewTimeString(start).String(),
			EndTime:       types.NewTimeString(end).String(),
			StartsAt:      start,
			EndsAt:        end,
			ClientName:    c.ClientName,
			Reason:        string(c.Reason),
		})
	}

	return resp
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
