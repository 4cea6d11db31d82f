package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// Request модели

// ListByDateRequest запрос записей терапевта на дату
type ListByDateRequest struct {
	TherapistID int64   `json:"therapistId"`
	JalaliDate  string  `json:"date"`             // "1403-01-15" или "1403/01/15"
	Status      *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ListByMonthRequest запрос записей терапевта за месяц по джалали
type ListByMonthRequest struct {
	TherapistID int64   `json:"therapistId"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Status      *string `json:"status,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса (completed / no_show)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64           `json:"id"`
	TherapistID     int64           `json:"therapistId"`
	ServiceID       int64           `json:"serviceId"`
	ClientName      *string         `json:"clientName,omitempty"`
	ClientPhone     *string         `json:"clientPhone,omitempty"`
	ClientEmail     *string         `json:"clientEmail,omitempty"`
	JalaliDate      string          `json:"date"`      // "1403-01-15"
	StartTime       string          `json:"startTime"` // "10:00"
	EndTime         string          `json:"endTime"`   // "11:00"
	StartsAt        time.Time       `json:"startsAt"`
	EndsAt          time.Time       `json:"endsAt"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Дата и время приводятся к часовому поясу салона.
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	start := a.StartsAt.In(loc)
	end := a.EndsAt.In(loc)

	resp := &AppointmentResponse{
		ID:                 a.ID,
		TherapistID:        a.TherapistID,
		ServiceID:          a.ServiceID,
		ClientName:         a.Client.Name,
		ClientPhone:        a.Client.Phone,
		ClientEmail:        a.Client.Email,
		JalaliDate:         jalali.FromGregorian(start).String(),
		StartTime:          types.NewTimeString(start).String(),
		EndTime:            types.NewTimeString(end).String(),
		StartsAt:           start,
		EndsAt:             end,
		DurationMinutes:    a.DurationMinutes,
		Price:              a.Price,
		Status:             string(a.Status),
		CancellationReason: a.CancellationReason,
		CancelledBy:        a.CancelledBy,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.In(loc).Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if r := FromDomainAppointment(a, loc); r != nil {
			resp.Appointments = append(resp.Appointments, *r)
		}
	}

	return resp
}
