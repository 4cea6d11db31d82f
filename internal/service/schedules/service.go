package schedules

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
	"github.com/m04kA/massage-scheduler/pkg/jalali"
)

// Service сервис чтения расписания терапевта
type Service struct {
	scheduleRepo ScheduleRepository
	resolver     AvailabilityResolver
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, resolver AvailabilityResolver, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// GetWeeklySchedule возвращает недельный шаблон терапевта
func (s *Service) GetWeeklySchedule(ctx context.Context, therapistID int64) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("GetWeeklySchedule: therapist=%d", therapistID)

	if therapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	days, err := s.scheduleRepo.GetWeekly(ctx, therapistID)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: repository error for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainWeekly(therapistID, days), nil
}

// ListOverrides возвращает исключения терапевта за период
func (s *Service) ListOverrides(ctx context.Context, req *models.ListOverridesRequest) (*models.OverrideListResponse, error) {
	s.logger.Info("ListOverrides: therapist=%d, from=%v, to=%v", req.TherapistID, req.From, req.To)

	if req.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	from, err := parseOptionalDate(req.From)
	if err != nil {
		s.logger.Warn("ListOverrides: invalid from=%v: %v", req.From, err)
		return nil, err
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		s.logger.Warn("ListOverrides: invalid to=%v: %v", req.To, err)
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	overrides, err := s.scheduleRepo.ListOverrides(ctx, req.TherapistID, from, to)
	if err != nil {
		s.logger.Error("ListOverrides: repository error for therapist=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainOverrideList(overrides), nil
}

// GetAvailability возвращает рабочие часы терапевта на дату по джалали
func (s *Service) GetAvailability(ctx context.Context, therapistID int64, jalaliDate string) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: therapist=%d, date=%s", therapistID, jalaliDate)

	if therapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	date, err := jalali.JalaliToGregorian(jalaliDate)
	if err != nil {
		s.logger.Warn("GetAvailability: invalid date=%q: %v", jalaliDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	availability, err := s.resolver.Resolve(ctx, therapistID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - resolve: %w", ErrInternal, err)
	}

	return models.FromDomainAvailability(therapistID, date, availability), nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	date, err := jalali.JalaliToGregorian(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return &date, nil
}
