package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/massage-scheduler/internal/config"
	"github.com/m04kA/massage-scheduler/internal/domain"
	appointmentRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/catalog"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/locks"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/memory"
	scheduleRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/schedule"
	"github.com/m04kA/massage-scheduler/pkg/dbmetrics"
	"github.com/m04kA/massage-scheduler/pkg/logger"
	"github.com/m04kA/massage-scheduler/pkg/metrics"
	"github.com/m04kA/massage-scheduler/pkg/txmanager"
)

type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
}

type scheduleStore interface {
	GetWeekly(ctx context.Context, therapistID int64) ([]domain.TherapistSchedule, error)
	DeleteWeekly(ctx context.Context, therapistID int64) error
	CreateWeekly(ctx context.Context, therapistID int64, days []domain.TherapistSchedule) error
	GetOverride(ctx context.Context, therapistID int64, date time.Time) (*domain.ScheduleOverride, error)
	ListOverrides(ctx context.Context, therapistID int64, from, to *time.Time) ([]domain.ScheduleOverride, error)
	CreateOverride(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
	DeleteOverride(ctx context.Context, therapistID int64, date time.Time) (bool, error)
}

type catalogStore interface {
	GetActiveService(ctx context.Context, therapistID, serviceID int64) (*domain.TherapistService, error)
}

type locker interface {
	LockTherapistShared(ctx context.Context, therapistID int64) error
	LockTherapistExclusive(ctx context.Context, therapistID int64) error
	LockTherapistDay(ctx context.Context, therapistID int64, day time.Time) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории, блокировки и транзакции выбранного драйвера
type storage struct {
	appointments appointmentStore
	schedules    scheduleStore
	catalog      catalogStore
	locker       locker
	tx           txManager
	close        func() error
}

func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return openMemory(cfg, log), nil
	}
	return openPostgres(cfg, m, stopCh, log)
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка только проксирует вызовы
	wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)
	if m != nil {
		log.Info("Database metrics collection started")
	}

	return &storage{
		appointments: appointmentRepo.NewRepository(wrapped),
		schedules:    scheduleRepo.NewRepository(wrapped),
		catalog:      catalogRepo.NewRepository(wrapped),
		locker:       locks.NewLocker(),
		tx:           txmanager.NewTransactionManager(wrapped),
		close:        db.Close,
	}, nil
}

func openMemory(cfg *config.Config, log *logger.Logger) *storage {
	store := memory.NewStore()
	for _, s := range cfg.Storage.Services {
		store.SeedService(domain.TherapistService{
			TherapistID:     s.TherapistID,
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			IsActive:        s.IsActive,
		})
	}
	log.Warn("Using in-memory storage with %d catalog services: data is lost on restart", len(cfg.Storage.Services))

	return &storage{
		appointments: store.Appointments(),
		schedules:    store.Schedules(),
		catalog:      store.Catalog(),
		locker:       store,
		tx:           store,
		close:        func() error { return nil },
	}
}
