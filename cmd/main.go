package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyOverrideHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/apply_override"
	applyWeeklyScheduleHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/apply_weekly_schedule"
	bookAppointmentHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/get_available_slots"
	getDayAppointmentsHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/get_day_appointments"
	getMonthAppointmentsHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/get_month_appointments"
	getWeeklyScheduleHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/get_weekly_schedule"
	listOverridesHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/list_overrides"
	updateAppointmentStatusHandler "github.com/m04kA/massage-scheduler/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/massage-scheduler/internal/api/middleware"
	"github.com/m04kA/massage-scheduler/internal/config"
	appointmentsService "github.com/m04kA/massage-scheduler/internal/service/appointments"
	"github.com/m04kA/massage-scheduler/internal/service/availability"
	schedulesService "github.com/m04kA/massage-scheduler/internal/service/schedules"
	applyOverrideUC "github.com/m04kA/massage-scheduler/internal/usecase/apply_override"
	applyWeeklyScheduleUC "github.com/m04kA/massage-scheduler/internal/usecase/apply_weekly_schedule"
	bookAppointmentUC "github.com/m04kA/massage-scheduler/internal/usecase/book_appointment"
	cancelAppointmentUC "github.com/m04kA/massage-scheduler/internal/usecase/cancel_appointment"
	getAvailableSlotsUC "github.com/m04kA/massage-scheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/massage-scheduler/pkg/clock"
	"github.com/m04kA/massage-scheduler/pkg/logger"
	"github.com/m04kA/massage-scheduler/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting massage-scheduler...")
	log.Info("Configuration loaded from %s (storage=%s, timezone=%s)",
		configPath, cfg.Storage.Driver, cfg.Booking.Timezone)

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	st, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer st.close()

	realClock := clock.Real{}

	// Инициализируем сервисы
	resolver := availability.NewResolver(st.schedules, cfg.Booking.DefaultOverrideBreakMinutes, log)
	overlaps := availability.NewOverlapDetector(st.appointments, log)
	appointmentSvc := appointmentsService.NewService(st.appointments, st.tx, realClock, loc, log)
	scheduleSvc := schedulesService.NewService(st.schedules, resolver, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		st.appointments,
		st.catalog,
		st.locker,
		resolver,
		overlaps,
		st.tx,
		realClock,
		metricsCollector,
		loc,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(st.appointments, st.tx, realClock, loc, log)
	applyWeeklyScheduleUseCase := applyWeeklyScheduleUC.NewUseCase(
		st.appointments,
		st.schedules,
		st.locker,
		st.tx,
		realClock,
		metricsCollector,
		cfg.Booking.DefaultOverrideBreakMinutes,
		loc,
		log,
	)
	applyOverrideUseCase := applyOverrideUC.NewUseCase(
		st.appointments,
		st.schedules,
		st.locker,
		st.tx,
		metricsCollector,
		cfg.Booking.DefaultOverrideBreakMinutes,
		loc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		st.appointments,
		st.catalog,
		resolver,
		realClock,
		cfg.Booking.SlotStepMinutes,
		loc,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getDayAppointments := getDayAppointmentsHandler.NewHandler(appointmentSvc, log)
	getMonthAppointments := getMonthAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(scheduleSvc, log)
	getWeeklySchedule := getWeeklyScheduleHandler.NewHandler(scheduleSvc, log)
	listOverrides := listOverridesHandler.NewHandler(scheduleSvc, log)
	applyWeeklySchedule := applyWeeklyScheduleHandler.NewHandler(applyWeeklyScheduleUseCase, loc, log)
	applyOverride := applyOverrideHandler.NewHandler(applyOverrideUseCase, loc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/therapists/{therapistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/schedule", getWeeklySchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/overrides", listOverrides.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/bulk-cancel", cancelAppointment.HandleBulk).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancellation-policy", cancelAppointment.HandlePolicy).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание терапевта ---
	protected.HandleFunc("/therapists/{therapistId}/appointments", getDayAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{therapistId}/appointments/monthly", getMonthAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{therapistId}/schedule", applyWeeklySchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/therapists/{therapistId}/schedule/preview", applyWeeklySchedule.HandlePreview).Methods(http.MethodPost)
	protected.HandleFunc("/therapists/{therapistId}/overrides", applyOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/therapists/{therapistId}/overrides/preview", applyOverride.HandlePreview).Methods(http.MethodPost)
	protected.HandleFunc("/therapists/{therapistId}/overrides/{date}", applyOverride.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
