package book_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/domain"
	applyOverride "github.com/m04kA/massage-scheduler/internal/usecase/apply_override"
	applyWeeklySchedule "github.com/m04kA/massage-scheduler/internal/usecase/apply_weekly_schedule"
	"github.com/m04kA/massage-scheduler/pkg/logger"
	"github.com/m04kA/massage-scheduler/pkg/ptr"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

const raceRounds = 50

// race запускает запись и изменение расписания одновременно и возвращает обе ошибки
func race(f *fixture, start string, change func() error) (bookErr, changeErr error) {
	var (
		wg    sync.WaitGroup
		ready = make(chan struct{})
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-ready
		_, bookErr = f.book(service60, start)
	}()
	go func() {
		defer wg.Done()
		<-ready
		changeErr = change()
	}()
	close(ready)
	wg.Wait()
	return bookErr, changeErr
}

func TestExecute_SerializedWithOverride(t *testing.T) {
	for i := 0; i < raceRounds; i++ {
		f := newFixture(t)
		overrides := applyOverride.NewUseCase(f.store.Appointments(), f.store.Schedules(), f.store, f.store, nil,
			domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop())

		bookErr, overrideErr := race(f, "13:00", func() error {
			_, err := overrides.Execute(context.Background(), &applyOverride.Request{
				TherapistID: therapistID,
				JalaliDate:  mondayJalali,
				Type:        "custom_hours",
				StartTime:   ptr.Ptr(types.TimeString("09:00")),
				EndTime:     ptr.Ptr(types.TimeString("12:00")),
			})
			return err
		})

		// ровно одна операция проходит, вторая видит результат первой
		if bookErr == nil {
			require.ErrorIs(t, overrideErr, applyOverride.ErrOverrideConflict, "round %d", i)
		} else {
			require.ErrorIs(t, bookErr, ErrOutsideWorkingHours, "round %d", i)
			require.NoError(t, overrideErr, "round %d", i)
		}

		all, err := f.store.Appointments().List(context.Background(), domain.AppointmentFilter{TherapistID: therapistID, OnlyBlocking: true})
		require.NoError(t, err)
		_, err = f.store.Schedules().GetOverride(context.Background(), therapistID, time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC))
		assert.True(t, (len(all) == 1) != (err == nil), "round %d: booking and override never coexist", i)
	}
}

func TestExecute_SerializedWithWeeklySchedule(t *testing.T) {
	for i := 0; i < raceRounds; i++ {
		f := newFixture(t)
		weekly := applyWeeklySchedule.NewUseCase(f.store.Appointments(), f.store.Schedules(), f.store, f.store, f.clock, nil,
			domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop())

		// новый шаблон без понедельника
		bookErr, weeklyErr := race(f, "13:00", func() error {
			_, err := weekly.Execute(context.Background(), &applyWeeklySchedule.Request{
				TherapistID: therapistID,
				Days: []applyWeeklySchedule.DayRequest{
					{Weekday: 2, StartTime: "09:00", EndTime: "17:00", IsActive: true},
				},
			})
			return err
		})

		if bookErr == nil {
			require.ErrorIs(t, weeklyErr, applyWeeklySchedule.ErrScheduleConflict, "round %d", i)
		} else {
			require.ErrorIs(t, bookErr, ErrOutsideWorkingHours, "round %d", i)
			require.NoError(t, weeklyErr, "round %d", i)
		}

		days, err := f.store.Schedules().GetWeekly(context.Background(), therapistID)
		require.NoError(t, err)
		require.Len(t, days, 1)
		mondayKept := days[0].Weekday == domain.Monday
		assert.Equal(t, bookErr == nil, mondayKept, "round %d", i)
	}
}
