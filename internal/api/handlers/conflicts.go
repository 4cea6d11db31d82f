package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
)

// RespondScheduleConflict пишет 409 со списком записей, мешающих изменению расписания.
// Возвращает false, если err не несёт *domain.ConflictError.
func RespondScheduleConflict(w http.ResponseWriter, message string, err error, loc *time.Location) bool {
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		return false
	}
	RespondConflict(w, message, models.FromDomainConflicts(conflictErr.Conflicts, loc).Conflicts)
	return true
}
