package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/lock"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

// scheduleGuard runs a check-then-write inside one store transaction,
// optionally wrapped in the distributed lock of the schedule it touches.
type scheduleGuard struct {
	repo   domain.AppointmentStore
	locker lock.Locker
}

func newScheduleGuard(repo domain.AppointmentStore, locker lock.Locker) scheduleGuard {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return scheduleGuard{repo: repo, locker: locker}
}

// run holds the lock named key (none when key is empty) across the
// transaction and maps lock contention and constraint violations to
// conflict errors.
func (g scheduleGuard) run(
	ctx context.Context,
	key string,
	fn func(ctx context.Context, tx domain.AppointmentStore) error,
) error {

	inTx := func(ctx context.Context) error {
		return g.repo.Transaction(ctx, func(tx domain.AppointmentStore) error {
			return fn(ctx, tx)
		})
	}

	var err error
	if key == "" {
		err = inTx(ctx)
	} else {
		err = g.locker.WithScheduleLock(ctx, key, inTx)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, lock.ErrLockNotAcquired):
		return httperr.ErrConflict("time", "schedule_busy")
	case httperr.IsExclusionConflict(err):
		return httperr.ErrConflict("time", "time_conflict")
	}
	return err
}

func scheduleKey(ap *models.Appointment) string {
	return lock.Key(ap.Date, domain.ResourceOf(ap.AssignedTo).Key())
}
