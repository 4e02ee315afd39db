package alarmflag

import (
	"context"
	"errors"

	"github.com/Rakesh-Biswal/reminder-service/internal/domain/alarm"
)

// ErrNotFound is returned when the slot has never been written.
var ErrNotFound = errors.New("alarm flag not found")

// Repository defines the operations on the shared alarm flag slot.
type Repository interface {
	Set(ctx context.Context, flag alarm.Flag) error
	Get(ctx context.Context) (alarm.Flag, error)
}
