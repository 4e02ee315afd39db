package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Rakesh-Biswal/reminder-service/internal/domain/alarm"
	"github.com/Rakesh-Biswal/reminder-service/internal/repository/alarmflag"
)

// alarmResponse is what the buzzer client and the frontend poll.
type alarmResponse struct {
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// handleAlarmFlag returns the current alarm flag. A slot that was never
// written reads as the silent default.
func (s *Server) handleAlarmFlag(c echo.Context) error {
	flag, err := s.deps.Flags.Get(c.Request().Context())
	if err != nil {
		if errors.Is(err, alarmflag.ErrNotFound) {
			return c.JSON(http.StatusOK, alarmResponse{Status: string(alarm.StateExpired)})
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to read alarm flag")
	}

	resp := alarmResponse{Status: string(flag.State)}
	if !flag.UpdatedAt.IsZero() {
		resp.UpdatedAt = flag.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return c.JSON(http.StatusOK, resp)
}
