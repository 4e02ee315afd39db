package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/reminder"
	"github.com/Rakesh-Biswal/reminder-service/internal/logger"
	"github.com/Rakesh-Biswal/reminder-service/internal/notification"
	reminderrepo "github.com/Rakesh-Biswal/reminder-service/internal/repository/reminder"
)

// reminderRequest is the create/update payload. The expiry instant is
// RFC 3339 and canonicalized to UTC at this boundary; nothing downstream
// ever re-shifts it.
type reminderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ExpiryDate  string `json:"expiryDate"`
}

// parseExpiry parses the RFC 3339 expiry instant into UTC.
func parseExpiry(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}

// handleCreateReminder stores a new active reminder and confirms by SMS
// best-effort.
func (s *Server) handleCreateReminder(c echo.Context) error {
	ownerID := authedUserID(c)

	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if req.Name == "" || req.ExpiryDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and expiry date are required")
	}

	expiresAt, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expiry date must be RFC 3339")
	}

	rec, err := domain.New(ownerID, req.Name, req.Description, req.Category, expiresAt, s.deps.Clock.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.deps.Reminders.Create(c.Request().Context(), rec); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to create reminder")
	}

	s.confirmBySMS(c, ownerID, notification.ReminderCreated(rec.Name, rec.ExpiresAt))

	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Reminder created successfully",
		"reminder": rec,
	})
}

// handleListReminders returns the owner's reminders, newest first.
func (s *Server) handleListReminders(c echo.Context) error {
	records, err := s.deps.Reminders.ListByOwner(c.Request().Context(), authedUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to list reminders")
	}

	if records == nil {
		records = []domain.Reminder{}
	}

	return c.JSON(http.StatusOK, map[string]any{"reminders": records})
}

// handleGetReminder returns one reminder scoped to its owner.
func (s *Server) handleGetReminder(c echo.Context) error {
	rec, err := s.deps.Reminders.Get(c.Request().Context(), c.Param("id"), authedUserID(c))
	if err != nil {
		if errors.Is(err, reminderrepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to get reminder")
	}

	return c.JSON(http.StatusOK, map[string]any{"reminder": rec})
}

// handleUpdateReminder replaces the editable fields of a reminder. The
// status field is owned by the owner's completion action and the sweep
// engine; this endpoint accepts only a completion, never a revival.
func (s *Server) handleUpdateReminder(c echo.Context) error {
	ownerID := authedUserID(c)

	rec, err := s.deps.Reminders.Get(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to get reminder")
	}

	var req struct {
		reminderRequest

		Status string `json:"status"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if req.Name != "" {
		rec.Name = req.Name
	}

	if req.Description != "" {
		rec.Description = req.Description
	}

	if req.Category != "" {
		rec.Category = req.Category
	}

	if req.ExpiryDate != "" {
		expiresAt, err := parseExpiry(req.ExpiryDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "expiry date must be RFC 3339")
		}

		rec.ExpiresAt = expiresAt
	}

	if req.Status != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		if status != rec.Status {
			if !domain.CanTransition(rec.Status, status) {
				return echo.NewHTTPError(http.StatusBadRequest, "illegal status transition")
			}

			rec.Status = status
		}
	}

	rec.UpdatedAt = s.deps.Clock.Now()

	if err := s.deps.Reminders.Update(c.Request().Context(), rec); err != nil {
		if errors.Is(err, reminderrepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to update reminder")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Reminder updated successfully",
		"reminder": rec,
	})
}

// handleDeleteReminder removes a reminder and confirms by SMS best-effort.
func (s *Server) handleDeleteReminder(c echo.Context) error {
	ownerID := authedUserID(c)

	rec, err := s.deps.Reminders.Get(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to get reminder")
	}

	if err := s.deps.Reminders.Delete(c.Request().Context(), rec.ID, ownerID); err != nil {
		if errors.Is(err, reminderrepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reminder not found")
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to delete reminder")
	}

	s.confirmBySMS(c, ownerID, notification.ReminderDeleted(rec.Name))

	return c.JSON(http.StatusOK, map[string]any{"message": "Reminder deleted successfully"})
}

// confirmBySMS resolves the owner's destination and delivers best-effort.
func (s *Server) confirmBySMS(c echo.Context, ownerID string, msg notification.Message) {
	destination, err := s.deps.Users.FindNotificationDestination(c.Request().Context(), ownerID)
	if err != nil {
		logger.DebugKV(c.Request().Context(), "Confirmation SMS skipped",
			"user_id", ownerID, "kind", string(msg.Kind), "error", err)

		return
	}

	s.sendBestEffort(c, ownerID, destination, msg)
}
