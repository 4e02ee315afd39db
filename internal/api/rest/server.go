package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Rakesh-Biswal/reminder-service/internal/clock"
	"github.com/Rakesh-Biswal/reminder-service/internal/notification"
	"github.com/Rakesh-Biswal/reminder-service/internal/repository/alarmflag"
	reminderrepo "github.com/Rakesh-Biswal/reminder-service/internal/repository/reminder"
	userrepo "github.com/Rakesh-Biswal/reminder-service/internal/repository/user"
)

// Deps bundles the collaborators of the HTTP surface.
type Deps struct {
	// Clock supplies request timestamps.
	Clock clock.Clock
	// Users is the account repository.
	Users userrepo.Repository
	// Reminders is the reminder repository.
	Reminders reminderrepo.Repository
	// Flags is the read side of the alarm flag slot.
	Flags alarmflag.Repository
	// Sender delivers confirmation SMS, best-effort.
	Sender notification.Sender
	// JWTSecret signs bearer tokens.
	JWTSecret string
	// TokenTTL is the bearer token lifetime.
	TokenTTL time.Duration
}

// Server holds the handler state.
type Server struct {
	deps Deps
}

// NewServer creates the handler set over the provided collaborators.
func NewServer(deps Deps) *Server {
	return &Server{deps: deps}
}

// Register mounts all routes on the provided echo instance.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", s.handleHealth)
	api.GET("/alarm", s.handleAlarmFlag)

	auth := api.Group("/auth")
	auth.POST("/signup", s.handleSignup)
	auth.POST("/signin", s.handleSignin)

	reminders := api.Group("/reminders", s.requireAuth)
	reminders.POST("", s.handleCreateReminder)
	reminders.GET("", s.handleListReminders)
	reminders.GET("/:id", s.handleGetReminder)
	reminders.PUT("/:id", s.handleUpdateReminder)
	reminders.DELETE("/:id", s.handleDeleteReminder)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Server is running"})
}
