package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/Rakesh-Biswal/reminder-service/internal/domain/user"
	"github.com/Rakesh-Biswal/reminder-service/internal/logger"
	"github.com/Rakesh-Biswal/reminder-service/internal/notification"
	userrepo "github.com/Rakesh-Biswal/reminder-service/internal/repository/user"
)

// userIDContextKey carries the authenticated user ID through echo's context.
const userIDContextKey = "userID"

// signupRequest is the signup payload.
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// signinRequest is the signin payload.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse carries the issued token and the public account fields.
type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

// userPayload is the public view of an account.
type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// handleSignup registers an account, sends the welcome SMS best-effort and
// returns a bearer token.
func (s *Server) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to hash password")
	}

	u, err := domain.New(req.Name, req.Email, hash, req.Phone, s.deps.Clock.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.deps.Users.Create(c.Request().Context(), u); err != nil {
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		}

		return echo.NewHTTPError(http.StatusInternalServerError, "unable to create user")
	}

	s.sendBestEffort(c, u.ID, u.Phone, notification.Welcome(u.Name))

	token, err := s.issueToken(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to issue token")
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    publicUser(u),
	})
}

// handleSignin verifies credentials and returns a bearer token.
func (s *Server) handleSignin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	u, err := s.deps.Users.FindByEmail(c.Request().Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to issue token")
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Signin successful",
		Token:   token,
		User:    publicUser(u),
	})
}

// requireAuth parses the bearer token and stores the user ID in the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}

		claims := jwt.RegisteredClaims{}

		parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
			return []byte(s.deps.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !parsed.Valid || claims.Subject == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(userIDContextKey, claims.Subject)

		return next(c)
	}
}

// issueToken signs a bearer token for the account.
func (s *Server) issueToken(u *domain.User) (string, error) {
	now := s.deps.Clock.Now()

	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.deps.TokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.deps.JWTSecret))
}

// authedUserID returns the user ID stored by requireAuth.
func authedUserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)

	return id
}

// publicUser strips credentials from an account record.
func publicUser(u *domain.User) userPayload {
	return userPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// sendBestEffort delivers a confirmation SMS without failing the request.
func (s *Server) sendBestEffort(c echo.Context, userID, destination string, msg notification.Message) {
	ctx := c.Request().Context()

	if destination == "" {
		logger.DebugKV(ctx, "Confirmation SMS skipped, no destination", "user_id", userID)
		return
	}

	if err := s.deps.Sender.Send(ctx, destination, msg); err != nil {
		logger.WarnKV(ctx, "Confirmation SMS failed",
			"user_id", userID, "kind", string(msg.Kind), "error", err)
	}
}
