package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skotchmaster/storefront/internal/events"
	"github.com/skotchmaster/storefront/internal/logging"
	"github.com/skotchmaster/storefront/internal/middleware"
	"github.com/skotchmaster/storefront/internal/service"
	"github.com/skotchmaster/storefront/internal/tokens"
	"github.com/skotchmaster/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Signup(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_error", "status", 400, "reason", "missing username or password")
			return echo.NewHTTPError(http.StatusBadRequest, "Username & password required")
		case errors.Is(err, service.ErrUserExists):
			l.Warn("signup_error", "status", 400, "reason", "duplicate username")
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		default:
			l.Error("signup_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
		}
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("signup_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// same message for unknown user and wrong password
			l.Warn("login_failed", "status", 400)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	h.publish(c, req.Username, map[string]any{
		"type":     "user_logged_in",
		"username": req.Username,
	})

	l.Info("login_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// Me returns the claims of the verified session token. It sits behind
// RequireAuth and demonstrates the token consumer contract.
func (h *AuthHTTP) Me(c echo.Context) error {
	claims, ok := c.Get(middleware.ClaimsKey).(*tokens.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":       claims.UserID,
		"username": claims.Username,
	})
}
