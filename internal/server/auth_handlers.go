package server

import (
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// credentialsRequest carries the register and login form fields. BodyParser
// accepts both form-encoded and JSON bodies.
type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterPage handles GET /register
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "register",
		"msg":  c.Query("msg"),
	})
}

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithMessage(c, "/register", "Invalid request body")
	}

	user, err := s.authService.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			middleware.Logger.InfoContext(c.UserContext(), "registration rejected",
				"username", req.Username, "code", appErr.Code)
			return redirectWithMessage(c, "/register", appErr.Message)
		}
		return respondError(c, err)
	}

	if err := s.sessions.Issue(c, user.ID); err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"user_id", user.ID, "username", user.Username)
	return redirectWithMessage(c, "/", fmt.Sprintf("Welcome %s!", user.Username))
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "login",
		"msg":  c.Query("msg"),
	})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWithMessage(c, "/login", "Invalid request body")
	}

	user, err := s.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			reason := "unknown_user"
			if appErr.Code == models.CodeInvalidCredentials {
				reason = "bad_password"
			}
			middleware.LoginFailures.WithLabelValues(reason).Inc()
			middleware.Logger.InfoContext(c.UserContext(), "login failed",
				"username", req.Username, "reason", reason)
			return redirectWithMessage(c, "/login", appErr.Message)
		}
		return respondError(c, err)
	}

	if err := s.sessions.Issue(c, user.ID); err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		"user_id", user.ID, "username", user.Username)
	return redirectWithMessage(c, "/", fmt.Sprintf("Welcome back, %s!", user.Username))
}

// LogoutPage handles GET /logout
func (s *Server) LogoutPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "logout",
		"user": currentUser(c).Username,
	})
}

// Logout handles POST /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Clear(c); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return redirectWithMessage(c, "/", "You have been logged out")
}
