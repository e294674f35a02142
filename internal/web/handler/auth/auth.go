// Package auth provides the HTTP handlers for local authentication:
// first-login detection, admin bootstrap, login and password resets.
package auth

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	authengine "github.com/authgate/authgate/internal/auth"
	"github.com/authgate/authgate/internal/db/models"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/web/handler"
	mwauth "github.com/authgate/authgate/internal/web/middleware/auth"
)

// Path is the route group prefix.
const Path = "/auth"

var validate = validator.New() //nolint:gochecknoglobals

// LoginRequest is the login body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordRequest is the password reset body.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=1"`
}

// TokenResponse carries an issued session token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Service is the local auth handler service.
type Service struct {
	engine *authengine.Service
	codec  *token.Codec
}

// NewService creates the handler service.
func NewService(engine *authengine.Service, codec *token.Codec) *Service {
	return &Service{engine: engine, codec: codec}
}

// Init registers the route group.
func (s *Service) Init(app *fiber.App) {
	authenticated := mwauth.New(s.codec)
	anyRole := mwauth.RequireRoles(models.RoleAdmin, models.RoleUser, models.RoleReadOnly)
	adminOnly := mwauth.RequireRoles(models.RoleAdmin)

	app.Route(Path, func(router fiber.Router) {
		router.Get("/first-login", s.FirstLogin)
		router.Post("/first-login/reset-password", s.BootstrapAdminPassword)
		router.Post("/login", s.Login)
		router.Post("/reset-password", authenticated, anyRole, s.ResetOwnPassword)
		router.Post("/reset-password/:user_id", authenticated, adminOnly, s.ResetPasswordByID)
	})
}

// FirstLogin reports whether the sentinel admin account still carries its
// provisioning-time password.
func (s *Service) FirstLogin(c *fiber.Ctx) error {
	firstLogin, err := s.engine.IsFirstLogin()
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(firstLogin)
}

// BootstrapAdminPassword sets the admin password during first login.
func (s *Service) BootstrapAdminPassword(c *fiber.Ctx) error {
	var body ResetPasswordRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := s.engine.BootstrapAdminPassword(body.NewPassword)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(user)
}

// Login authenticates a username/password pair and returns a session token.
func (s *Service) Login(c *fiber.Ctx) error {
	var body LoginRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	signed, err := s.engine.Login(body.Username, body.Password)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(TokenResponse{AccessToken: signed})
}

// ResetOwnPassword resets the authenticated caller's password.
func (s *Service) ResetOwnPassword(c *fiber.Ctx) error {
	claims := mwauth.ClaimsFrom(c)

	var body ResetPasswordRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := s.engine.ResetPassword(claims.UserID, body.NewPassword, claims.UserID)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(user)
}

// ResetPasswordByID resets another user's password on behalf of an admin.
func (s *Service) ResetPasswordByID(c *fiber.Ctx) error {
	claims := mwauth.ClaimsFrom(c)

	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var body ResetPasswordRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := s.engine.ResetPassword(userID, body.NewPassword, claims.UserID)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(user)
}

// parseBody parses and validates a JSON body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	return nil
}
