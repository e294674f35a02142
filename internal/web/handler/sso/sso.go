// Package sso provides the HTTP surface of the federation engine:
// configuration management, the login redirect and the provider callback.
package sso

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/authgate/authgate/internal/db/models"
	ssoengine "github.com/authgate/authgate/internal/sso"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/web/handler"
	mwauth "github.com/authgate/authgate/internal/web/middleware/auth"
)

// Path is the route group prefix.
const Path = "/sso"

var validate = validator.New() //nolint:gochecknoglobals

// TokenResponse carries the session token issued after a federated login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// DeleteResponse reports the number of configurations removed.
type DeleteResponse struct {
	Affected int64 `json:"affected"`
}

// Service is the SSO handler service.
type Service struct {
	engine *ssoengine.Service
	codec  *token.Codec
}

// NewService creates the handler service.
func NewService(engine *ssoengine.Service, codec *token.Codec) *Service {
	return &Service{engine: engine, codec: codec}
}

// Init registers the route group. Static segments register before the
// parameterized login route so "callback" and "config" never match as a
// provider name.
func (s *Service) Init(app *fiber.App) {
	authenticated := mwauth.New(s.codec)
	adminOnly := mwauth.RequireRoles(models.RoleAdmin)

	app.Route(Path, func(router fiber.Router) {
		router.Get("/config", s.ListConfigs)
		router.Get("/config/:name", s.GetConfig)
		router.Post("/config/:name", authenticated, s.UpsertConfig)
		router.Delete("/config/:name", authenticated, adminOnly, s.DeleteConfig)
		router.Get("/callback", s.Callback)
		router.Get("/:name/login", s.Login)
	})
}

// UpsertConfig creates or replaces the configuration under the path name.
func (s *Service) UpsertConfig(c *fiber.Ctx) error {
	claims := mwauth.ClaimsFrom(c)

	var body ssoengine.ConfigInput
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cfg, err := s.engine.UpsertConfig(c.Params("name"), body, claims.UserID)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(cfg)
}

// GetConfig returns one configuration. Callers without an admin token get the
// masked form.
func (s *Service) GetConfig(c *fiber.Ctx) error {
	cfg, err := s.engine.GetConfig(c.Params("name"), mwauth.Privileged(c, s.codec))
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(cfg)
}

// ListConfigs returns a page of configurations, masked for non-admins.
func (s *Service) ListConfigs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := s.engine.ListConfigs(page, limit, mwauth.Privileged(c, s.codec))
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(result)
}

// DeleteConfig removes the configuration under the path name. Deleting an
// absent name succeeds with zero affected rows.
func (s *Service) DeleteConfig(c *fiber.Ctx) error {
	affected, err := s.engine.DeleteConfig(c.Params("name"))
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(DeleteResponse{Affected: affected})
}

// Login redirects the browser to the named provider's authorization endpoint.
func (s *Service) Login(c *fiber.Ctx) error {
	redirectURL, err := s.engine.BuildAuthorizationRedirect(c.Params("name"))
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.Redirect(redirectURL, fiber.StatusFound)
}

// Callback finishes the authorization-code flow. The provider name rides in
// the state parameter the redirect sent out.
func (s *Service) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing code parameter")
	}

	name, err := ssoengine.DecodeState(c.Query("state"))
	if err != nil || name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid state parameter")
	}

	signed, err := s.engine.CompleteLogin(c.UserContext(), name, code)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(TokenResponse{AccessToken: signed})
}
