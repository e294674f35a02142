// Package eula provides the HTTP handlers for the license agreement record.
package eula

import (
	"github.com/gofiber/fiber/v2"

	"github.com/authgate/authgate/internal/db/models"
	eulaengine "github.com/authgate/authgate/internal/eula"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/web/handler"
	mwauth "github.com/authgate/authgate/internal/web/middleware/auth"
)

// Path is the route group prefix.
const Path = "/eula"

// SetRequest is the acceptance update body.
type SetRequest struct {
	Accepted bool `json:"accepted"`
}

// Service is the EULA handler service.
type Service struct {
	engine *eulaengine.Service
	codec  *token.Codec
}

// NewService creates the handler service.
func NewService(engine *eulaengine.Service, codec *token.Codec) *Service {
	return &Service{engine: engine, codec: codec}
}

// Init registers the route group. Reading the state is open so a login page
// can render the agreement gate; changing it requires any authenticated user.
func (s *Service) Init(app *fiber.App) {
	authenticated := mwauth.New(s.codec)
	anyRole := mwauth.RequireRoles(models.RoleAdmin, models.RoleUser, models.RoleReadOnly)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, authenticated, anyRole, s.Set)
	})
}

// Get returns the current agreement state.
func (s *Service) Get(c *fiber.Ctx) error {
	eula, err := s.engine.Get()
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(eula)
}

// Set records acceptance or rejection of the agreement.
func (s *Service) Set(c *fiber.Ctx) error {
	var body SetRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	eula, err := s.engine.Set(body.Accepted)
	if err != nil {
		return handler.RespondError(c, err)
	}

	return c.JSON(eula)
}
