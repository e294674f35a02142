// Package health provides the load-balancer liveness endpoint.
package health

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
)

// Path is the liveness route. The access logger suppresses it.
const Path = "/checkalive"

// Service is the liveness handler service.
type Service struct {
	alive *atomic.Bool
}

// NewService creates the handler service around the shared liveness flag.
// The daemon clears the flag during the shutdown drain window so the load
// balancer stops routing here before the listener closes.
func NewService(alive *atomic.Bool) *Service {
	return &Service{alive: alive}
}

// Init registers the route.
func (s *Service) Init(app *fiber.App) {
	app.Get(Path, s.CheckAlive)
}

// CheckAlive reports liveness: 200 while serving, 503 while draining.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}
